// Package template defines the engine seam the markup renderers depend on.
// The pongo subpackage provides the pongo2-backed implementation.
package template
