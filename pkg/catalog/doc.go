// Package catalog defines the static questionnaire: an ordered list of
// sections, each holding an ordered list of questions. Catalogs are pure data.
// They are loaded once (from YAML or JSON) and checked with Validate before a
// controller is built on top of them. Answers are keyed by question id in a
// flat map, so question ids must be unique across the whole catalog.
package catalog
