package render

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownRenderer is returned by Get for unregistered names.
var ErrUnknownRenderer = errors.New("render: renderer not found")

// Registry maps output names ("html", "text") to section renderers. It is
// safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]SectionRenderer
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]SectionRenderer)}
}

// Register adds renderers under their Name(). Registration stops at the
// first nil renderer, empty name or duplicate name.
func (r *Registry) Register(renderers ...SectionRenderer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, renderer := range renderers {
		if renderer == nil {
			return errors.New("render: renderer is required")
		}
		name := renderer.Name()
		switch {
		case name == "":
			return fmt.Errorf("render: %T has no name", renderer)
		case r.byName[name] != nil:
			return fmt.Errorf("render: renderer %q already registered", name)
		}
		r.byName[name] = renderer
	}
	return nil
}

// MustRegister is Register that panics, for init-time wiring.
func (r *Registry) MustRegister(renderers ...SectionRenderer) {
	if err := r.Register(renderers...); err != nil {
		panic(err)
	}
}

// Get looks a renderer up by name. The error lists the known names.
func (r *Registry) Get(name string) (SectionRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if renderer, ok := r.byName[name]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownRenderer, name, strings.Join(r.names(), ", "))
}

// Render renders view with the named renderer.
func (r *Registry) Render(ctx context.Context, name string, view View, opts RenderOptions) ([]byte, error) {
	renderer, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return renderer.RenderSection(ctx, view, opts)
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names()
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}

func (r *Registry) names() []string {
	return slices.Sorted(maps.Keys(r.byName))
}
