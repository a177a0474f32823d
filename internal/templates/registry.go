package templates

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound is returned by Lookup for ids missing from the registry.
var ErrTemplateNotFound = errors.New("template not found")

// Registry is an immutable catalogue of templates. It is built once at
// startup and shared by reference; all methods are safe for concurrent use.
type Registry struct {
	templates []Template
	byID      map[string]int
}

func NewRegistry(tpls []Template) (*Registry, error) {
	r := &Registry{
		templates: make([]Template, 0, len(tpls)),
		byID:      make(map[string]int, len(tpls)),
	}
	for _, t := range tpls {
		if err := t.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		r.byID[t.ID] = len(r.templates)
		r.templates = append(r.templates, t)
	}
	return r, nil
}

// All returns every template in declaration order. The slice is a copy.
func (r *Registry) All() []Template {
	out := make([]Template, len(r.templates))
	copy(out, r.templates)
	return out
}

// ByCategory returns the templates of category c in declaration order, or an
// empty slice when none match.
func (r *Registry) ByCategory(c Category) []Template {
	out := []Template{}
	for _, t := range r.templates {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

func (r *Registry) FindByID(id string) (Template, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Template{}, false
	}
	return r.templates[i], true
}

// Lookup is FindByID for callers that propagate errors.
func (r *Registry) Lookup(id string) (Template, error) {
	t, ok := r.FindByID(id)
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return t, nil
}

func (r *Registry) Len() int { return len(r.templates) }
