// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package module

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Registry is the fixed table of installable modules. It is built once at
// startup and read-only afterwards, so it is safe for concurrent readers
// without locking. Registration order is the canonical module order used
// by selection and reporting.
type Registry struct {
	ordered []Descriptor
	byID    map[string]Descriptor
}

// NewRegistry builds a registry from the given descriptors, preserving
// order. Every descriptor's metadata is validated; a duplicate or invalid
// descriptor is a programmer error surfaced at construction.
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	validate := validator.New()

	r := &Registry{
		ordered: make([]Descriptor, 0, len(descriptors)),
		byID:    make(map[string]Descriptor, len(descriptors)),
	}

	for _, d := range descriptors {
		if d == nil {
			return nil, fmt.Errorf("cannot register nil module")
		}
		if d.ID() == "" {
			return nil, fmt.Errorf("module ID cannot be empty")
		}
		if _, exists := r.byID[d.ID()]; exists {
			return nil, fmt.Errorf("module '%s' already registered", d.ID())
		}
		if err := validate.Struct(d.Meta()); err != nil {
			return nil, fmt.Errorf("module '%s' metadata invalid: %w", d.ID(), err)
		}

		r.ordered = append(r.ordered, d)
		r.byID[d.ID()] = d
	}

	return r, nil
}

// All returns every module in registration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Get retrieves a module by ID. A miss is a user input error, reported as
// ErrUnknownModule naming the offending ID.
func (r *Registry) Get(id string) (Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownModule, id)
	}
	return d, nil
}

// IDs returns every module ID in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.ordered))
	for i, d := range r.ordered {
		ids[i] = d.ID()
	}
	return ids
}

// ByCategory returns the modules of the given category, preserving
// registration order.
func (r *Registry) ByCategory(c Category) []Descriptor {
	var out []Descriptor
	for _, d := range r.ordered {
		if d.Meta().Category == c {
			out = append(out, d)
		}
	}
	return out
}

// Core returns the core-category modules in registration order.
func (r *Registry) Core() []Descriptor {
	return r.ByCategory(CategoryCore)
}

// Optional returns the optional-category modules in registration order.
func (r *Registry) Optional() []Descriptor {
	return r.ByCategory(CategoryOptional)
}

// Count returns the number of registered modules.
func (r *Registry) Count() int {
	return len(r.ordered)
}
