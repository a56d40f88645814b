// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package module

import "context"

// Category classifies a module for default selection.
type Category string

const (
	// CategoryCore modules are pre-selected during interactive setup and
	// installed by default when prompting is disabled.
	CategoryCore Category = "core"

	// CategoryOptional modules must be opted into explicitly.
	CategoryOptional Category = "optional"
)

// IsValid reports whether the category is one of the known values.
func (c Category) IsValid() bool {
	return c == CategoryCore || c == CategoryOptional
}

// Metadata carries the static, human-facing description of a module.
// Category drives filtering and default selection only; it never changes
// how a module is dispatched.
type Metadata struct {
	Name        string   `validate:"required"`
	Description string   `validate:"required"`
	Category    Category `validate:"required,oneof=core optional"`
}

// Fragment is one module's slice of the MCP configuration document, keyed
// under the module ID when merged. Values must round-trip through JSON.
type Fragment map[string]any

// ConfigView is the read-only view of the persisted configuration document
// that modules may consult from IsInstalled.
type ConfigView interface {
	// HasServer reports whether a fragment for the given module ID is
	// already present in the document.
	HasServer(id string) bool
}

// Descriptor is the capability contract every installable module implements.
//
// Each of the four lifecycle operations must be present; a module with no
// meaningful work for an operation implements it as an explicit no-op.
// Configure returns the module's fragment rather than writing the shared
// document itself: the setup service is the document's exclusive writer.
type Descriptor interface {
	// ID returns the stable, globally unique module identifier.
	ID() string

	// Meta returns the module's static metadata.
	Meta() Metadata

	// Validate checks external prerequisites (binaries on PATH, environment
	// variables). It is a pure check and must not mutate anything.
	Validate(ctx context.Context) error

	// IsInstalled reports whether the module is already provisioned. It is
	// an idempotent probe against the current configuration document.
	IsInstalled(ctx context.Context, cfg ConfigView) bool

	// Install performs the module's external setup. It may be slow and
	// network-bound. Modules with nothing to install return nil.
	Install(ctx context.Context) error

	// Configure returns the module's configuration fragment.
	Configure(ctx context.Context) (Fragment, error)
}
