// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package setup

// Options control one orchestration run.
//
// SkipValidation and SkipChecks are deliberately independent: the first
// bypasses per-module prerequisite checks, the second bypasses the
// host-tool gate. Neither implies the other.
type Options struct {
	// Force re-runs install and configure for modules that are already
	// provisioned, replacing only the re-selected modules' fragments.
	Force bool

	// SkipValidation bypasses per-module Validate calls.
	SkipValidation bool

	// SkipChecks bypasses the host compatibility gate entirely; the gate is
	// then treated as vacuously satisfied and never computed.
	SkipChecks bool

	// NoPrompt disables interactive selection and falls back to defaults
	// (the core-category modules) when no explicit list is given.
	NoPrompt bool

	// DryRun resolves and validates only; no install or configure actions
	// run and the configuration document is not written.
	DryRun bool

	// Servers is the explicit, user-ordered module ID list. Empty means
	// "use interactive selection or defaults".
	Servers []string
}
