// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package module

import "errors"

// Domain errors checked with errors.Is().

var (
	// ErrUnknownModule is returned when a requested module ID is not in the
	// registry. Fatal for the run; reported before any phase executes.
	// CLI exit code: 2
	ErrUnknownModule = errors.New("unknown module")

	// ErrValidationFailed is returned by Validate when a module's external
	// prerequisite is unmet. Isolated to the failing module.
	// CLI exit code: 8 (partial failure)
	ErrValidationFailed = errors.New("validation failed")

	// ErrInstallFailed is returned when a module's install action fails.
	// Isolated to the failing module.
	// CLI exit code: 8 (partial failure)
	ErrInstallFailed = errors.New("install failed")

	// ErrConfigureFailed is returned when a module cannot produce its
	// configuration fragment. Isolated to the failing module.
	// CLI exit code: 8 (partial failure)
	ErrConfigureFailed = errors.New("configure failed")
)
