// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package host

import "errors"

var (
	// ErrNotFound is returned when the host tool is not installed at all.
	// Fatal unless host checks are skipped. CLI exit code: 4
	ErrNotFound = errors.New("host tool not found")

	// ErrIncompatible is returned when the installed host tool version is
	// below the supported minimum. Fatal unless host checks are skipped.
	// CLI exit code: 1
	ErrIncompatible = errors.New("host tool version below minimum")

	// ErrVersionParse is returned when no semantic version could be
	// extracted from the host tool's version output. It degrades the
	// version gate to a warning and never aborts the run.
	ErrVersionParse = errors.New("cannot parse host tool version")
)
