// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package setup

import (
	"errors"

	"github.com/spantree/fluent-toolkit/pkg/host"
	"github.com/spantree/fluent-toolkit/pkg/mcp"
	"github.com/spantree/fluent-toolkit/pkg/module"
)

// ErrPartialFailure indicates at least one selected module did not reach a
// configured or skipped state. The report carries the per-module detail.
// CLI exit code: 8
var ErrPartialFailure = errors.New("some modules failed")

// ErrPromptAborted is returned when the user cancels interactive selection.
var ErrPromptAborted = errors.New("selection aborted")

// ExitCode maps a run error to the CLI exit code.
// Conventions:
//   - 0: success
//   - 2: invalid input (unknown module ID)
//   - 4: host tool not found
//   - 8: partial failure (some modules failed, others succeeded)
//   - 1: everything else (host below minimum, persistence failure)
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch {
	case errors.Is(err, module.ErrUnknownModule):
		return 2
	case errors.Is(err, host.ErrNotFound):
		return 4
	case errors.Is(err, ErrPartialFailure):
		return 8
	default:
		return 1
	}
}

// Suggestion returns an actionable remediation hint for a run error, shown
// alongside the error itself.
func Suggestion(err error) string {
	switch {
	case errors.Is(err, module.ErrUnknownModule):
		return "list available modules with: ftk list"
	case errors.Is(err, host.ErrNotFound):
		return "install Claude Code with: " + host.InstallCommand(host.MethodUnknown)
	case errors.Is(err, host.ErrIncompatible):
		return "upgrade Claude Code, then re-run: ftk init"
	case errors.Is(err, mcp.ErrPersist):
		return "check write permission on " + mcp.DefaultPath + " and re-run"
	case errors.Is(err, ErrPartialFailure):
		return "fix the failed modules' prerequisites and re-run: ftk init"
	default:
		return ""
	}
}
