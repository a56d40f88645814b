// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package module

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Builtin returns the full module catalog in canonical order. The catalog
// is compile-time known; discovery is this explicit table, not scanning.
func Builtin() []Descriptor {
	return []Descriptor{
		&SequentialThinking{},
		&Context7{},
		&Memory{},
		&Playwright{},
		&Figma{},
		&Atlassian{},
	}
}

// Test seams. Production code uses the real implementations; tests replace
// them to simulate missing binaries or failing installs.
var (
	lookPath = exec.LookPath

	runCommand = func(ctx context.Context, name string, args ...string) error {
		cmd := exec.CommandContext(ctx, name, args...)
		out, err := cmd.CombinedOutput()
		if err != nil {
			trimmed := strings.TrimSpace(string(out))
			if trimmed != "" {
				return fmt.Errorf("%s: %s", err, trimmed)
			}
			return err
		}
		log.Debug().Str("command", name).Strs("args", args).Msg("command completed")
		return nil
	}
)

// requireOnPath checks that an executable is resolvable, returning an
// ErrValidationFailed that names the missing binary and a remediation hint.
func requireOnPath(binary, hint string) error {
	if _, err := lookPath(binary); err != nil {
		return fmt.Errorf("%w: '%s' not found on PATH (%s)", ErrValidationFailed, binary, hint)
	}
	return nil
}

const nodeHint = "install Node.js from https://nodejs.org or via 'brew install node'"
