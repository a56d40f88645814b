// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package module

import (
	"context"
	"fmt"
)

// Playwright provisions the Playwright MCP server for browser automation.
// Unlike the npx-only modules it has a real install step: the Chromium
// download is large and network-bound, so it runs up front rather than on
// the server's first launch.
type Playwright struct{}

func (m *Playwright) ID() string { return "playwright" }

func (m *Playwright) Meta() Metadata {
	return Metadata{
		Name:        "Playwright",
		Description: "Browser automation and end-to-end testing",
		Category:    CategoryOptional,
	}
}

func (m *Playwright) Validate(_ context.Context) error {
	return requireOnPath("npx", nodeHint)
}

func (m *Playwright) IsInstalled(_ context.Context, cfg ConfigView) bool {
	return cfg.HasServer(m.ID())
}

func (m *Playwright) Install(ctx context.Context) error {
	if err := runCommand(ctx, "npx", "-y", "playwright", "install", "chromium"); err != nil {
		return fmt.Errorf("%w: chromium download: %s", ErrInstallFailed, err)
	}
	return nil
}

func (m *Playwright) Configure(_ context.Context) (Fragment, error) {
	return Fragment{
		"command": "npx",
		"args":    []any{"-y", "@playwright/mcp@latest"},
	}, nil
}
