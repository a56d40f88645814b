// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package module

import "context"

// Atlassian provisions the mcp-atlassian server for Jira and Confluence
// access. The server is Python-based and launched through uvx.
type Atlassian struct{}

func (m *Atlassian) ID() string { return "atlassian" }

func (m *Atlassian) Meta() Metadata {
	return Metadata{
		Name:        "Atlassian",
		Description: "Jira and Confluence integration",
		Category:    CategoryOptional,
	}
}

func (m *Atlassian) Validate(_ context.Context) error {
	return requireOnPath("uvx", "install uv from https://docs.astral.sh/uv/ or via 'brew install uv'")
}

func (m *Atlassian) IsInstalled(_ context.Context, cfg ConfigView) bool {
	return cfg.HasServer(m.ID())
}

// Install is a no-op: uvx resolves the server package on first launch.
func (m *Atlassian) Install(_ context.Context) error { return nil }

func (m *Atlassian) Configure(_ context.Context) (Fragment, error) {
	return Fragment{
		"command": "uvx",
		"args":    []any{"mcp-atlassian"},
	}, nil
}
