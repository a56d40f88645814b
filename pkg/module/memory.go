// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package module

import "context"

// Memory provisions the MCP knowledge-graph memory server, persisting
// facts across host tool sessions.
type Memory struct{}

func (m *Memory) ID() string { return "memory" }

func (m *Memory) Meta() Metadata {
	return Metadata{
		Name:        "Memory",
		Description: "Persistent knowledge-graph memory across sessions",
		Category:    CategoryCore,
	}
}

func (m *Memory) Validate(_ context.Context) error {
	return requireOnPath("npx", nodeHint)
}

func (m *Memory) IsInstalled(_ context.Context, cfg ConfigView) bool {
	return cfg.HasServer(m.ID())
}

// Install is a no-op: npx resolves the server package on first launch.
func (m *Memory) Install(_ context.Context) error { return nil }

func (m *Memory) Configure(_ context.Context) (Fragment, error) {
	return Fragment{
		"command": "npx",
		"args":    []any{"-y", "@modelcontextprotocol/server-memory"},
	}, nil
}
