// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package module

import "context"

// SequentialThinking provisions the MCP sequential-thinking server, which
// gives the host tool a structured scratchpad for multi-step reasoning.
type SequentialThinking struct{}

func (m *SequentialThinking) ID() string { return "sequential-thinking" }

func (m *SequentialThinking) Meta() Metadata {
	return Metadata{
		Name:        "Sequential Thinking",
		Description: "Structured step-by-step reasoning scratchpad",
		Category:    CategoryCore,
	}
}

func (m *SequentialThinking) Validate(_ context.Context) error {
	return requireOnPath("npx", nodeHint)
}

func (m *SequentialThinking) IsInstalled(_ context.Context, cfg ConfigView) bool {
	return cfg.HasServer(m.ID())
}

// Install is a no-op: npx resolves the server package on first launch.
func (m *SequentialThinking) Install(_ context.Context) error { return nil }

func (m *SequentialThinking) Configure(_ context.Context) (Fragment, error) {
	return Fragment{
		"command": "npx",
		"args":    []any{"-y", "@modelcontextprotocol/server-sequential-thinking"},
	}, nil
}
