// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package module

import "context"

// Context7 provisions the Context7 MCP server for up-to-date library
// documentation lookup.
type Context7 struct{}

func (m *Context7) ID() string { return "context7" }

func (m *Context7) Meta() Metadata {
	return Metadata{
		Name:        "Context7",
		Description: "Live library documentation and code examples",
		Category:    CategoryCore,
	}
}

func (m *Context7) Validate(_ context.Context) error {
	return requireOnPath("npx", nodeHint)
}

func (m *Context7) IsInstalled(_ context.Context, cfg ConfigView) bool {
	return cfg.HasServer(m.ID())
}

// Install is a no-op: npx resolves the server package on first launch.
func (m *Context7) Install(_ context.Context) error { return nil }

func (m *Context7) Configure(_ context.Context) (Fragment, error) {
	return Fragment{
		"command": "npx",
		"args":    []any{"-y", "@upstash/context7-mcp"},
	}, nil
}
