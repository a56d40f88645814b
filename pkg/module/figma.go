// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package module

import (
	"context"
	"fmt"
	"os"
)

// figmaTokenEnv is the environment variable holding the Figma API token.
const figmaTokenEnv = "FIGMA_API_KEY"

// lookupEnv is a test seam for os.LookupEnv.
var lookupEnv = os.LookupEnv

// Figma provisions the Figma MCP server for design file access. The server
// needs a personal access token, passed through from the environment.
type Figma struct{}

func (m *Figma) ID() string { return "figma" }

func (m *Figma) Meta() Metadata {
	return Metadata{
		Name:        "Figma",
		Description: "Design file inspection via the Figma API",
		Category:    CategoryOptional,
	}
}

func (m *Figma) Validate(_ context.Context) error {
	if err := requireOnPath("npx", nodeHint); err != nil {
		return err
	}
	if v, ok := lookupEnv(figmaTokenEnv); !ok || v == "" {
		return fmt.Errorf("%w: %s is not set (create a token at https://www.figma.com/developers/api#access-tokens)", ErrValidationFailed, figmaTokenEnv)
	}
	return nil
}

func (m *Figma) IsInstalled(_ context.Context, cfg ConfigView) bool {
	return cfg.HasServer(m.ID())
}

// Install is a no-op: npx resolves the server package on first launch.
func (m *Figma) Install(_ context.Context) error { return nil }

func (m *Figma) Configure(_ context.Context) (Fragment, error) {
	return Fragment{
		"command": "npx",
		"args":    []any{"-y", "figma-developer-mcp", "--stdio"},
		"env": map[string]any{
			figmaTokenEnv: "${" + figmaTokenEnv + "}",
		},
	}, nil
}
