// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package tui holds the interactive terminal prompts. The setup service
// only sees the setup.Prompter interface, so everything here stays out of
// the orchestration core.
package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/spantree/fluent-toolkit/pkg/setup"
)

// ModulePrompter runs the interactive multi-select over the module catalog.
type ModulePrompter struct {
	// Accessible switches huh into screen-reader friendly mode.
	Accessible bool
}

// Select implements setup.Prompter. Core modules start checked, optional
// modules unchecked; the user toggles freely before confirming.
func (p *ModulePrompter) Select(candidates []setup.Choice) ([]string, error) {
	opts := make([]huh.Option[string], len(candidates))
	for i, c := range candidates {
		label := fmt.Sprintf("%s (%s)", c.Name, c.Description)
		opts[i] = huh.NewOption(label, c.ID).Selected(c.PreSelected)
	}

	var picked []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select MCP servers to set up").
				Description("Space toggles, enter confirms. Core servers are pre-selected.").
				Options(opts...).
				Value(&picked),
		),
	).WithAccessible(p.Accessible)

	if err := form.Run(); err != nil {
		return nil, err
	}
	return picked, nil
}
