// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package setup

import (
	"fmt"

	"github.com/spantree/fluent-toolkit/pkg/module"
)

// Choice is one selectable module presented to the user during interactive
// setup.
type Choice struct {
	ID          string
	Name        string
	Description string
	Category    module.Category

	// PreSelected marks the choice checked when the prompt opens. Core
	// modules start checked, optional ones unchecked.
	PreSelected bool
}

// Prompter is the cooperative suspension point for interactive selection.
// It lives outside the orchestrator so the core logic runs headless in
// tests and under --no-prompt.
type Prompter interface {
	// Select presents the candidates and returns the chosen module IDs.
	Select(candidates []Choice) ([]string, error)
}

// ResolveSelection turns CLI input (and, when allowed, interactive answers)
// into the final ordered module ID set.
//
// Resolution rules:
//   - An explicit list wins. Every ID must exist; an unknown ID fails the
//     whole run with module.ErrUnknownModule before any phase executes.
//   - No list with prompting disabled (or no prompter wired) defaults to
//     exactly the core-category modules.
//   - Otherwise the prompter runs, seeded core-checked/optional-unchecked.
//
// Output order always matches registry order regardless of how the user
// spelled the list, so downstream reporting is deterministic. Duplicates
// are dropped.
func ResolveSelection(reg *module.Registry, opts Options, prompter Prompter) ([]string, error) {
	var requested []string

	switch {
	case len(opts.Servers) > 0:
		requested = opts.Servers
	case opts.NoPrompt || prompter == nil:
		for _, d := range reg.Core() {
			requested = append(requested, d.ID())
		}
	default:
		choices := candidatesFrom(reg)
		picked, err := prompter.Select(choices)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrPromptAborted, err)
		}
		requested = picked
	}

	// Validate every requested ID against the registry. Unknown IDs are a
	// user input error naming the offending ID, never silently dropped.
	want := make(map[string]bool, len(requested))
	for _, id := range requested {
		if _, err := reg.Get(id); err != nil {
			return nil, err
		}
		want[id] = true
	}

	// Reorder to registry order, dropping duplicates.
	var selection []string
	for _, id := range reg.IDs() {
		if want[id] {
			selection = append(selection, id)
		}
	}
	return selection, nil
}

// candidatesFrom builds the prompt candidate list in registry order.
func candidatesFrom(reg *module.Registry) []Choice {
	all := reg.All()
	choices := make([]Choice, len(all))
	for i, d := range all {
		meta := d.Meta()
		choices[i] = Choice{
			ID:          d.ID(),
			Name:        meta.Name,
			Description: meta.Description,
			Category:    meta.Category,
			PreSelected: meta.Category == module.CategoryCore,
		}
	}
	return choices
}
