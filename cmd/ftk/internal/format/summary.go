// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package format

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Summary represents a setup run's results for consistent formatting
type Summary struct {
	Configured int           // Modules whose fragments landed in the document
	Skipped    int           // Modules skipped (already installed, dry run)
	Failed     int           // Modules that failed a contract phase
	Errors     []ErrorDetail // Per-module failures
	ConfigPath string        // Where the configuration document was written
	DryRun     bool          // True when nothing was persisted
}

// ErrorDetail represents a single module failure with context
type ErrorDetail struct {
	ModuleID   string `json:"module_id"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

const maxErrorsToShow = 5

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// PrintReport renders the end-of-run summary. JSON mode emits the
// structured form; table mode renders a bordered human summary.
func (f *formatter) PrintReport(s Summary) error {
	if f.quiet {
		return nil
	}

	if f.mode == ModeJSON {
		return f.PrintJSON(map[string]any{
			"success":     s.Failed == 0,
			"configured":  s.Configured,
			"skipped":     s.Skipped,
			"failed":      s.Failed,
			"errors":      s.Errors,
			"config_path": s.ConfigPath,
			"dry_run":     s.DryRun,
		})
	}

	var sb strings.Builder

	sb.WriteString("Setup summary\n")
	if s.Configured > 0 {
		sb.WriteString(f.styled(okStyle, fmt.Sprintf("  ✓ Configured: %d\n", s.Configured)))
	}
	if s.Skipped > 0 {
		sb.WriteString(f.styled(warnStyle, fmt.Sprintf("  ⚠ Skipped:    %d\n", s.Skipped)))
	}
	if s.Failed > 0 {
		sb.WriteString(f.styled(failStyle, fmt.Sprintf("  ✗ Failed:     %d\n", s.Failed)))
	}
	if s.Configured == 0 && s.Skipped == 0 && s.Failed == 0 {
		sb.WriteString("  nothing to do\n")
	}

	switch {
	case s.DryRun:
		sb.WriteString("\nDry run: no changes written\n")
	case s.Configured > 0 && s.ConfigPath != "":
		sb.WriteString(fmt.Sprintf("\nConfiguration written to %s\n", s.ConfigPath))
	}

	if len(s.Errors) > 0 {
		sb.WriteString("\nFailed modules:\n")
		for i, e := range s.Errors {
			if i >= maxErrorsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more (use --output json for the full list)\n", len(s.Errors)-maxErrorsToShow))
				break
			}
			sb.WriteString(fmt.Sprintf("  - %s: %s\n", e.ModuleID, e.Error))
		}

		suggestions := collectSuggestions(s.Errors)
		if len(suggestions) > 0 {
			sb.WriteString("\nSuggestions:\n")
			for _, hint := range suggestions {
				sb.WriteString(fmt.Sprintf("  → %s\n", hint))
			}
		}
	}

	body := strings.TrimRight(sb.String(), "\n")
	if f.color {
		body = boxStyle.Render(body)
	}
	_, err := fmt.Fprintln(f.stdout, body)
	return err
}

// styled applies a lipgloss style when color output is on.
func (f *formatter) styled(style lipgloss.Style, text string) string {
	if !f.color {
		return text
	}
	return style.Render(strings.TrimRight(text, "\n")) + "\n"
}

// collectSuggestions gathers unique suggestions from the failure list
func collectSuggestions(errors []ErrorDetail) []string {
	seen := make(map[string]bool)
	var suggestions []string

	for _, e := range errors {
		if e.Suggestion == "" || seen[e.Suggestion] {
			continue
		}
		seen[e.Suggestion] = true
		suggestions = append(suggestions, e.Suggestion)
	}

	return suggestions
}
