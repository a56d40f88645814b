package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/spantree/fluent-toolkit/cmd/ftk/internal/format"
	"github.com/spantree/fluent-toolkit/pkg/module"
	"github.com/spantree/fluent-toolkit/pkg/setup"
	"github.com/spantree/fluent-toolkit/pkg/tui"
)

func newInitCommand(state *rootState) *cobra.Command {
	var opts setup.Options

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up MCP servers for this project",
		Long: `Set up MCP servers for the current project.

Checks that Claude Code is installed and recent enough, walks each selected
server module through validate, install, and configure, and merges the
resulting server entries into .mcp.json. Without --servers an interactive
multi-select is shown with core servers pre-selected.`,
		Example: `  # Interactive setup
  ftk init

  # Non-interactive: core servers only
  ftk init --no-prompt

  # Specific servers, replacing existing entries
  ftk init --servers memory,figma --force

  # See what would happen without changing anything
  ftk init --dry-run --no-prompt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeInitCommand(cmd, state, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Servers, "servers", nil, "Comma-separated module IDs to set up (skips the prompt)")
	cmd.Flags().BoolVar(&opts.NoPrompt, "no-prompt", false, "Never prompt; default to core modules")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Reconfigure modules even if already present in the document")
	cmd.Flags().BoolVar(&opts.SkipValidation, "skip-validation", false, "Skip per-module prerequisite validation")
	cmd.Flags().BoolVar(&opts.SkipChecks, "skip-checks", false, "Skip the host tool compatibility check")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Resolve and validate only; write nothing")
	cmd.Flags().String("output", "table", "Output format: json, table")
	cmd.Flags().Bool("quiet", false, "Suppress non-essential output")

	return cmd
}

// executeInitCommand orchestrates the init command execution
func executeInitCommand(cmd *cobra.Command, state *rootState, opts setup.Options) error {
	formatter := getFormatter(cmd, state)

	reg, err := module.NewRegistry(module.Builtin()...)
	if err != nil {
		return err
	}

	svc := setup.NewService(reg).WithConfigPath(state.settings.McpConfig)
	if !opts.NoPrompt {
		svc = svc.WithPrompter(&tui.ModulePrompter{})
	}

	report, err := svc.Run(cmd.Context(), opts)

	if report != nil {
		if printErr := printInitReport(formatter, report, state.settings.McpConfig, opts.DryRun); printErr != nil {
			return printErr
		}
	}

	// Partial failure: the report above already carries the details, so
	// exit directly with its dedicated code instead of double-printing.
	if err != nil && errors.Is(err, setup.ErrPartialFailure) {
		os.Exit(setup.ExitCode(err))
	}

	return err
}

// printInitReport renders the run report in the requested mode.
func printInitReport(f format.Formatter, report *setup.Report, configPath string, dryRun bool) error {
	if f.IsJSON() {
		configured, skipped, failed := report.Counts()
		return f.PrintJSON(map[string]any{
			"run_id":      report.RunID,
			"modules":     report.Modules,
			"configured":  configured,
			"skipped":     skipped,
			"failed":      failed,
			"success":     report.Success(),
			"config_path": configPath,
			"dry_run":     dryRun,
		})
	}
	return f.PrintReport(buildReportSummary(report, configPath, dryRun))
}

// buildReportSummary converts a run report into the formatter's summary
// shape, including a remediation hint per failure class.
func buildReportSummary(report *setup.Report, configPath string, dryRun bool) format.Summary {
	configured, skipped, failed := report.Counts()
	s := format.Summary{
		Configured: configured,
		Skipped:    skipped,
		Failed:     failed,
		ConfigPath: configPath,
		DryRun:     dryRun,
	}

	for _, m := range report.Modules {
		detail := failureDetail(m)
		if detail == "" {
			continue
		}
		s.Errors = append(s.Errors, format.ErrorDetail{
			ModuleID:   m.ModuleID,
			Error:      detail,
			Suggestion: failureSuggestion(m.State),
		})
	}
	return s
}

// failureDetail returns the failing phase's detail, or "" for modules that
// ended in a configured or skipped state.
func failureDetail(m setup.ModuleResult) string {
	switch m.State {
	case setup.StateConfigured, setup.StateSkipped:
		return ""
	}
	for _, p := range m.Phases {
		if p.Outcome == setup.OutcomeFailed {
			return p.Detail
		}
	}
	return string(m.State)
}

func failureSuggestion(state setup.State) string {
	switch state {
	case setup.StateValidationFailed:
		return "resolve the missing prerequisite and re-run: ftk init"
	case setup.StateInstallFailed:
		return "re-run with more detail: ftk init -vv"
	case setup.StateConfigureFailed:
		return "re-run the failed module alone: ftk init --servers <id>"
	default:
		return ""
	}
}
