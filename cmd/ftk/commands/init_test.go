package commands

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spantree/fluent-toolkit/pkg/setup"
)

func failedModule(id string, phase setup.Phase, state setup.State, detail string) setup.ModuleResult {
	return setup.ModuleResult{
		ModuleID: id,
		State:    state,
		Phases: []setup.PhaseResult{
			{ModuleID: id, Phase: phase, Outcome: setup.OutcomeFailed, Detail: detail},
		},
	}
}

func TestBuildReportSummary_Counts(t *testing.T) {
	report := setup.NewReport()
	report.Modules = []setup.ModuleResult{
		{ModuleID: "memory", State: setup.StateConfigured},
		{ModuleID: "context7", State: setup.StateSkipped},
		failedModule("figma", setup.PhaseValidate, setup.StateValidationFailed, "FIGMA_API_KEY is not set"),
	}

	s := buildReportSummary(report, ".mcp.json", false)
	require.Equal(t, 1, s.Configured)
	require.Equal(t, 1, s.Skipped)
	require.Equal(t, 1, s.Failed)
	require.Len(t, s.Errors, 1)
	require.Equal(t, "figma", s.Errors[0].ModuleID)
	require.Equal(t, "FIGMA_API_KEY is not set", s.Errors[0].Error)
	require.Contains(t, s.Errors[0].Suggestion, "prerequisite")
}

func TestBuildReportSummary_SuccessHasNoErrors(t *testing.T) {
	report := setup.NewReport()
	report.Modules = []setup.ModuleResult{
		{ModuleID: "memory", State: setup.StateConfigured},
	}

	s := buildReportSummary(report, ".mcp.json", false)
	require.Empty(t, s.Errors)
}

func TestFailureDetail_FallsBackToState(t *testing.T) {
	m := setup.ModuleResult{ModuleID: "memory", State: setup.StateInstallFailed}
	require.Equal(t, "install-failed", failureDetail(m))
}

func TestFailureSuggestion_PerState(t *testing.T) {
	require.Contains(t, failureSuggestion(setup.StateInstallFailed), "-vv")
	require.Contains(t, failureSuggestion(setup.StateConfigureFailed), "--servers")
	require.Empty(t, failureSuggestion(setup.StateConfigured))
}
