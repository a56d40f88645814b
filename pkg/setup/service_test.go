// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spantree/fluent-toolkit/pkg/host"
	"github.com/spantree/fluent-toolkit/pkg/mcp"
	"github.com/spantree/fluent-toolkit/pkg/module"
)

func healthyChecker() *host.Checker {
	return host.NewCheckerWith(
		func(string) (string, error) { return "/opt/homebrew/bin/claude", nil },
		func(context.Context) (string, error) { return "9.9.9", nil },
	)
}

func absentChecker() *host.Checker {
	return host.NewCheckerWith(
		func(string) (string, error) { return "", errors.New("not found") },
		func(context.Context) (string, error) { return "", errors.New("not installed") },
	)
}

func staleChecker() *host.Checker {
	return host.NewCheckerWith(
		func(string) (string, error) { return "/opt/homebrew/bin/claude", nil },
		func(context.Context) (string, error) { return "0.0.1", nil },
	)
}

func garbledChecker() *host.Checker {
	return host.NewCheckerWith(
		func(string) (string, error) { return "/usr/local/bin/claude", nil },
		func(context.Context) (string, error) { return "development build", nil },
	)
}

func newTestService(t *testing.T, reg *module.Registry, checker *host.Checker) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".mcp.json")
	svc := NewService(reg).WithChecker(checker).WithConfigPath(path)
	return svc, path
}

func TestRun_ValidationFailureIsolatedPerModule(t *testing.T) {
	alpha := scripted("alpha", module.CategoryCore)
	alpha.validateErr = fmt.Errorf("%w: npx missing", module.ErrValidationFailed)
	beta := scripted("beta", module.CategoryCore)

	svc, path := newTestService(t, testRegistry(t, alpha, beta), healthyChecker())
	report, err := svc.Run(context.Background(), Options{Servers: []string{"alpha", "beta"}})

	require.ErrorIs(t, err, ErrPartialFailure)
	require.Equal(t, 8, ExitCode(err))

	require.Len(t, report.Modules, 2)
	require.Equal(t, StateValidationFailed, report.Modules[0].State)
	require.Equal(t, StateConfigured, report.Modules[1].State)
	require.False(t, report.Success())

	// alpha never advanced past validation.
	require.Zero(t, alpha.installCalls)
	require.Equal(t, 1, beta.installCalls)

	// Only beta's fragment was merged.
	doc, loadErr := mcp.Load(path)
	require.NoError(t, loadErr)
	require.False(t, doc.HasServer("alpha"))
	require.True(t, doc.HasServer("beta"))
}

func TestRun_InstallFailureIsTerminalForThatModule(t *testing.T) {
	bad := scripted("bad", module.CategoryCore)
	bad.installErr = fmt.Errorf("%w: network down", module.ErrInstallFailed)

	svc, _ := newTestService(t, testRegistry(t, bad), healthyChecker())
	report, err := svc.Run(context.Background(), Options{Servers: []string{"bad"}})

	require.ErrorIs(t, err, ErrPartialFailure)
	require.Equal(t, StateInstallFailed, report.Modules[0].State)
	require.Zero(t, bad.configureCalls)
}

func TestRun_ConfigureFailureRecorded(t *testing.T) {
	bad := scripted("bad", module.CategoryCore)
	bad.configureErr = fmt.Errorf("%w: bad fragment", module.ErrConfigureFailed)

	svc, path := newTestService(t, testRegistry(t, bad), healthyChecker())
	report, err := svc.Run(context.Background(), Options{Servers: []string{"bad"}})

	require.ErrorIs(t, err, ErrPartialFailure)
	require.Equal(t, StateConfigureFailed, report.Modules[0].State)

	// Nothing was persisted.
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestRun_IdempotentAcrossRuns(t *testing.T) {
	reg := testRegistry(t, scripted("alpha", module.CategoryCore), scripted("beta", module.CategoryCore))
	svc, path := newTestService(t, reg, healthyChecker())

	_, err := svc.Run(context.Background(), Options{Servers: []string{"alpha", "beta"}})
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = svc.Run(context.Background(), Options{Servers: []string{"alpha", "beta"}})
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestRun_SecondRunSkipsInstalledModules(t *testing.T) {
	alpha := scripted("alpha", module.CategoryCore)
	svc, _ := newTestService(t, testRegistry(t, alpha), healthyChecker())

	_, err := svc.Run(context.Background(), Options{Servers: []string{"alpha"}})
	require.NoError(t, err)
	require.Equal(t, 1, alpha.installCalls)

	report, err := svc.Run(context.Background(), Options{Servers: []string{"alpha"}})
	require.NoError(t, err)
	require.Equal(t, 1, alpha.installCalls)
	require.Equal(t, StateSkipped, report.Modules[0].State)
	require.Equal(t, OutcomeSkipped, report.Modules[0].Phases[1].Outcome)
}

func TestRun_ForceReplacesOnlyReselectedFragment(t *testing.T) {
	alpha := scripted("alpha", module.CategoryCore)
	beta := scripted("beta", module.CategoryCore)
	reg := testRegistry(t, alpha, beta)
	svc, path := newTestService(t, reg, healthyChecker())

	_, err := svc.Run(context.Background(), Options{Servers: []string{"alpha", "beta"}})
	require.NoError(t, err)

	// Force re-run of alpha only.
	report, err := svc.Run(context.Background(), Options{Servers: []string{"alpha"}, Force: true})
	require.NoError(t, err)
	require.Equal(t, StateConfigured, report.Modules[0].State)
	require.Equal(t, 2, alpha.installCalls)
	require.Equal(t, 1, beta.installCalls)

	doc, err := mcp.Load(path)
	require.NoError(t, err)
	require.True(t, doc.HasServer("alpha"))
	require.True(t, doc.HasServer("beta"))
}

func TestRun_HostAbsentFailsFast(t *testing.T) {
	alpha := scripted("alpha", module.CategoryCore)
	svc, _ := newTestService(t, testRegistry(t, alpha), absentChecker())

	_, err := svc.Run(context.Background(), Options{Servers: []string{"alpha"}})
	require.ErrorIs(t, err, host.ErrNotFound)
	require.Equal(t, 4, ExitCode(err))
	require.Contains(t, err.Error(), "brew install")

	// No module phase executed.
	require.Zero(t, alpha.validateCalls)
	require.Zero(t, alpha.installCalls)
}

func TestRun_HostBelowMinimumFailsFast(t *testing.T) {
	alpha := scripted("alpha", module.CategoryCore)
	svc, _ := newTestService(t, testRegistry(t, alpha), staleChecker())

	_, err := svc.Run(context.Background(), Options{Servers: []string{"alpha"}})
	require.ErrorIs(t, err, host.ErrIncompatible)
	require.Contains(t, err.Error(), host.MinVersion)
	require.Contains(t, err.Error(), "brew upgrade")
	require.Zero(t, alpha.validateCalls)
}

func TestRun_SkipChecksBypassesAbsentHost(t *testing.T) {
	alpha := scripted("alpha", module.CategoryCore)
	svc, _ := newTestService(t, testRegistry(t, alpha), absentChecker())

	report, err := svc.Run(context.Background(), Options{Servers: []string{"alpha"}, SkipChecks: true})
	require.NoError(t, err)
	require.Equal(t, StateConfigured, report.Modules[0].State)
}

func TestRun_SkipValidationStillRunsHostGate(t *testing.T) {
	// Skip-validation is the module-level gate; the coarser host gate is a
	// distinct switch and stays on.
	alpha := scripted("alpha", module.CategoryCore)
	svc, _ := newTestService(t, testRegistry(t, alpha), absentChecker())

	_, err := svc.Run(context.Background(), Options{Servers: []string{"alpha"}, SkipValidation: true})
	require.ErrorIs(t, err, host.ErrNotFound)
}

func TestRun_SkipValidationBypassesModuleValidate(t *testing.T) {
	alpha := scripted("alpha", module.CategoryCore)
	alpha.validateErr = errors.New("would fail")

	svc, _ := newTestService(t, testRegistry(t, alpha), healthyChecker())
	report, err := svc.Run(context.Background(), Options{Servers: []string{"alpha"}, SkipValidation: true})

	require.NoError(t, err)
	require.Zero(t, alpha.validateCalls)
	require.Equal(t, StateConfigured, report.Modules[0].State)
}

func TestRun_UnparseableHostVersionDegradesGate(t *testing.T) {
	alpha := scripted("alpha", module.CategoryCore)
	svc, _ := newTestService(t, testRegistry(t, alpha), garbledChecker())

	report, err := svc.Run(context.Background(), Options{Servers: []string{"alpha"}})
	require.NoError(t, err)
	require.Equal(t, StateConfigured, report.Modules[0].State)
}

func TestRun_UnknownModuleRunsNothing(t *testing.T) {
	alpha := scripted("alpha", module.CategoryCore)
	svc, path := newTestService(t, testRegistry(t, alpha), healthyChecker())

	_, err := svc.Run(context.Background(), Options{Servers: []string{"alpha", "mystery"}})
	require.ErrorIs(t, err, module.ErrUnknownModule)
	require.Equal(t, 2, ExitCode(err))

	require.Zero(t, alpha.validateCalls)
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestRun_NoPromptDefaultsToCoreInRegistryOrder(t *testing.T) {
	alpha := scripted("alpha", module.CategoryCore)
	beta := scripted("beta", module.CategoryOptional)
	gamma := scripted("gamma", module.CategoryCore)

	svc, _ := newTestService(t, testRegistry(t, alpha, beta, gamma), healthyChecker())
	report, err := svc.Run(context.Background(), Options{NoPrompt: true})
	require.NoError(t, err)

	var ids []string
	for _, m := range report.Modules {
		ids = append(ids, m.ModuleID)
	}
	require.Equal(t, []string{"alpha", "gamma"}, ids)
	require.Zero(t, beta.installCalls)
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	alpha := scripted("alpha", module.CategoryCore)
	svc, path := newTestService(t, testRegistry(t, alpha), healthyChecker())

	report, err := svc.Run(context.Background(), Options{Servers: []string{"alpha"}, DryRun: true})
	require.NoError(t, err)
	require.Equal(t, 1, alpha.validateCalls)
	require.Zero(t, alpha.installCalls)
	require.Equal(t, StateSkipped, report.Modules[0].State)

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestRun_InterruptFlushesCompletedWork(t *testing.T) {
	alpha := scripted("alpha", module.CategoryCore)
	svc, _ := newTestService(t, testRegistry(t, alpha), healthyChecker())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.Run(ctx, Options{Servers: []string{"alpha"}})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, report.Modules)
}

func TestRun_ReportHasRunID(t *testing.T) {
	alpha := scripted("alpha", module.CategoryCore)
	svc, _ := newTestService(t, testRegistry(t, alpha), healthyChecker())

	report, err := svc.Run(context.Background(), Options{Servers: []string{"alpha"}})
	require.NoError(t, err)
	require.NotEmpty(t, report.RunID)
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, 2, ExitCode(fmt.Errorf("wrap: %w", module.ErrUnknownModule)))
	require.Equal(t, 4, ExitCode(fmt.Errorf("wrap: %w", host.ErrNotFound)))
	require.Equal(t, 8, ExitCode(fmt.Errorf("wrap: %w", ErrPartialFailure)))
	require.Equal(t, 1, ExitCode(errors.New("anything else")))
	require.Equal(t, 1, ExitCode(fmt.Errorf("wrap: %w", host.ErrIncompatible)))
}

func TestSuggestion(t *testing.T) {
	require.Contains(t, Suggestion(module.ErrUnknownModule), "ftk list")
	require.Contains(t, Suggestion(host.ErrNotFound), "install")
	require.Contains(t, Suggestion(mcp.ErrPersist), mcp.DefaultPath)
	require.Empty(t, Suggestion(errors.New("misc")))
}
