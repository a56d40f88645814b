// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package setup drives selected modules through the validate → install →
// configure lifecycle, gated by one host compatibility check, and merges
// the results into the persisted configuration document.
package setup

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/spantree/fluent-toolkit/pkg/host"
	"github.com/spantree/fluent-toolkit/pkg/mcp"
	"github.com/spantree/fluent-toolkit/pkg/module"
)

// Service orchestrates one setup run. Module processing is strictly
// sequential: the document merge in the final step is single-writer by
// design, and sequential phases keep report ordering deterministic.
type Service struct {
	registry   *module.Registry
	checker    *host.Checker
	prompter   Prompter
	configPath string
	logger     zerolog.Logger
}

// NewService creates a setup service over the given registry with a real
// host checker and the default document path. Use the With* methods to
// inject a prompter, a custom checker, or an alternate document location.
func NewService(reg *module.Registry) *Service {
	return &Service{
		registry:   reg,
		checker:    host.NewChecker(),
		configPath: mcp.DefaultPath,
		logger:     log.Logger,
	}
}

// WithChecker injects a host compatibility checker.
func (s *Service) WithChecker(c *host.Checker) *Service {
	s.checker = c
	return s
}

// WithPrompter injects the interactive selection capability.
func (s *Service) WithPrompter(p Prompter) *Service {
	s.prompter = p
	return s
}

// WithConfigPath overrides the configuration document location.
func (s *Service) WithConfigPath(path string) *Service {
	s.configPath = path
	return s
}

// WithLogger injects a custom logger.
func (s *Service) WithLogger(logger zerolog.Logger) *Service {
	s.logger = logger
	return s
}

// Run executes one orchestration: resolve the selection, gate on host
// compatibility, walk each module through its phases, persist the merged
// document, and return the report.
//
// Module-level failures are converted into report entries and never abort
// sibling modules. Only unknown module IDs, a failed host gate, prompt
// abort, and persistence failures abort the run; even then the returned
// report holds everything completed so far.
func (s *Service) Run(ctx context.Context, opts Options) (*Report, error) {
	selection, err := ResolveSelection(s.registry, opts, s.prompter)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Strs("selection", selection).
		Bool("force", opts.Force).
		Bool("dry_run", opts.DryRun).
		Msg("starting module setup")

	if !opts.SkipChecks {
		if err := s.hostGate(ctx); err != nil {
			return nil, err
		}
	} else {
		s.logger.Debug().Msg("host compatibility checks skipped")
	}

	doc, err := mcp.Load(s.configPath)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	fragments := make(map[string]module.Fragment, len(selection))

	for _, id := range selection {
		select {
		case <-ctx.Done():
			// Flush what completed: persist fully-configured modules, then
			// surface the interrupt. The save below is all-or-nothing.
			if persistErr := s.persist(doc, fragments, selection, opts); persistErr != nil {
				return report, persistErr
			}
			return report, ctx.Err()
		default:
		}

		desc, err := s.registry.Get(id)
		if err != nil {
			// Selection was resolved against the registry already.
			return report, err
		}

		result, frag := s.runModule(ctx, desc, doc, opts)
		report.add(result)

		if result.State == StateConfigured {
			fragments[id] = frag
		}
	}

	if err := s.persist(doc, fragments, selection, opts); err != nil {
		return report, err
	}

	configured, skipped, failed := report.Counts()
	s.logger.Info().
		Int("configured", configured).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("module setup completed")

	if !report.Success() {
		return report, fmt.Errorf("%w: %d of %d modules", ErrPartialFailure, failed, len(selection))
	}
	return report, nil
}

// hostGate runs the compatibility check once and converts the result into
// a fatal error when the gate fails. A version parse failure only disables
// the version comparison; the checker already logged the warning.
func (s *Service) hostGate(ctx context.Context) error {
	res := s.checker.Check(ctx)

	if !res.Installed {
		return fmt.Errorf("%w: install it with: %s", host.ErrNotFound, host.InstallCommand(host.MethodUnknown))
	}
	if res.VersionErr != nil {
		return nil
	}
	if !res.MeetsMinimum {
		return fmt.Errorf("%w: found %s, need %s or newer; upgrade with: %s",
			host.ErrIncompatible, res.Version, host.MinVersion, s.checker.UpgradeCommand())
	}
	return nil
}

// runModule walks one module through its phases. The first failing phase is
// terminal: later phases are not invoked for that module. A configured
// module's fragment is returned alongside the result for the document
// merge; it never serializes with the report.
func (s *Service) runModule(ctx context.Context, desc module.Descriptor, doc *mcp.Document, opts Options) (ModuleResult, module.Fragment) {
	id := desc.ID()
	res := ModuleResult{ModuleID: id}
	record := func(phase Phase, outcome Outcome, detail string) {
		res.Phases = append(res.Phases, PhaseResult{ModuleID: id, Phase: phase, Outcome: outcome, Detail: detail})
	}

	if !opts.SkipValidation {
		if err := desc.Validate(ctx); err != nil {
			s.logger.Warn().Str("module", id).Err(err).Msg("module validation failed")
			record(PhaseValidate, OutcomeFailed, err.Error())
			res.State = StateValidationFailed
			return res, nil
		}
		record(PhaseValidate, OutcomeSuccess, "")
	}

	if !opts.Force && desc.IsInstalled(ctx, doc) {
		s.logger.Debug().Str("module", id).Msg("module already installed (skipping)")
		record(PhaseInstall, OutcomeSkipped, "already installed")
		res.State = StateSkipped
		return res, nil
	}

	if opts.DryRun {
		record(PhaseInstall, OutcomeSkipped, "dry run")
		res.State = StateSkipped
		return res, nil
	}

	if err := desc.Install(ctx); err != nil {
		s.logger.Warn().Str("module", id).Err(err).Msg("module install failed")
		record(PhaseInstall, OutcomeFailed, err.Error())
		res.State = StateInstallFailed
		return res, nil
	}
	record(PhaseInstall, OutcomeSuccess, "")

	frag, err := desc.Configure(ctx)
	if err != nil {
		s.logger.Warn().Str("module", id).Err(err).Msg("module configure failed")
		record(PhaseConfigure, OutcomeFailed, err.Error())
		res.State = StateConfigureFailed
		return res, nil
	}
	record(PhaseConfigure, OutcomeSuccess, "")

	res.State = StateConfigured
	return res, frag
}

// persist merges configured fragments into the document in selection order
// and atomically replaces the on-disk file. Nothing is written for dry runs
// or when no module configured.
func (s *Service) persist(doc *mcp.Document, fragments map[string]module.Fragment, selection []string, opts Options) error {
	if opts.DryRun || len(fragments) == 0 {
		return nil
	}

	for _, id := range selection {
		if frag, ok := fragments[id]; ok {
			doc.Merge(id, frag)
		}
	}

	if err := doc.Save(s.configPath); err != nil {
		return err
	}
	s.logger.Info().Str("path", s.configPath).Int("modules", len(fragments)).Msg("configuration document written")
	return nil
}
