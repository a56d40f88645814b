// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package setup

import "github.com/google/uuid"

// Phase identifies one lifecycle phase of a module run.
type Phase string

const (
	PhaseValidate  Phase = "validate"
	PhaseInstall   Phase = "install"
	PhaseConfigure Phase = "configure"
)

// Outcome is the result of a single phase.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// State is a module's terminal state for the run. No module leaves a
// terminal state within a single run.
type State string

const (
	StateConfigured       State = "configured"
	StateSkipped          State = "skipped"
	StateValidationFailed State = "validation-failed"
	StateInstallFailed    State = "install-failed"
	StateConfigureFailed  State = "configure-failed"
)

// ok reports whether the state counts toward aggregate success.
func (s State) ok() bool {
	return s == StateConfigured || s == StateSkipped
}

// PhaseResult is one phase outcome for one module.
type PhaseResult struct {
	ModuleID string  `json:"module_id"`
	Phase    Phase   `json:"phase"`
	Outcome  Outcome `json:"outcome"`
	Detail   string  `json:"detail,omitempty"`
}

// ModuleResult groups a module's phase results and terminal state.
type ModuleResult struct {
	ModuleID string        `json:"module_id"`
	State    State         `json:"state"`
	Phases   []PhaseResult `json:"phases"`
}

// Report is the ordered per-module, per-phase record of one run. It is
// append-only while the run executes and never mutated afterwards; module
// order matches selection order.
type Report struct {
	RunID   string         `json:"run_id"`
	Modules []ModuleResult `json:"modules"`
}

// NewReport starts an empty report with a fresh run ID.
func NewReport() *Report {
	return &Report{RunID: uuid.NewString()}
}

// add appends a module result, preserving selection order.
func (r *Report) add(m ModuleResult) {
	r.Modules = append(r.Modules, m)
}

// Success reports the aggregate outcome: true only if every module reached
// a configured or skipped state.
func (r *Report) Success() bool {
	for _, m := range r.Modules {
		if !m.State.ok() {
			return false
		}
	}
	return true
}

// Counts returns the configured, skipped, and failed module totals.
func (r *Report) Counts() (configured, skipped, failed int) {
	for _, m := range r.Modules {
		switch {
		case m.State == StateConfigured:
			configured++
		case m.State == StateSkipped:
			skipped++
		default:
			failed++
		}
	}
	return configured, skipped, failed
}
