// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package host probes the Claude Code CLI installation: whether it is
// present, how it was installed, and whether its version meets the minimum
// this toolkit requires. Probe output is treated as untrusted free-form
// text.
package host

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog/log"
)

// Binary is the host tool executable probed on PATH.
const Binary = "claude"

// MinVersion is the minimum host tool version the toolkit supports.
const MinVersion = "1.0.0"

var minVersion = semver.MustParse(MinVersion)

// Method identifies how the host tool was installed. Package-manager
// evidence is preferred over a bare executable on PATH because it
// determines the correct upgrade command.
type Method string

const (
	MethodHomebrew Method = "homebrew"
	MethodNpm      Method = "npm"
	MethodOther    Method = "other"
	MethodUnknown  Method = "unknown"
)

// Known install-location markers, checked in priority order.
var (
	homebrewPrefixes = []string{
		"/opt/homebrew/",            // macOS ARM
		"/usr/local/Cellar/",        // macOS Intel
		"/home/linuxbrew/.linuxbrew/", // Linux
	}
	npmMarkers = []string{
		"/node_modules/",
		"/.nvm/",
		"/.npm-global/",
	}
)

// versionPattern extracts a dotted version from free-form --version output.
// A missing minor or patch component parses as zero.
var versionPattern = regexp.MustCompile(`\d+(?:\.\d+){0,2}`)

// Result is the outcome of one host compatibility probe, computed once per
// invocation.
type Result struct {
	Installed    bool
	Path         string
	Method       Method
	Version      *semver.Version
	MeetsMinimum bool

	// VersionErr is set when the host tool reported a version string no
	// semver triple could be extracted from. It degrades the version gate
	// to a warning; it never fails the run on its own.
	VersionErr error
}

// Checker probes the host tool. The probe functions are injectable so the
// checker is testable without Claude Code on the machine.
type Checker struct {
	lookPath   func(file string) (string, error)
	runVersion func(ctx context.Context) (string, error)
}

// NewChecker returns a Checker wired to the real PATH lookup and the host
// tool's own version-reporting interface.
func NewChecker() *Checker {
	return &Checker{
		lookPath: exec.LookPath,
		runVersion: func(ctx context.Context) (string, error) {
			ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			out, err := exec.CommandContext(ctx, Binary, "--version").CombinedOutput()
			if err != nil {
				return "", fmt.Errorf("%s --version: %w", Binary, err)
			}
			return string(out), nil
		},
	}
}

// NewCheckerWith returns a Checker using the given probe functions instead
// of the real PATH lookup and version command.
func NewCheckerWith(lookPath func(string) (string, error), runVersion func(context.Context) (string, error)) *Checker {
	return &Checker{lookPath: lookPath, runVersion: runVersion}
}

// DetectInstallMethod determines how the host tool was installed, probing
// in fixed priority order: Homebrew prefixes, npm path markers, then a bare
// PATH hit. Returns MethodUnknown when the tool is not on PATH at all.
func (c *Checker) DetectInstallMethod() Method {
	path, err := c.lookPath(Binary)
	if err != nil {
		return MethodUnknown
	}
	return classifyPath(path)
}

// classifyPath maps an executable path to an install method.
func classifyPath(path string) Method {
	for _, prefix := range homebrewPrefixes {
		if strings.Contains(path, prefix) {
			return MethodHomebrew
		}
	}
	for _, marker := range npmMarkers {
		if strings.Contains(path, marker) {
			return MethodNpm
		}
	}
	return MethodOther
}

// InstalledVersion invokes the host tool's version interface and extracts a
// semantic version from its free-form output. A response with no parseable
// version yields ErrVersionParse.
func (c *Checker) InstalledVersion(ctx context.Context) (*semver.Version, error) {
	out, err := c.runVersion(ctx)
	if err != nil {
		return nil, err
	}

	raw := versionPattern.FindString(out)
	if raw == "" {
		return nil, fmt.Errorf("%w: no version in %q", ErrVersionParse, strings.TrimSpace(out))
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %s", ErrVersionParse, raw, err)
	}
	return v, nil
}

// InstallCommand returns the canonical install command for a method. It is
// a pure lookup with no I/O; an unrecognized or unknown method defaults to
// the first supported method (Homebrew).
func InstallCommand(method Method) string {
	switch method {
	case MethodNpm:
		return "npm install -g @anthropic-ai/claude-code"
	default:
		return "brew install --cask claude-code"
	}
}

// UpgradeCommand composes install-method detection with the method's
// upgrade command. When detection yields unknown, it suggests a reinstall
// rather than failing.
func (c *Checker) UpgradeCommand() string {
	switch c.DetectInstallMethod() {
	case MethodHomebrew:
		return "brew upgrade --cask claude-code"
	case MethodNpm:
		return "npm update -g @anthropic-ai/claude-code"
	case MethodOther:
		return InstallCommand(MethodUnknown)
	default:
		return "reinstall Claude Code from https://claude.com/claude-code"
	}
}

// Check runs the full probe once: presence, install method, version, and
// the minimum-version comparison. A version parse failure is recorded in
// VersionErr and disables only the version gate.
func (c *Checker) Check(ctx context.Context) Result {
	path, err := c.lookPath(Binary)
	if err != nil {
		log.Debug().Str("binary", Binary).Msg("host tool not found on PATH")
		return Result{Installed: false, Method: MethodUnknown}
	}

	res := Result{
		Installed: true,
		Path:      path,
		Method:    classifyPath(path),
	}

	v, err := c.InstalledVersion(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("could not determine host tool version; skipping version gate")
		res.VersionErr = err
		return res
	}

	res.Version = v
	res.MeetsMinimum = !v.LessThan(minVersion)

	log.Debug().
		Str("path", path).
		Str("method", string(res.Method)).
		Str("version", v.String()).
		Bool("meets_minimum", res.MeetsMinimum).
		Msg("host compatibility probe complete")

	return res
}
