// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package mcp owns the persisted MCP configuration document (.mcp.json).
// The document maps module IDs to their server fragments. Merging preserves
// entries the current run does not touch, and writes are all-or-nothing:
// the merged document is built in memory and atomically replaces the
// on-disk file under an advisory lock.
package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cast"

	"github.com/spantree/fluent-toolkit/pkg/module"
)

// DefaultPath is the project-relative location of the configuration
// document.
const DefaultPath = ".mcp.json"

// serversKey is the top-level key holding module fragments.
const serversKey = "mcpServers"

// ErrPersist is returned when the configuration document cannot be read or
// durably written. Fatal for the run: nothing was saved.
var ErrPersist = errors.New("configuration document persistence failed")

// Document is the in-memory form of .mcp.json. Top-level keys other than
// mcpServers are preserved verbatim so the toolkit can share the file with
// other writers' settings.
type Document struct {
	root map[string]any
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{root: map[string]any{serversKey: map[string]any{}}}
}

// Load reads the document at path. A missing file yields an empty document;
// malformed JSON is ErrPersist up front so an existing file is never
// silently clobbered.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("%w: read %s: %s", ErrPersist, path, err)
	}

	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %s is not valid JSON: %s", ErrPersist, path, err)
	}
	if root == nil {
		root = map[string]any{}
	}
	if _, ok := root[serversKey]; !ok {
		root[serversKey] = map[string]any{}
	}

	return &Document{root: root}, nil
}

// servers returns the mcpServers map, normalizing whatever shape a previous
// writer left behind.
func (d *Document) servers() map[string]any {
	m, err := cast.ToStringMapE(d.root[serversKey])
	if err != nil || m == nil {
		m = map[string]any{}
		d.root[serversKey] = m
	}
	return m
}

// HasServer reports whether a fragment for the given module ID is present.
// Implements module.ConfigView.
func (d *Document) HasServer(id string) bool {
	_, ok := d.servers()[id]
	return ok
}

// ServerIDs returns the module IDs currently in the document.
func (d *Document) ServerIDs() []string {
	srv := d.servers()
	ids := make([]string, 0, len(srv))
	for id := range srv {
		ids = append(ids, id)
	}
	return ids
}

// Merge sets the fragment for a module ID, replacing any previous fragment
// for that ID and leaving every other entry untouched.
func (d *Document) Merge(id string, frag module.Fragment) {
	srv := d.servers()
	srv[id] = map[string]any(frag)
	d.root[serversKey] = srv
}

// Encode renders the document as canonical JSON: two-space indent, sorted
// object keys, trailing newline. Re-encoding an unchanged document is
// byte-identical, which is what makes re-runs idempotent on disk.
func (d *Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d.root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %s", ErrPersist, err)
	}
	return append(data, '\n'), nil
}

// Save atomically replaces the file at path with the encoded document. The
// write happens under an advisory lock, into a temp file in the same
// directory, then a rename. Either the whole document lands or nothing
// changes.
func (d *Document) Save(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("%w: lock %s: %s", ErrPersist, path, err)
	}
	defer lock.Unlock() //nolint:errcheck

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file in %s: %s", ErrPersist, dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("%w: write %s: %s", ErrPersist, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("%w: sync %s: %s", ErrPersist, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %s", ErrPersist, tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: replace %s: %s", ErrPersist, path, err)
	}
	return nil
}
