// Copyright 2025 Spantree Technology Group
//
// Licensed under the Apache License, Version 2.0 (the "License");

package module

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeModule is a minimal descriptor for registry tests.
type fakeModule struct {
	id   string
	meta Metadata
}

func (f *fakeModule) ID() string                                  { return f.id }
func (f *fakeModule) Meta() Metadata                              { return f.meta }
func (f *fakeModule) Validate(context.Context) error              { return nil }
func (f *fakeModule) IsInstalled(context.Context, ConfigView) bool { return false }
func (f *fakeModule) Install(context.Context) error               { return nil }
func (f *fakeModule) Configure(context.Context) (Fragment, error) { return Fragment{}, nil }

func newFake(id string, cat Category) *fakeModule {
	return &fakeModule{
		id: id,
		meta: Metadata{
			Name:        id,
			Description: "test module " + id,
			Category:    cat,
		},
	}
}

func TestNewRegistry_PreservesOrder(t *testing.T) {
	r, err := NewRegistry(
		newFake("alpha", CategoryCore),
		newFake("beta", CategoryOptional),
		newFake("gamma", CategoryCore),
	)
	require.NoError(t, err)
	require.Equal(t, 3, r.Count())
	require.Equal(t, []string{"alpha", "beta", "gamma"}, r.IDs())
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(
		newFake("alpha", CategoryCore),
		newFake("alpha", CategoryCore),
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already registered")
}

func TestNewRegistry_RejectsNil(t *testing.T) {
	_, err := NewRegistry(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "nil module")
}

func TestNewRegistry_RejectsInvalidMetadata(t *testing.T) {
	bad := &fakeModule{
		id: "bad",
		meta: Metadata{
			Name:        "Bad",
			Description: "", // missing
			Category:    CategoryCore,
		},
	}
	_, err := NewRegistry(bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "metadata invalid")
}

func TestNewRegistry_RejectsBadCategory(t *testing.T) {
	bad := newFake("bad", Category("experimental"))
	_, err := NewRegistry(bad)
	require.Error(t, err)
}

func TestRegistry_Get(t *testing.T) {
	r, err := NewRegistry(newFake("alpha", CategoryCore))
	require.NoError(t, err)

	d, err := r.Get("alpha")
	require.NoError(t, err)
	require.Equal(t, "alpha", d.ID())

	_, err = r.Get("missing")
	require.ErrorIs(t, err, ErrUnknownModule)
	require.Contains(t, err.Error(), "'missing'")
}

func TestRegistry_EveryIDResolves(t *testing.T) {
	r, err := NewRegistry(Builtin()...)
	require.NoError(t, err)

	for _, id := range r.IDs() {
		d, err := r.Get(id)
		require.NoError(t, err)
		require.Equal(t, id, d.ID())
	}
}

func TestRegistry_CategoryFilters(t *testing.T) {
	r, err := NewRegistry(
		newFake("alpha", CategoryCore),
		newFake("beta", CategoryOptional),
		newFake("gamma", CategoryCore),
	)
	require.NoError(t, err)

	core := r.Core()
	require.Len(t, core, 2)
	require.Equal(t, "alpha", core[0].ID())
	require.Equal(t, "gamma", core[1].ID())

	optional := r.Optional()
	require.Len(t, optional, 1)
	require.Equal(t, "beta", optional[0].ID())
}

func TestRegistry_AllReturnsCopy(t *testing.T) {
	r, err := NewRegistry(newFake("alpha", CategoryCore), newFake("beta", CategoryCore))
	require.NoError(t, err)

	all := r.All()
	all[0] = all[1]

	require.Equal(t, "alpha", r.All()[0].ID())
}
