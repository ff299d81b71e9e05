package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/graphstore/internal/registry"
)

type fakeHandle struct {
	name    string
	adapter string
	closed  bool
}

func (h *fakeHandle) Name() string        { return h.name }
func (h *fakeHandle) AdapterKind() string { return h.adapter }
func (h *fakeHandle) Close()              { h.closed = true }

func TestRegisterLookupUnregister(t *testing.T) {
	r := registry.New()
	h := &fakeHandle{name: "s1", adapter: "memory"}

	require.NoError(t, r.Register("s1", h))

	got, adapter, ok := r.Lookup("s1")
	require.True(t, ok)
	assert.Equal(t, h, got)
	assert.Equal(t, "memory", adapter)

	r.Unregister("s1")
	_, _, ok = r.Lookup("s1")
	assert.False(t, ok)
}

func TestRegisterDuplicateNameFails(t *testing.T) {
	r := registry.New()
	h1 := &fakeHandle{name: "s1"}
	h2 := &fakeHandle{name: "s1"}

	require.NoError(t, r.Register("s1", h1))
	err := r.Register("s1", h2)
	assert.Error(t, err)
}

func TestNamesSorted(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register("zeta", &fakeHandle{name: "zeta"}))
	require.NoError(t, r.Register("alpha", &fakeHandle{name: "alpha"}))

	assert.Equal(t, []string{"alpha", "zeta"}, r.Names())
}
