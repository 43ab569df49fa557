package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentry/mcplink/internal/config"
	"github.com/agentry/mcplink/internal/errors"
)

func testEntries() []config.ServerEntry {
	return []config.ServerEntry{
		{ID: "alpha", URL: "https://alpha.example.com", Enabled: true},
		{ID: "beta", URL: "https://beta.example.com", Enabled: false},
		{ID: "gamma", URL: "https://gamma.example.com", Enabled: true},
	}
}

func TestNew_DuplicateID(t *testing.T) {
	t.Parallel()

	_, err := New([]config.ServerEntry{
		{ID: "a", Enabled: true},
		{ID: "a", Enabled: true},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate server id")
}

func TestRegistry_Has(t *testing.T) {
	t.Parallel()

	reg, err := New(testEntries())
	require.NoError(t, err)

	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "enabled server", id: "alpha", want: true},
		{name: "disabled server", id: "beta", want: false},
		{name: "unknown server", id: "delta", want: false},
		{name: "empty id", id: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, reg.Has(tc.id))
		})
	}
}

func TestRegistry_Get(t *testing.T) {
	t.Parallel()

	reg, err := New(testEntries())
	require.NoError(t, err)

	// Disabled servers stay visible to introspection.
	entry, err := reg.Get("beta")
	require.NoError(t, err)
	require.Equal(t, "beta", entry.ID)
	require.False(t, entry.Enabled)

	_, err = reg.Get("delta")
	require.Error(t, err)
	require.True(t, errors.IsNotFound(err))
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	reg, err := New(testEntries())
	require.NoError(t, err)

	entry, err := reg.Resolve("alpha")
	require.NoError(t, err)
	require.Equal(t, "alpha", entry.ID)

	_, err = reg.Resolve("beta")
	require.True(t, errors.IsNotFound(err))

	_, err = reg.Resolve("delta")
	require.True(t, errors.IsNotFound(err))
}

func TestRegistry_List(t *testing.T) {
	t.Parallel()

	reg, err := New(testEntries())
	require.NoError(t, err)

	entries := reg.List()
	require.Len(t, entries, 3)

	// Registration order is preserved.
	require.Equal(t, "alpha", entries[0].ID)
	require.Equal(t, "beta", entries[1].ID)
	require.Equal(t, "gamma", entries[2].ID)
}

func TestRegistry_EnabledIDs(t *testing.T) {
	t.Parallel()

	reg, err := New(testEntries())
	require.NoError(t, err)

	require.Equal(t, []string{"alpha", "gamma"}, reg.EnabledIDs())
}

func TestRegistry_Empty(t *testing.T) {
	t.Parallel()

	reg, err := New(nil)
	require.NoError(t, err)
	require.Empty(t, reg.List())
	require.Empty(t, reg.EnabledIDs())
	require.False(t, reg.Has("anything"))
}
