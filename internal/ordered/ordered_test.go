package ordered_test

import (
	"strings"
	"testing"

	"github.com/KimNorgaard/go-ini/internal/ordered"
	"github.com/stretchr/testify/require"
)

func TestMap_InsertionOrder(t *testing.T) {
	m := ordered.New[int](nil)
	m.Put("b", 1)
	m.Put("a", 2)
	m.Put("c", 3)
	m.Put("a", 4) // replace keeps position

	require.Equal(t, []string{"b", "a", "c"}, m.Keys())
	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 4, v)
	require.Equal(t, 3, m.Len())
}

func TestMap_CaseFolding(t *testing.T) {
	m := ordered.New[string](strings.ToLower)
	m.Put("Host", "a")

	v, ok := m.Get("HOST")
	require.True(t, ok)
	require.Equal(t, "a", v)

	replaced := m.Put("hOsT", "b")
	require.True(t, replaced)

	// The first-seen spelling survives replacement.
	require.Equal(t, []string{"Host"}, m.Keys())
	v, _ = m.Get("host")
	require.Equal(t, "b", v)
}

func TestMap_Delete(t *testing.T) {
	m := ordered.New[int](nil)
	m.Put("a", 1)
	m.Put("b", 2)

	require.True(t, m.Delete("a"))
	require.False(t, m.Delete("a"))
	require.False(t, m.Has("a"))
	require.Equal(t, []string{"b"}, m.Keys())
}
