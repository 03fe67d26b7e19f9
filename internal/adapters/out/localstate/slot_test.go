package localstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSlotRoundTrip(t *testing.T) {
	s := NewSlot(filepath.Join(t.TempDir(), "nested", "state.json"))

	require.NoError(t, s.Save(payload{Name: "cart", Count: 3}))

	var got payload
	found, err := s.Load(&got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Name: "cart", Count: 3}, got)
}

func TestSlotMissingFileIsEmpty(t *testing.T) {
	s := NewSlot(filepath.Join(t.TempDir(), "absent.json"))

	var got payload
	found, err := s.Load(&got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSlotCorruptFileReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{corrupt"), 0o644))

	var got payload
	found, err := NewSlot(path).Load(&got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestSlotOverwrite(t *testing.T) {
	s := NewSlot(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, s.Save(payload{Count: 1}))
	require.NoError(t, s.Save(payload{Count: 2}))

	var got payload
	_, err := s.Load(&got)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
}
