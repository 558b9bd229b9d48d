package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[int]bool{3: true, 1: false, 2: true})

	assert.Equal(t, []int{1, 2, 3}, keys)
}

func TestMaxAndSum(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(9), Max(uint8(3), uint8(9)))
	assert.Equal(0.5, Max(0.5, 0.25))
	assert.Equal(uint64(6), Sum([]int{1, 2, 3}))
}

func TestGatherAllMidiPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mid", "a.MIDI", "notes.txt", "sub/c.mid"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0777))
		require.NoError(t, os.WriteFile(path, []byte{}, 0666))
	}

	all, err := GatherAllMidiPaths(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.MIDI"),
		filepath.Join(dir, "b.mid"),
		filepath.Join(dir, "sub/c.mid"),
	}, all)

	limited, err := GatherAllMidiPaths(dir, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
