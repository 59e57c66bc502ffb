package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archpadhq/archpad/pkg/diagram"
	appio "github.com/archpadhq/archpad/pkg/io"
)

func sampleDiagram() appio.Diagram {
	return appio.Diagram{
		Nodes: []appio.Node{
			{
				ID:       "node_0",
				Type:     appio.NodeTypeDefault,
				Position: diagram.Position{X: 10, Y: 20},
				Data:     appio.NodeData{Label: "Kafka", Description: "event backbone"},
			},
			{
				ID:   "node_1",
				Type: appio.NodeTypeCustom,
				Data: appio.NodeData{Label: "Notes", IsCustom: true},
			},
		},
		Edges: []appio.Edge{
			{ID: "e1", Source: "node_0", Target: "node_1", Animated: true, MarkerEnd: diagram.MarkerArrowClosed},
		},
	}
}

// storeUnderTest exercises the Store contract shared by every backend.
func storeUnderTest(t *testing.T, s Store) {
	ctx := context.Background()
	d := sampleDiagram()

	t.Run("empty list", func(t *testing.T) {
		names, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put get roundtrip", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "pipeline", d))

		got, err := s.Get(ctx, "pipeline")
		require.NoError(t, err)
		assert.Equal(t, d, got)
	})

	t.Run("put replaces", func(t *testing.T) {
		smaller := appio.Diagram{Nodes: d.Nodes[:1]}
		require.NoError(t, s.Put(ctx, "pipeline", smaller))

		got, err := s.Get(ctx, "pipeline")
		require.NoError(t, err)
		assert.Len(t, got.Nodes, 1)
		assert.Empty(t, got.Edges)
	})

	t.Run("list sorted", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "zeta", d))
		require.NoError(t, s.Put(ctx, "alpha", d))

		names, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "pipeline", "zeta"}, names)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "pipeline"))
		_, err := s.Get(ctx, "pipeline")
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, s.Delete(ctx, "pipeline"), ErrNotFound)
	})

	t.Run("invalid names rejected", func(t *testing.T) {
		assert.ErrorIs(t, s.Put(ctx, "", d), ErrInvalidName)
		assert.ErrorIs(t, s.Put(ctx, "../escape", d), ErrInvalidName)
		assert.ErrorIs(t, s.Put(ctx, "a/b", d), ErrInvalidName)
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	storeUnderTest(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "designs"))
	require.NoError(t, err)
	defer s.Close()
	storeUnderTest(t, s)
}

func TestFileStoreListsHandAuthoredFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	defer s.Close()

	// A design file dropped into the directory by hand is part of the
	// catalog too - but only under a name Get accepts. Anything else
	// would be listed yet unfetchable.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manual.json"), []byte(`{"nodes":[],"edges":[]}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad#name.json"), []byte(`{"nodes":[],"edges":[]}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.json"), []byte(`{"nodes":[],"edges":[]}`), 0644))

	names, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"manual"}, names)

	for _, name := range names {
		_, err := s.Get(context.Background(), name)
		assert.NoError(t, err, name)
	}

	got, err := s.Get(context.Background(), "manual")
	require.NoError(t, err)
	assert.Empty(t, got.Nodes)
}

func TestValidateName(t *testing.T) {
	valid := []string{"a", "my-design", "data_pipeline.v2", "Prod 2026"}
	for _, name := range valid {
		assert.NoError(t, ValidateName(name), name)
	}

	invalid := []string{"", ".", "..", "../x", "a/b", `a\b`, "-leading", " leading"}
	for _, name := range invalid {
		assert.ErrorIs(t, ValidateName(name), ErrInvalidName, name)
	}
}
