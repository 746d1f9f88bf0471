package history

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"roompainter/internal/compositor"
	"roompainter/internal/region"
)

func solidImage(lum uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = lum, lum, lum, 255
	}
	return img
}

func oneRegion(id string) []region.Region {
	return []region.Region{{
		ID:       id,
		Boundary: region.Path{{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}},
	}}
}

func TestEmptyManager(t *testing.T) {
	m := NewManager()
	require.Zero(t, m.Len())
	require.Equal(t, -1, m.Index())
	require.False(t, m.CanUndo())
	require.False(t, m.CanRedo())

	_, ok := m.Undo()
	require.False(t, ok)
	_, ok = m.Redo()
	require.False(t, ok)
	_, ok = m.Current()
	require.False(t, ok)
}

func TestResetInstallsSingleEntry(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Push(solidImage(1), nil, nil))
	require.NoError(t, m.Push(solidImage(2), nil, nil))

	require.NoError(t, m.Reset(solidImage(9), oneRegion("a"), nil))
	require.Equal(t, 1, m.Len())
	require.Equal(t, 0, m.Index())
	require.False(t, m.CanUndo())
	require.False(t, m.CanRedo())
}

// N edits yield N+1 reachable states including the initial one.
func TestPushGrowsLinearly(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Reset(solidImage(0), nil, nil))

	for i := 1; i <= 3; i++ {
		require.NoError(t, m.Push(solidImage(uint8(i*40)), nil, nil))
	}
	require.Equal(t, 4, m.Len())
	require.Equal(t, 3, m.Index())
}

func TestUndoRedoWalk(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Reset(solidImage(10), nil, nil))
	require.NoError(t, m.Push(solidImage(20), nil, nil))
	require.NoError(t, m.Push(solidImage(30), nil, nil))

	entry, ok := m.Undo()
	require.True(t, ok)
	img, err := entry.Decode()
	require.NoError(t, err)
	require.Equal(t, uint8(20), img.Pix[0])

	entry, ok = m.Undo()
	require.True(t, ok)
	img, err = entry.Decode()
	require.NoError(t, err)
	require.Equal(t, uint8(10), img.Pix[0])

	// At the oldest state, undo is a no-op.
	_, ok = m.Undo()
	require.False(t, ok)
	require.Equal(t, 0, m.Index())

	entry, ok = m.Redo()
	require.True(t, ok)
	img, err = entry.Decode()
	require.NoError(t, err)
	require.Equal(t, uint8(20), img.Pix[0])

	_, ok = m.Redo()
	require.True(t, ok)
	_, ok = m.Redo()
	require.False(t, ok)
	require.Equal(t, 2, m.Index())
}

// Pushing after an undo discards the redo branch.
func TestPushTruncatesFuture(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Reset(solidImage(10), nil, nil))
	require.NoError(t, m.Push(solidImage(20), nil, nil))
	require.NoError(t, m.Push(solidImage(30), nil, nil))

	_, ok := m.Undo()
	require.True(t, ok)
	_, ok = m.Undo()
	require.True(t, ok)

	require.NoError(t, m.Push(solidImage(99), nil, nil))
	require.Equal(t, 2, m.Len())
	require.False(t, m.CanRedo())

	entry, ok := m.Current()
	require.True(t, ok)
	img, err := entry.Decode()
	require.NoError(t, err)
	require.Equal(t, uint8(99), img.Pix[0])
}

func TestEntryCarriesRegions(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Reset(solidImage(5), oneRegion("wall-1"), nil))

	entry, ok := m.Current()
	require.True(t, ok)
	require.Len(t, entry.Regions, 1)
	require.Equal(t, "wall-1", entry.Regions[0].ID)
}

// Each entry keeps its own copy of the fill assignment, so undoing to it
// restores exactly the fills that produced its snapshot.
func TestEntryCarriesFills(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Reset(solidImage(5), oneRegion("wall-1"), nil))

	fills := map[string]compositor.Fill{
		"wall-1": compositor.Solid(color.RGBA{R: 200, G: 40, B: 40, A: 255}),
	}
	require.NoError(t, m.Push(solidImage(6), oneRegion("wall-1"), fills))

	// Mutating the caller's map after the push must not leak into the entry.
	fills["wall-2"] = compositor.Solid(color.RGBA{R: 1, G: 2, B: 3, A: 255})

	entry, ok := m.Current()
	require.True(t, ok)
	require.Len(t, entry.Fills, 1)
	require.Equal(t, uint8(200), entry.Fills["wall-1"].Color.R)

	entry, ok = m.Undo()
	require.True(t, ok)
	require.Empty(t, entry.Fills)
}

func TestSnapshotIsLossless(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(1, 2, color.RGBA{R: 12, G: 200, B: 77, A: 255})
	img.SetRGBA(3, 0, color.RGBA{R: 255, G: 0, B: 128, A: 255})
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}

	m := NewManager()
	require.NoError(t, m.Reset(img, nil, nil))

	entry, _ := m.Current()
	decoded, err := entry.Decode()
	require.NoError(t, err)
	require.Equal(t, img.Pix, decoded.Pix)
}
