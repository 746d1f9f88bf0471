// Package history maintains a linear, branch-discarding undo/redo stack of
// canvas snapshots.
package history

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"roompainter/internal/compositor"
	"roompainter/internal/region"
)

// Entry is one undoable state: an encoded canvas snapshot plus the region
// set and fill assignment that were valid when it was taken. Restoring an
// entry must restore all three, or the next recomposite would diverge from
// the displayed canvas.
type Entry struct {
	Snapshot []byte // PNG-encoded raster
	Regions  []region.Region
	Fills    map[string]compositor.Fill
}

// Decode returns the snapshot as a drawable raster.
func (e Entry) Decode() (*image.RGBA, error) {
	img, err := png.Decode(bytes.NewReader(e.Snapshot))
	if err != nil {
		return nil, fmt.Errorf("decode history snapshot: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out, nil
}

// Manager is a classic linear undo stack: entries are append-only at the
// current index, and pushing after an undo discards the abandoned future.
// Undo and redo only ever move the pointer.
type Manager struct {
	entries []Entry
	index   int
}

// NewManager returns an empty history.
func NewManager() *Manager {
	return &Manager{index: -1}
}

// Reset discards all entries and installs the given state as the single
// initial entry. Called when a new detection result arrives.
func (m *Manager) Reset(img *image.RGBA, regions []region.Region, fills map[string]compositor.Fill) error {
	entry, err := encode(img, regions, fills)
	if err != nil {
		return err
	}
	m.entries = []Entry{entry}
	m.index = 0
	return nil
}

// Push truncates any entries beyond the current pointer, appends the new
// snapshot, and advances the pointer. Called after every successful
// composite.
func (m *Manager) Push(img *image.RGBA, regions []region.Region, fills map[string]compositor.Fill) error {
	entry, err := encode(img, regions, fills)
	if err != nil {
		return err
	}
	m.entries = append(m.entries[:m.index+1], entry)
	m.index = len(m.entries) - 1
	return nil
}

// Undo moves the pointer one entry back and returns the entry now pointed
// to. At the oldest entry it is a no-op and returns ok=false.
func (m *Manager) Undo() (Entry, bool) {
	if m.index <= 0 {
		return Entry{}, false
	}
	m.index--
	return m.entries[m.index], true
}

// Redo moves the pointer one entry forward and returns it. At the newest
// entry it is a no-op and returns ok=false.
func (m *Manager) Redo() (Entry, bool) {
	if m.index < 0 || m.index >= len(m.entries)-1 {
		return Entry{}, false
	}
	m.index++
	return m.entries[m.index], true
}

// Current returns the entry at the pointer.
func (m *Manager) Current() (Entry, bool) {
	if m.index < 0 || m.index >= len(m.entries) {
		return Entry{}, false
	}
	return m.entries[m.index], true
}

// Len returns the number of reachable states.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Index returns the current pointer position, or -1 when empty.
func (m *Manager) Index() int {
	return m.index
}

// CanUndo reports whether Undo would move the pointer.
func (m *Manager) CanUndo() bool {
	return m.index > 0
}

// CanRedo reports whether Redo would move the pointer.
func (m *Manager) CanRedo() bool {
	return m.index >= 0 && m.index < len(m.entries)-1
}

func encode(img *image.RGBA, regions []region.Region, fills map[string]compositor.Fill) (Entry, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Entry{}, fmt.Errorf("encode history snapshot: %w", err)
	}
	regs := make([]region.Region, len(regions))
	copy(regs, regions)
	fc := make(map[string]compositor.Fill, len(fills))
	for id, fill := range fills {
		fc[id] = fill
	}
	return Entry{Snapshot: buf.Bytes(), Regions: regs, Fills: fc}, nil
}
