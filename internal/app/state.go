// Package app provides application state, the selection workflow, and events.
package app

import (
	"fmt"
	goimage "image"
	"sync"

	"roompainter/internal/compositor"
	"roompainter/internal/history"
	"roompainter/internal/region"

	"github.com/sirupsen/logrus"
)

// Phase is the interaction state. Selection and painting are only legal in
// certain phases; illegal inputs are ignored rather than erroring.
type Phase int

const (
	// PhaseIdle: an image may be loaded but no region is selected.
	PhaseIdle Phase = iota
	// PhaseSelected: exactly one region is selected and awaiting a fill.
	PhaseSelected
	// PhaseCompositing: a blend is running; all activation input is
	// dropped until it finishes.
	PhaseCompositing
)

// EventType identifies application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventRegionsDetected
	EventCanvasUpdated
	EventSelectionChanged
	EventHistoryChanged
	EventAnalysisReady
	EventError
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the session: the pristine photo, the detected wall regions,
// the fills applied so far, and the undo history. The displayed canvas is
// always a pure function of (base, regions, fills) rebuilt through the
// compositor; nothing ever draws on the base.
type State struct {
	mu sync.RWMutex

	// Source photo
	ImagePath string
	ImageID   string // service-side identifier, empty until uploaded

	base   *goimage.RGBA
	canvas *goimage.RGBA

	regions []region.Region
	fills   map[string]compositor.Fill

	selectedID string
	activeFill *compositor.Fill

	phase   Phase
	peeking bool

	comp    *compositor.Compositor
	history *history.Manager
	log     *logrus.Logger

	listeners map[EventType][]EventListener
}

// NewState creates an empty session.
func NewState(comp *compositor.Compositor, log *logrus.Logger) *State {
	if comp == nil {
		comp = compositor.New(log)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &State{
		fills:     make(map[string]compositor.Fill),
		comp:      comp,
		history:   history.NewManager(),
		log:       log,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type. Listeners run
// outside the state lock and may call back into State.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetImage installs a new photo and resets the whole session: regions,
// fills, selection, and history all start over.
func (s *State) SetImage(img *goimage.RGBA, path string) {
	s.mu.Lock()
	s.ImagePath = path
	s.ImageID = ""
	s.base = img
	s.canvas = compositor.CloneRGBA(img)
	s.regions = nil
	s.fills = make(map[string]compositor.Fill)
	s.selectedID = ""
	s.phase = PhaseIdle
	s.history = history.NewManager()
	s.mu.Unlock()

	s.Emit(EventImageLoaded, path)
	s.Emit(EventCanvasUpdated, nil)
}

// SetImageID records the service identifier after an upload.
func (s *State) SetImageID(id string) {
	s.mu.Lock()
	s.ImageID = id
	s.mu.Unlock()
}

// SetRegions normalizes a detection result into the session. Malformed
// regions are dropped and reported; the remainder become the selectable
// walls. History restarts at the clean canvas with these regions.
func (s *State) SetRegions(raws []region.RawRegion) error {
	s.mu.Lock()
	if s.base == nil {
		s.mu.Unlock()
		return fmt.Errorf("no image loaded")
	}

	regions, errs := region.NormalizeAll(raws)
	for _, err := range errs {
		s.log.WithError(err).Warn("dropped malformed region")
	}

	s.regions = regions
	s.fills = make(map[string]compositor.Fill)
	s.selectedID = ""
	s.phase = PhaseIdle
	s.canvas = compositor.CloneRGBA(s.base)

	s.history = history.NewManager()
	err := s.history.Reset(s.canvas, s.regions, s.fills)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.Emit(EventRegionsDetected, len(regions))
	s.Emit(EventCanvasUpdated, nil)
	s.Emit(EventHistoryChanged, nil)
	for _, e := range errs {
		s.Emit(EventError, e)
	}
	return nil
}

// SetFill changes the active fill. When a region is selected the canvas is
// recomposited immediately with the new fill on that region.
func (s *State) SetFill(fill compositor.Fill) error {
	s.mu.Lock()
	prevActive := s.activeFill
	s.activeFill = &fill

	if s.selectedID == "" || s.phase == PhaseCompositing {
		s.mu.Unlock()
		return nil
	}
	prevFill, had := s.fills[s.selectedID]
	s.fills[s.selectedID] = fill
	err := s.recompositeLocked()
	if err != nil {
		// The bad fill must not linger in the session.
		if had {
			s.fills[s.selectedID] = prevFill
		} else {
			delete(s.fills, s.selectedID)
		}
		s.activeFill = prevActive
	}
	s.mu.Unlock()

	if err != nil {
		s.Emit(EventError, err)
		return err
	}
	s.Emit(EventCanvasUpdated, nil)
	s.Emit(EventHistoryChanged, nil)
	return nil
}

// ActiveFill returns the current fill choice, if any.
func (s *State) ActiveFill() (compositor.Fill, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeFill == nil {
		return compositor.Fill{}, false
	}
	return *s.activeFill, true
}

// ActivateAt handles a tap at image coordinates. A hit on an unselected
// region selects it (and paints it if a fill is active); a hit on the
// selected region deselects it and removes its paint; a miss deselects.
// Input during compositing is dropped.
func (s *State) ActivateAt(x, y float64) {
	s.mu.RLock()
	if s.phase == PhaseCompositing {
		s.mu.RUnlock()
		return
	}
	reg, ok := region.FindAt(s.regions, x, y)
	s.mu.RUnlock()

	if !ok {
		s.deselect()
		return
	}
	s.ActivateRegion(reg.ID)
}

// ActivateRegion selects or toggles a region by id.
func (s *State) ActivateRegion(id string) {
	s.mu.Lock()
	if s.phase == PhaseCompositing {
		s.mu.Unlock()
		return
	}

	if s.selectedID == id {
		// Toggle off: deselect and strip the region's paint.
		prevFill, had := s.fills[id]
		delete(s.fills, id)
		s.selectedID = ""
		s.phase = PhaseIdle
		err := s.recompositeLocked()
		if err != nil && had {
			s.fills[id] = prevFill
		}
		s.mu.Unlock()

		if err != nil {
			s.Emit(EventError, err)
			return
		}
		s.Emit(EventSelectionChanged, "")
		s.Emit(EventCanvasUpdated, nil)
		s.Emit(EventHistoryChanged, nil)
		return
	}

	s.selectedID = id
	s.phase = PhaseSelected

	var err error
	painted := false
	if s.activeFill != nil {
		prevFill, had := s.fills[id]
		s.fills[id] = *s.activeFill
		if err = s.recompositeLocked(); err != nil {
			if had {
				s.fills[id] = prevFill
			} else {
				delete(s.fills, id)
			}
		}
		painted = true
	}
	s.mu.Unlock()

	if err != nil {
		s.Emit(EventError, err)
		return
	}
	s.Emit(EventSelectionChanged, id)
	if painted {
		s.Emit(EventCanvasUpdated, nil)
		s.Emit(EventHistoryChanged, nil)
	}
}

func (s *State) deselect() {
	s.mu.Lock()
	if s.selectedID == "" {
		s.mu.Unlock()
		return
	}
	s.selectedID = ""
	s.phase = PhaseIdle
	s.mu.Unlock()

	s.Emit(EventSelectionChanged, "")
}

// recompositeLocked rebuilds the canvas from the pristine base with the
// current fill set and pushes the result onto history. Caller holds mu.
// The compositing guard stays up for the duration.
func (s *State) recompositeLocked() error {
	prev := s.phase
	s.phase = PhaseCompositing
	defer func() { s.phase = prev }()

	canvas, err := s.comp.ApplyAll(s.base, s.regions, s.fills)
	if err != nil {
		return err
	}
	s.canvas = canvas
	return s.history.Push(canvas, s.regions, s.fills)
}

// Undo steps the session back one state. No-op at the oldest state.
func (s *State) Undo() {
	s.stepHistory(func() (history.Entry, bool) { return s.history.Undo() })
}

// Redo steps the session forward one state. No-op at the newest state.
func (s *State) Redo() {
	s.stepHistory(func() (history.Entry, bool) { return s.history.Redo() })
}

func (s *State) stepHistory(move func() (history.Entry, bool)) {
	s.mu.Lock()
	entry, ok := move()
	if !ok {
		s.mu.Unlock()
		return
	}
	canvas, err := entry.Decode()
	if err != nil {
		s.mu.Unlock()
		s.Emit(EventError, err)
		return
	}
	s.canvas = canvas
	s.regions = entry.Regions
	fills := make(map[string]compositor.Fill, len(entry.Fills))
	for id, fill := range entry.Fills {
		fills[id] = fill
	}
	s.fills = fills
	s.selectedID = ""
	s.phase = PhaseIdle
	s.mu.Unlock()

	s.Emit(EventSelectionChanged, "")
	s.Emit(EventCanvasUpdated, nil)
	s.Emit(EventHistoryChanged, nil)
}

// ClearOverlays removes every applied fill and restores the clean photo.
// Recorded as one undoable step.
func (s *State) ClearOverlays() {
	s.mu.Lock()
	if s.base == nil || len(s.fills) == 0 {
		s.mu.Unlock()
		return
	}
	prev := s.fills
	s.fills = make(map[string]compositor.Fill)
	err := s.recompositeLocked()
	if err != nil {
		s.fills = prev
	}
	s.mu.Unlock()

	if err != nil {
		s.Emit(EventError, err)
		return
	}
	s.Emit(EventCanvasUpdated, nil)
	s.Emit(EventHistoryChanged, nil)
}

// PeekOriginal toggles before/after comparison. While peeking, CurrentCanvas
// returns the pristine photo; session state is otherwise untouched.
func (s *State) PeekOriginal(on bool) {
	s.mu.Lock()
	if s.peeking == on {
		s.mu.Unlock()
		return
	}
	s.peeking = on
	s.mu.Unlock()

	s.Emit(EventCanvasUpdated, nil)
}

// CurrentCanvas returns the raster to display.
func (s *State) CurrentCanvas() *goimage.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.peeking {
		return s.base
	}
	return s.canvas
}

// BaseImage returns the pristine photo.
func (s *State) BaseImage() *goimage.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.base
}

// Regions returns the current wall regions.
func (s *State) Regions() []region.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.regions
}

// SelectedRegion returns the selected region, if any.
func (s *State) SelectedRegion() (region.Region, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, reg := range s.regions {
		if reg.ID == s.selectedID {
			return reg, true
		}
	}
	return region.Region{}, false
}

// SelectedID returns the selected region id, or "".
func (s *State) SelectedID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedID
}

// FillFor reports the fill applied to a region, if any.
func (s *State) FillFor(id string) (compositor.Fill, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fill, ok := s.fills[id]
	return fill, ok
}

// PaintedCount returns how many regions currently carry a fill.
func (s *State) PaintedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fills)
}

// CurrentPhase returns the interaction phase.
func (s *State) CurrentPhase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// CanUndo reports whether an undo step exists.
func (s *State) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanUndo()
}

// CanRedo reports whether a redo step exists.
func (s *State) CanRedo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.CanRedo()
}

// HistoryLen returns the number of reachable history states.
func (s *State) HistoryLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Len()
}
