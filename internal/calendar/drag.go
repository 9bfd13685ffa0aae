package calendar

import "math"

// Grid fallbacks used when the renderer reports a collapsed layout.
const (
	MinCellWidth = 4.0
	MinRowHeight = 1.0
)

// CellWidth returns the per-day width for a viewport of the given width.
// Call it whenever the viewport is resized. Degenerate inputs fall back to
// MinCellWidth so day deltas stay finite.
func CellWidth(viewportWidth float64, dayCount int) float64 {
	if dayCount < 1 {
		dayCount = 1
	}
	w := viewportWidth / float64(dayCount)
	if math.IsNaN(w) || math.IsInf(w, 0) || w < MinCellWidth {
		return MinCellWidth
	}
	return w
}

// GridMetrics describes the current pixel (or cell) geometry of the grid.
type GridMetrics struct {
	CellWidth     float64 // width of one day column
	RowHeight     float64 // height of one resource row
	OriginY       float64 // y of the top edge of row 0
	ResourceCount int
}

func (m GridMetrics) cellWidth() float64 {
	if math.IsNaN(m.CellWidth) || m.CellWidth < MinCellWidth {
		return MinCellWidth
	}
	return m.CellWidth
}

// RowAt maps y to a resource row clamped to [0, ResourceCount-1].
func (m GridMetrics) RowAt(y float64) int {
	h := m.RowHeight
	if math.IsNaN(h) || h < MinRowHeight {
		h = MinRowHeight
	}
	row := int(math.Floor((y - m.OriginY) / h))
	return max(0, min(row, m.ResourceCount-1))
}

// PointerEvent is a pointer position tagged with the pointer's identity.
type PointerEvent struct {
	ID int
	X  float64
	Y  float64
}

// DragState is the in-progress gesture.
type DragState struct {
	PointerID int
	EventID   string
	Origin    CanonicalEvent
	StartX    float64
	StartY    float64
	DeltaDays int
	TargetRow int
}

// RescheduleIntent is the result of a committed drag. Event is the updated
// record; applying it is up to the caller.
type RescheduleIntent struct {
	Event      RawEvent
	Origin     CanonicalEvent
	DeltaDays  int
	ResourceID string
}

// DragOption configures a DragController.
type DragOption func(*DragController)

// WithOnReschedule registers a callback invoked once per committed drag.
func WithOnReschedule(fn func(RescheduleIntent)) DragOption {
	return func(c *DragController) {
		c.onReschedule = fn
	}
}

// DragController tracks at most one drag gesture at a time.
// States: idle (State returns false) and dragging.
type DragController struct {
	state        *DragState
	onReschedule func(RescheduleIntent)
}

// NewDragController creates an idle controller.
func NewDragController(opts ...DragOption) *DragController {
	c := &DragController{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the active gesture, if any.
func (c *DragController) State() (DragState, bool) {
	if c.state == nil {
		return DragState{}, false
	}
	return *c.state, true
}

// Dragging reports whether eventID is the event currently being dragged.
func (c *DragController) Dragging(eventID string) bool {
	return c.state != nil && eventID != "" && c.state.EventID == eventID
}

// Start begins dragging ev. It is ignored while another pointer holds the
// gesture, and for events without an id or a known resource. A press from
// the pointer that already holds the gesture restarts it.
func (c *DragController) Start(p PointerEvent, ev CanonicalEvent, resources []Resource, m GridMetrics) bool {
	if c.state != nil && c.state.PointerID != p.ID {
		return false
	}
	if !Draggable(ev, resources) {
		return false
	}
	c.state = &DragState{
		PointerID: p.ID,
		EventID:   ev.ID,
		Origin:    ev,
		StartX:    p.X,
		StartY:    p.Y,
		TargetRow: m.RowAt(p.Y),
	}
	return true
}

// Move updates the day delta and target row. Moves from other pointers are
// ignored. It reports whether the state changed.
func (c *DragController) Move(p PointerEvent, m GridMetrics) bool {
	if c.state == nil || c.state.PointerID != p.ID {
		return false
	}
	delta := int(math.Round((p.X - c.state.StartX) / m.cellWidth()))
	row := m.RowAt(p.Y)
	if delta == c.state.DeltaDays && row == c.state.TargetRow {
		return false
	}
	c.state.DeltaDays = delta
	c.state.TargetRow = row
	return true
}

// End finishes the gesture at p. If the target row maps to a resource, the
// shifted event is returned, passed to the reschedule callback, and ok is
// true. Otherwise the gesture is discarded. Either way the controller is
// idle afterwards, unless p belongs to another pointer.
func (c *DragController) End(p PointerEvent, resources []Resource, m GridMetrics) (RescheduleIntent, bool) {
	if c.state == nil || c.state.PointerID != p.ID {
		return RescheduleIntent{}, false
	}
	c.Move(p, m)
	st := *c.state
	c.state = nil

	if st.TargetRow < 0 || st.TargetRow >= len(resources) {
		return RescheduleIntent{}, false
	}
	target := resources[st.TargetRow]
	intent := RescheduleIntent{
		Event:      Shift(st.Origin, st.DeltaDays, target.ID),
		Origin:     st.Origin,
		DeltaDays:  st.DeltaDays,
		ResourceID: target.ID,
	}
	if c.onReschedule != nil {
		c.onReschedule(intent)
	}
	return intent, true
}

// Cancel discards the gesture held by pointerID, e.g. on lost capture.
func (c *DragController) Cancel(pointerID int) bool {
	if c.state == nil || c.state.PointerID != pointerID {
		return false
	}
	c.state = nil
	return true
}
