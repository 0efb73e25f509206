package editor

import (
	"context"

	"github.com/fansync/fansync/internal/curve"
	"github.com/fansync/fansync/internal/hwio"
)

// grabRadius is the maximum drag-space distance (in plot pixels) at
// which a pointer-down grabs a curve point.
const grabRadius = 12.0

// CurveProvider returns the last confirmed curve for a (header, mode)
// pair, typically backed by the curve cache.
type CurveProvider func(header hwio.HeaderID, mode hwio.ControlMode) (hwio.Curve, bool)

// Committer writes a finished draft to the backend. Satisfied by the
// sync controller.
type Committer interface {
	SetCurve(ctx context.Context, c hwio.Curve) error
}

type State int

const (
	// StateViewing renders points from the cache, or from an
	// uncommitted draft if one exists
	StateViewing State = iota
	// StateDragging tracks the pointer with one point
	StateDragging
)

// Editor turns continuous pointer input into discrete, valid curve
// edits. It owns the draft: the polling path never writes it, so a
// poll completing mid-drag cannot disturb the edit.
type Editor struct {
	axes     curve.Axes
	provider CurveProvider

	header hwio.HeaderID
	mode   hwio.ControlMode

	// non-null exactly while unsaved pointer-drag changes exist
	draft     *[hwio.CurvePointCount]hwio.CurvePoint
	dragIndex int
}

func NewEditor(axes curve.Axes, provider CurveProvider, header hwio.HeaderID, mode hwio.ControlMode) *Editor {
	return &Editor{
		axes:      axes,
		provider:  provider,
		header:    header,
		mode:      mode,
		dragIndex: -1,
	}
}

func (e *Editor) State() State {
	if e.dragIndex >= 0 {
		return StateDragging
	}
	return StateViewing
}

func (e *Editor) Mode() hwio.ControlMode {
	return e.mode
}

func (e *Editor) HasDraft() bool {
	return e.draft != nil
}

// VisiblePoints returns what the editor renders: a non-null draft
// always wins over cache contents.
func (e *Editor) VisiblePoints() [hwio.CurvePointCount]hwio.CurvePoint {
	if e.draft != nil {
		return *e.draft
	}
	if c, exists := e.provider(e.header, e.mode); exists {
		return c.Points
	}
	return curve.Default(e.header, e.mode).Points
}

// DisplayPath maps the visible points into drag-space.
func (e *Editor) DisplayPath() []curve.PlotPoint {
	points := e.VisiblePoints()
	return e.axes.ToDisplayPath(points[:])
}

// PointerDown starts a drag if the pointer is within grab distance of
// a point. Returns true if a drag started.
func (e *Editor) PointerDown(x float64, y float64) bool {
	path := e.DisplayPath()

	closest := -1
	closestDistSq := grabRadius * grabRadius
	for i, point := range path {
		dx := point.X - x
		dy := point.Y - y
		distSq := dx*dx + dy*dy
		if distSq <= closestDistSq {
			closest = i
			closestDistSq = distSq
		}
	}

	if closest < 0 {
		return false
	}
	e.dragIndex = closest
	return true
}

// PointerMove moves the dragged point to the pointer position. The
// point set is re-sorted after every move, so dragging a point past a
// neighbor swaps their order instead of crossing lines.
func (e *Editor) PointerMove(x float64, y float64) {
	if e.dragIndex < 0 {
		return
	}

	moved := e.axes.FromDisplay(x, y)

	working := e.VisiblePoints()
	working[e.dragIndex] = moved
	working = curve.ReorderByTemperature(working)

	// the re-sort may have shifted the dragged point, keep tracking it
	for i, point := range working {
		if point == moved {
			e.dragIndex = i
			break
		}
	}

	e.draft = &working
}

// PointerUp ends the drag. The draft stays until commit or discard.
func (e *Editor) PointerUp() {
	e.dragIndex = -1
}

// Commit writes a non-null draft through the sync controller. On
// success the draft is cleared, the cache now equals what was
// drafted. On failure the draft is kept for correction or retry.
func (e *Editor) Commit(ctx context.Context, committer Committer) error {
	if e.draft == nil {
		return nil
	}

	c := hwio.Curve{
		HeaderID: e.header,
		Mode:     e.mode,
		Points:   curve.ReorderByTemperature(*e.draft),
	}
	if err := committer.SetCurve(ctx, c); err != nil {
		return err
	}

	e.draft = nil
	e.dragIndex = -1
	return nil
}

// Discard drops the draft without any backend call, the last
// confirmed hardware value becomes visible again.
func (e *Editor) Discard() {
	e.draft = nil
	e.dragIndex = -1
}

// SetMode switches the editor to another control mode. Curves are
// keyed by mode, so a pending draft for the previous mode is
// discarded without prompting.
func (e *Editor) SetMode(mode hwio.ControlMode) {
	if mode == e.mode {
		return
	}
	e.Discard()
	e.mode = mode
}
