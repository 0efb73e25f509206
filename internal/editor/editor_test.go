package editor

import (
	"context"
	"testing"

	"github.com/fansync/fansync/internal/curve"
	"github.com/fansync/fansync/internal/hwio"
	"github.com/stretchr/testify/assert"
)

func testAxes() curve.Axes {
	return curve.Axes{
		Domain:     curve.Domain{TempMin: 20, TempMax: 100},
		PlotWidth:  800,
		PlotHeight: 400,
	}
}

func staticProvider(curves map[string]hwio.Curve) CurveProvider {
	return func(header hwio.HeaderID, mode hwio.ControlMode) (hwio.Curve, bool) {
		c, exists := curves[hwio.CurveKey(header, mode)]
		return c, exists
	}
}

type mockCommitter struct {
	committed []hwio.Curve
	err       error
}

func (m *mockCommitter) SetCurve(_ context.Context, c hwio.Curve) error {
	if m.err != nil {
		return m.err
	}
	m.committed = append(m.committed, c)
	return nil
}

// dragTo performs a full down/move/up gesture on the point at the
// given index, targeting the given domain values.
func dragTo(e *Editor, index int, temperatureC int, dutyPct int) {
	axes := testAxes()
	points := e.VisiblePoints()
	start := axes.ToDisplay(points[index])
	target := axes.ToDisplay(hwio.CurvePoint{TemperatureC: temperatureC, DutyPct: dutyPct})

	e.PointerDown(start.X, start.Y)
	e.PointerMove(target.X, target.Y)
	e.PointerUp()
}

func TestPointerDownGrabsNearbyPoint(t *testing.T) {
	// GIVEN
	c := curve.Default(0, hwio.ControlModePWM)
	e := NewEditor(testAxes(), staticProvider(map[string]hwio.Curve{"0_pwm": c}), 0, hwio.ControlModePWM)
	display := testAxes().ToDisplay(c.Points[2])

	// WHEN
	grabbed := e.PointerDown(display.X+3, display.Y-3)

	// THEN
	assert.True(t, grabbed)
	assert.Equal(t, StateDragging, e.State())
}

func TestPointerDownIgnoresFarAwayClick(t *testing.T) {
	// GIVEN
	c := curve.Default(0, hwio.ControlModePWM)
	e := NewEditor(testAxes(), staticProvider(map[string]hwio.Curve{"0_pwm": c}), 0, hwio.ControlModePWM)

	// WHEN
	grabbed := e.PointerDown(2, 2)

	// THEN
	assert.False(t, grabbed)
	assert.Equal(t, StateViewing, e.State())
	assert.False(t, e.HasDraft())
}

func TestDragCreatesDraftWithoutTouchingCache(t *testing.T) {
	// GIVEN
	c := curve.Default(0, hwio.ControlModePWM)
	curves := map[string]hwio.Curve{"0_pwm": c}
	e := NewEditor(testAxes(), staticProvider(curves), 0, hwio.ControlModePWM)

	// WHEN
	dragTo(e, 0, 35, 50)

	// THEN
	assert.True(t, e.HasDraft())
	assert.Equal(t, hwio.CurvePoint{TemperatureC: 35, DutyPct: 50}, e.VisiblePoints()[0])
	assert.Equal(t, c, curves["0_pwm"])
}

func TestDragPastNeighborSwapsOrder(t *testing.T) {
	// GIVEN
	// dragging index 3 to 95°C crosses the neighbor at index 4
	c := hwio.Curve{
		HeaderID: 0,
		Mode:     hwio.ControlModePWM,
		Points: [hwio.CurvePointCount]hwio.CurvePoint{
			{TemperatureC: 25, DutyPct: 30},
			{TemperatureC: 40, DutyPct: 35},
			{TemperatureC: 55, DutyPct: 45},
			{TemperatureC: 65, DutyPct: 50},
			{TemperatureC: 70, DutyPct: 60},
			{TemperatureC: 96, DutyPct: 80},
			{TemperatureC: 97, DutyPct: 90},
			{TemperatureC: 98, DutyPct: 100},
		},
	}
	e := NewEditor(testAxes(), staticProvider(map[string]hwio.Curve{"0_pwm": c}), 0, hwio.ControlModePWM)

	// WHEN
	dragTo(e, 3, 95, 40)

	// THEN
	visible := e.VisiblePoints()
	assert.Equal(t, hwio.CurvePoint{TemperatureC: 70, DutyPct: 60}, visible[3])
	assert.Equal(t, hwio.CurvePoint{TemperatureC: 95, DutyPct: 40}, visible[4])
	for i := 1; i < len(visible); i++ {
		assert.Less(t, visible[i-1].TemperatureC, visible[i].TemperatureC)
	}
}

func TestDraggedPointStaysGrabbedAcrossReorder(t *testing.T) {
	// GIVEN
	c := curve.Default(0, hwio.ControlModePWM)
	e := NewEditor(testAxes(), staticProvider(map[string]hwio.Curve{"0_pwm": c}), 0, hwio.ControlModePWM)
	axes := testAxes()

	start := axes.ToDisplay(c.Points[3])
	e.PointerDown(start.X, start.Y)

	// WHEN
	// move past the right neighbor, then keep moving
	first := axes.ToDisplay(hwio.CurvePoint{TemperatureC: 72, DutyPct: 40})
	e.PointerMove(first.X, first.Y)
	second := axes.ToDisplay(hwio.CurvePoint{TemperatureC: 78, DutyPct: 42})
	e.PointerMove(second.X, second.Y)
	e.PointerUp()

	// THEN
	visible := e.VisiblePoints()
	assert.Contains(t, visible[:], hwio.CurvePoint{TemperatureC: 78, DutyPct: 42})
	assert.NotContains(t, visible[:], hwio.CurvePoint{TemperatureC: 72, DutyPct: 40})
}

func TestDraftPrecedenceOverConcurrentFetch(t *testing.T) {
	// GIVEN
	c := curve.Default(0, hwio.ControlModePWM)
	curves := map[string]hwio.Curve{"0_pwm": c}
	e := NewEditor(testAxes(), staticProvider(curves), 0, hwio.ControlModePWM)
	dragTo(e, 0, 35, 50)
	drafted := e.VisiblePoints()

	// WHEN
	// a poll completes mid-edit and replaces the cached curve
	fetched := c
	fetched.Points[0].DutyPct = 5
	curves["0_pwm"] = fetched

	// THEN
	assert.Equal(t, drafted, e.VisiblePoints())
}

func TestCommitClearsDraftAndWritesCurve(t *testing.T) {
	// GIVEN
	c := curve.Default(0, hwio.ControlModePWM)
	e := NewEditor(testAxes(), staticProvider(map[string]hwio.Curve{"0_pwm": c}), 0, hwio.ControlModePWM)
	dragTo(e, 0, 35, 50)
	committer := &mockCommitter{}

	// WHEN
	err := e.Commit(context.Background(), committer)

	// THEN
	assert.NoError(t, err)
	assert.False(t, e.HasDraft())
	assert.Len(t, committer.committed, 1)
	assert.Equal(t, hwio.CurvePoint{TemperatureC: 35, DutyPct: 50}, committer.committed[0].Points[0])
}

func TestCommitWithoutDraftIsANoop(t *testing.T) {
	// GIVEN
	e := NewEditor(testAxes(), staticProvider(map[string]hwio.Curve{}), 0, hwio.ControlModePWM)
	committer := &mockCommitter{}

	// WHEN
	err := e.Commit(context.Background(), committer)

	// THEN
	assert.NoError(t, err)
	assert.Empty(t, committer.committed)
}

func TestCommitFailureKeepsDraft(t *testing.T) {
	// GIVEN
	c := curve.Default(0, hwio.ControlModePWM)
	e := NewEditor(testAxes(), staticProvider(map[string]hwio.Curve{"0_pwm": c}), 0, hwio.ControlModePWM)
	dragTo(e, 0, 35, 50)
	committer := &mockCommitter{err: &curve.ValidationError{Reason: "duplicate temperature 40°C"}}

	// WHEN
	err := e.Commit(context.Background(), committer)

	// THEN
	assert.Error(t, err)
	assert.True(t, e.HasDraft())
}

func TestDiscardRestoresCacheView(t *testing.T) {
	// GIVEN
	c := curve.Default(0, hwio.ControlModePWM)
	e := NewEditor(testAxes(), staticProvider(map[string]hwio.Curve{"0_pwm": c}), 0, hwio.ControlModePWM)
	dragTo(e, 0, 35, 50)

	// WHEN
	e.Discard()

	// THEN
	assert.False(t, e.HasDraft())
	assert.Equal(t, c.Points, e.VisiblePoints())
}

func TestSetModeDiscardsDraftOfPreviousMode(t *testing.T) {
	// GIVEN
	pwm := curve.Default(0, hwio.ControlModePWM)
	auto := curve.Default(0, hwio.ControlModeAuto)
	e := NewEditor(testAxes(), staticProvider(map[string]hwio.Curve{
		"0_pwm":  pwm,
		"0_auto": auto,
	}), 0, hwio.ControlModePWM)
	dragTo(e, 0, 35, 50)

	// WHEN
	e.SetMode(hwio.ControlModeAuto)

	// THEN
	assert.False(t, e.HasDraft())
	assert.Equal(t, hwio.ControlModeAuto, e.Mode())
	assert.Equal(t, auto.Points, e.VisiblePoints())
}

func TestSetModeSameModeKeepsDraft(t *testing.T) {
	// GIVEN
	c := curve.Default(0, hwio.ControlModePWM)
	e := NewEditor(testAxes(), staticProvider(map[string]hwio.Curve{"0_pwm": c}), 0, hwio.ControlModePWM)
	dragTo(e, 0, 35, 50)

	// WHEN
	e.SetMode(hwio.ControlModePWM)

	// THEN
	assert.True(t, e.HasDraft())
}

func TestVisiblePointsFallBackToDefaultCurve(t *testing.T) {
	// GIVEN
	e := NewEditor(testAxes(), staticProvider(map[string]hwio.Curve{}), 2, hwio.ControlModeDC)

	// WHEN
	visible := e.VisiblePoints()

	// THEN
	assert.Equal(t, curve.Default(2, hwio.ControlModeDC).Points, visible)
}
