package curve

import (
	"testing"

	"github.com/fansync/fansync/internal/hwio"
	"github.com/stretchr/testify/assert"
)

func testAxes() Axes {
	return Axes{
		Domain:     Domain{TempMin: 20, TempMax: 100},
		PlotWidth:  800,
		PlotHeight: 400,
	}
}

func TestToDisplayInvertsYAxis(t *testing.T) {
	// GIVEN
	axes := testAxes()

	// WHEN
	zeroDuty := axes.ToDisplay(hwio.CurvePoint{TemperatureC: 20, DutyPct: 0})
	fullDuty := axes.ToDisplay(hwio.CurvePoint{TemperatureC: 100, DutyPct: 100})

	// THEN
	assert.Equal(t, PlotPoint{X: 0, Y: 400}, zeroDuty)
	assert.Equal(t, PlotPoint{X: 800, Y: 0}, fullDuty)
}

func TestToDisplayPathPreservesOrder(t *testing.T) {
	// GIVEN
	axes := testAxes()
	points := Default(0, hwio.ControlModePWM).Points

	// WHEN
	path := axes.ToDisplayPath(points[:])

	// THEN
	assert.Len(t, path, hwio.CurvePointCount)
	for i := 1; i < len(path); i++ {
		assert.Less(t, path[i-1].X, path[i].X)
		assert.GreaterOrEqual(t, path[i-1].Y, path[i].Y)
	}
}

func TestFromDisplayRoundTrip(t *testing.T) {
	// GIVEN
	axes := testAxes()
	point := hwio.CurvePoint{TemperatureC: 60, DutyPct: 55}

	// WHEN
	display := axes.ToDisplay(point)
	result := axes.FromDisplay(display.X, display.Y)

	// THEN
	assert.Equal(t, point, result)
}

func TestFromDisplayClampsOutsidePlot(t *testing.T) {
	// GIVEN
	axes := testAxes()

	// WHEN
	result := axes.FromDisplay(-50, 9000)

	// THEN
	assert.Equal(t, hwio.CurvePoint{TemperatureC: 20, DutyPct: 0}, result)
}
