package curve

import (
	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/util"
)

// PlotPoint is a position in drag-space, measured in plot pixels.
type PlotPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Axes maps between domain values (°C, %) and drag-space. The mapping
// is a pure function of the axis configuration and agnostic to the
// number of points.
type Axes struct {
	Domain     Domain
	PlotWidth  float64
	PlotHeight float64
}

// ToDisplay maps a curve point to drag-space. The y axis is inverted,
// higher duty draws higher on screen.
func (a Axes) ToDisplay(point hwio.CurvePoint) PlotPoint {
	xRatio := util.Ratio(float64(point.TemperatureC), float64(a.Domain.TempMin), float64(a.Domain.TempMax))
	yRatio := util.Ratio(float64(point.DutyPct), MinDuty, MaxDuty)
	return PlotPoint{
		X: xRatio * a.PlotWidth,
		Y: a.PlotHeight - yRatio*a.PlotHeight,
	}
}

// ToDisplayPath maps the given points to an ordered drag-space path.
func (a Axes) ToDisplayPath(points []hwio.CurvePoint) []PlotPoint {
	path := make([]PlotPoint, 0, len(points))
	for _, point := range points {
		path = append(path, a.ToDisplay(point))
	}
	return path
}

// FromDisplay is the inverse of ToDisplay. Out-of-plot coordinates are
// clamped to the domain edges.
func (a Axes) FromDisplay(x float64, y float64) hwio.CurvePoint {
	xRatio := x / a.PlotWidth
	yRatio := (a.PlotHeight - y) / a.PlotHeight

	temperature := float64(a.Domain.TempMin) + xRatio*float64(a.Domain.TempMax-a.Domain.TempMin)
	duty := yRatio * MaxDuty

	return hwio.CurvePoint{
		TemperatureC: a.Domain.ClampTemperature(temperature),
		DutyPct:      ClampDuty(duty),
	}
}
