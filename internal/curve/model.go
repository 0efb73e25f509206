package curve

import (
	"fmt"
	"sort"

	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/util"
)

const (
	MinDuty = 0
	MaxDuty = 100
)

// Domain is the temperature range a curve operates on.
type Domain struct {
	TempMin int
	TempMax int
}

// DefaultDomain returns the firmware's curve temperature range.
func DefaultDomain() Domain {
	return Domain{TempMin: 20, TempMax: 100}
}

// ClampTemperature rounds the given raw temperature to the nearest
// integer and saturates it at the domain edges.
func (d Domain) ClampTemperature(raw float64) int {
	return util.ClampRound(raw, d.TempMin, d.TempMax)
}

// ClampDuty rounds the given raw duty percentage to the nearest
// integer and saturates it at [0, 100].
func ClampDuty(raw float64) int {
	return util.ClampRound(raw, MinDuty, MaxDuty)
}

// ReorderByTemperature stable-sorts the given points ascending by
// temperature. Used after every single-point move, since a drag can
// cross a neighbor's position.
func ReorderByTemperature(points [hwio.CurvePointCount]hwio.CurvePoint) [hwio.CurvePointCount]hwio.CurvePoint {
	result := points
	sort.SliceStable(result[:], func(i, j int) bool {
		return result[i].TemperatureC < result[j].TemperatureC
	})
	return result
}

// ValidationError marks a curve that must not be sent to the backend.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fan curve: %s", e.Reason)
}

// Validate reorders the given curve's points and checks that all
// temperatures are distinct and all values are within the domain.
// Returns a *ValidationError describing the first violation found.
func Validate(c hwio.Curve, domain Domain) error {
	if !c.Mode.Valid() {
		return &ValidationError{Reason: fmt.Sprintf("unknown control mode '%s'", c.Mode)}
	}

	points := ReorderByTemperature(c.Points)
	for i, point := range points {
		if point.TemperatureC < domain.TempMin || point.TemperatureC > domain.TempMax {
			return &ValidationError{
				Reason: fmt.Sprintf("point %d: temperature %d°C outside [%d, %d]",
					i, point.TemperatureC, domain.TempMin, domain.TempMax),
			}
		}
		if point.DutyPct < MinDuty || point.DutyPct > MaxDuty {
			return &ValidationError{
				Reason: fmt.Sprintf("point %d: duty %d%% outside [%d, %d]",
					i, point.DutyPct, MinDuty, MaxDuty),
			}
		}
		if i > 0 && points[i-1].TemperatureC == point.TemperatureC {
			return &ValidationError{
				Reason: fmt.Sprintf("duplicate temperature %d°C", point.TemperatureC),
			}
		}
	}

	return nil
}

// InterpolateDuty evaluates the curve at the given temperature by
// linear interpolation between its points.
func InterpolateDuty(c hwio.Curve, temperatureC float64) int {
	steps := map[int]float64{}
	for _, point := range c.Points {
		steps[point.TemperatureC] = float64(point.DutyPct)
	}
	value := util.CalculateInterpolatedCurveValue(steps, util.InterpolationTypeLinear, temperatureC)
	return ClampDuty(value)
}

// Default returns the stock ramp for a (header, mode) pair: 30% duty
// at 30°C rising to 100% at 90°C. Shown when the backend has no
// stored curve yet.
func Default(header hwio.HeaderID, mode hwio.ControlMode) hwio.Curve {
	return hwio.Curve{
		HeaderID: header,
		Mode:     mode,
		Points: [hwio.CurvePointCount]hwio.CurvePoint{
			{TemperatureC: 30, DutyPct: 30},
			{TemperatureC: 40, DutyPct: 35},
			{TemperatureC: 50, DutyPct: 45},
			{TemperatureC: 60, DutyPct: 55},
			{TemperatureC: 70, DutyPct: 65},
			{TemperatureC: 75, DutyPct: 75},
			{TemperatureC: 80, DutyPct: 85},
			{TemperatureC: 90, DutyPct: 100},
		},
	}
}
