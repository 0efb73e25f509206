package curve

import (
	"testing"

	"github.com/fansync/fansync/internal/hwio"
	"github.com/stretchr/testify/assert"
)

func TestClampTemperatureSaturatesAtDomainEdges(t *testing.T) {
	// GIVEN
	domain := DefaultDomain()

	// WHEN
	below := domain.ClampTemperature(-40.0)
	above := domain.ClampTemperature(400.0)
	within := domain.ClampTemperature(54.6)

	// THEN
	assert.Equal(t, 20, below)
	assert.Equal(t, 100, above)
	assert.Equal(t, 55, within)
}

func TestClampDutySaturates(t *testing.T) {
	// GIVEN
	values := map[float64]int{
		-10.0: 0,
		55.4:  55,
		180.0: 100,
	}

	for raw, expected := range values {
		// WHEN
		result := ClampDuty(raw)

		// THEN
		assert.Equal(t, expected, result)
	}
}

func TestReorderByTemperatureIsStable(t *testing.T) {
	// GIVEN
	points := Default(0, hwio.ControlModePWM).Points
	// transient duplicate created by a drag
	points[3] = hwio.CurvePoint{TemperatureC: 50, DutyPct: 99}

	// WHEN
	result := ReorderByTemperature(points)

	// THEN
	assert.Equal(t, hwio.CurvePoint{TemperatureC: 50, DutyPct: 45}, result[2])
	assert.Equal(t, hwio.CurvePoint{TemperatureC: 50, DutyPct: 99}, result[3])
	for i := 1; i < len(result); i++ {
		assert.LessOrEqual(t, result[i-1].TemperatureC, result[i].TemperatureC)
	}
}

func TestValidateAcceptsDefaultCurve(t *testing.T) {
	// GIVEN
	c := Default(1, hwio.ControlModePWM)

	// WHEN
	err := Validate(c, DefaultDomain())

	// THEN
	assert.NoError(t, err)
}

func TestValidateRejectsDuplicateTemperatures(t *testing.T) {
	// GIVEN
	c := Default(1, hwio.ControlModePWM)
	c.Points[4].TemperatureC = c.Points[3].TemperatureC

	// WHEN
	err := Validate(c, DefaultDomain())

	// THEN
	var validationError *ValidationError
	assert.ErrorAs(t, err, &validationError)
}

func TestValidateRejectsOutOfRangeDuty(t *testing.T) {
	// GIVEN
	c := Default(1, hwio.ControlModePWM)
	c.Points[0].DutyPct = 140

	// WHEN
	err := Validate(c, DefaultDomain())

	// THEN
	var validationError *ValidationError
	assert.ErrorAs(t, err, &validationError)
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	// GIVEN
	c := Default(1, "turbo")

	// WHEN
	err := Validate(c, DefaultDomain())

	// THEN
	var validationError *ValidationError
	assert.ErrorAs(t, err, &validationError)
}

func TestInterpolateDutyBetweenPoints(t *testing.T) {
	// GIVEN
	c := Default(0, hwio.ControlModePWM)

	// WHEN
	result := InterpolateDuty(c, 35.0)

	// THEN
	// halfway between (30, 30) and (40, 35)
	assert.Equal(t, 33, result)
}

func TestInterpolateDutyOutsideCurve(t *testing.T) {
	// GIVEN
	c := Default(0, hwio.ControlModePWM)

	// WHEN
	below := InterpolateDuty(c, 10.0)
	above := InterpolateDuty(c, 99.0)

	// THEN
	assert.Equal(t, 30, below)
	assert.Equal(t, 100, above)
}
