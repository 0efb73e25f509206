package store

import (
	"testing"

	"github.com/fansync/fansync/internal/curve"
	"github.com/fansync/fansync/internal/hwio"
	"github.com/stretchr/testify/assert"
)

func TestCurveStoreNotFetchedVsUnsupported(t *testing.T) {
	// GIVEN
	s := NewCurveStore()

	// WHEN
	_, fetched := s.Get(3, hwio.ControlModeAuto)
	s.MarkUnsupported(3, hwio.ControlModeAuto)
	entry, exists := s.Get(3, hwio.ControlModeAuto)

	// THEN
	assert.False(t, fetched)
	assert.True(t, exists)
	assert.True(t, entry.Unsupported)
}

func TestCurveStorePutReplacesWholesale(t *testing.T) {
	// GIVEN
	s := NewCurveStore()
	original := curve.Default(0, hwio.ControlModePWM)
	s.Put(original)

	updated := original
	updated.Points[0].DutyPct = 50

	// WHEN
	s.Put(updated)
	entry, _ := s.Get(0, hwio.ControlModePWM)

	// THEN
	assert.Equal(t, updated, entry.Curve)
}

func TestCurveStoreKeysAreIndependentPerMode(t *testing.T) {
	// GIVEN
	s := NewCurveStore()
	pwmCurve := curve.Default(0, hwio.ControlModePWM)
	dcCurve := curve.Default(0, hwio.ControlModeDC)
	dcCurve.Points[7].DutyPct = 90

	// WHEN
	s.Put(pwmCurve)
	s.Put(dcCurve)

	// THEN
	pwmEntry, _ := s.Get(0, hwio.ControlModePWM)
	dcEntry, _ := s.Get(0, hwio.ControlModeDC)
	assert.Equal(t, pwmCurve, pwmEntry.Curve)
	assert.Equal(t, dcCurve, dcEntry.Curve)
}

func TestCurveStoreForget(t *testing.T) {
	// GIVEN
	s := NewCurveStore()
	s.MarkUnsupported(1, hwio.ControlModeAuto)

	// WHEN
	s.Forget(1, hwio.ControlModeAuto)

	// THEN
	_, exists := s.Get(1, hwio.ControlModeAuto)
	assert.False(t, exists)
}

func TestCurveStoreCurvesExcludesUnsupported(t *testing.T) {
	// GIVEN
	s := NewCurveStore()
	s.Put(curve.Default(0, hwio.ControlModePWM))
	s.MarkUnsupported(3, hwio.ControlModeAuto)

	// WHEN
	result := s.Curves()

	// THEN
	assert.Len(t, result, 1)
	assert.Contains(t, result, "0_pwm")
}

func TestPolicyStoreReplaceAllDropsStaleHeaders(t *testing.T) {
	// GIVEN
	s := NewPolicyStore()
	s.Put(hwio.Policy{HeaderID: 0, Mode: hwio.ControlModePWM})
	s.Put(hwio.Policy{HeaderID: 5, Mode: hwio.ControlModeDC})

	// WHEN
	s.ReplaceAll([]hwio.Policy{
		{HeaderID: 0, Mode: hwio.ControlModeAuto},
		{HeaderID: 1, Mode: hwio.ControlModePWM},
	})

	// THEN
	all := s.All()
	assert.Len(t, all, 2)
	assert.Equal(t, hwio.HeaderID(0), all[0].HeaderID)
	assert.Equal(t, hwio.ControlModeAuto, all[0].Mode)
	_, exists := s.Get(5)
	assert.False(t, exists)
}

func TestReadingStoreReplaceIsWholesale(t *testing.T) {
	// GIVEN
	s := NewReadingStore(10)
	s.Replace([]hwio.Reading{
		{Identifier: "cpu_package", Type: hwio.ReadingTypeTemperature, Value: 50},
		{Identifier: "fan_0", Type: hwio.ReadingTypeFan, Value: 900},
	})

	// WHEN
	s.Replace([]hwio.Reading{
		{Identifier: "cpu_package", Type: hwio.ReadingTypeTemperature, Value: 52},
	})

	// THEN
	all := s.All()
	assert.Len(t, all, 1)
	_, exists := s.Get("fan_0")
	assert.False(t, exists)
}

func TestReadingStoreMovingAvg(t *testing.T) {
	// GIVEN
	s := NewReadingStore(10)

	// WHEN
	s.Replace([]hwio.Reading{{Identifier: "cpu_package", Value: 40}})
	s.Replace([]hwio.Reading{{Identifier: "cpu_package", Value: 60}})

	// THEN
	avg, exists := s.MovingAvg("cpu_package")
	assert.True(t, exists)
	assert.Equal(t, 50.0, avg)

	_, exists = s.MovingAvg("unknown")
	assert.False(t, exists)
}
