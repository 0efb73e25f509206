package hwio

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
)

// SimulatedAdapter is an in-process Adapter implementation with
// deterministic behavior. It lets the daemon run end-to-end without a
// privileged hardware backend.
type SimulatedAdapter struct {
	mu       sync.Mutex
	headers  []Header
	policies map[HeaderID]Policy
	curves   map[string]Curve
	modes    map[HeaderID][]ControlMode
	started  time.Time
}

// NewSimulatedAdapter creates a simulated backend with the given number
// of fan headers. The first header supports all control modes, the
// remaining ones only pwm and auto.
func NewSimulatedAdapter(headerCount int) *SimulatedAdapter {
	a := &SimulatedAdapter{
		policies: map[HeaderID]Policy{},
		curves:   map[string]Curve{},
		modes:    map[HeaderID][]ControlMode{},
		started:  time.Now(),
	}

	for i := 0; i < headerCount; i++ {
		id := HeaderID(i)
		name := fmt.Sprintf("Chassis Fan %d", i)
		if i == 0 {
			name = "CPU Fan"
		}
		a.headers = append(a.headers, Header{ID: id, DisplayName: name})

		a.policies[id] = Policy{
			HeaderID:          id,
			Mode:              ControlModePWM,
			Profile:           ProfileStandard,
			TemperatureSource: "cpu_package",
			LowRpmLimit:       200,
		}

		if i == 0 {
			a.modes[id] = []ControlMode{ControlModeDC, ControlModePWM, ControlModeAuto}
		} else {
			a.modes[id] = []ControlMode{ControlModePWM, ControlModeAuto}
		}

		for _, mode := range a.modes[id] {
			a.curves[CurveKey(id, mode)] = rampCurve(id, mode)
		}
	}

	return a
}

// rampCurve builds the firmware default ramp: 30% duty at 30°C rising
// to 100% at 90°C.
func rampCurve(header HeaderID, mode ControlMode) Curve {
	return Curve{
		HeaderID: header,
		Mode:     mode,
		Points: [CurvePointCount]CurvePoint{
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

func (a *SimulatedAdapter) Headers(_ context.Context) ([]Header, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := make([]Header, len(a.headers))
	copy(result, a.headers)
	return result, nil
}

func (a *SimulatedAdapter) ListPolicies(_ context.Context) ([]Policy, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := make([]Policy, 0, len(a.policies))
	for _, header := range a.headers {
		result = append(result, a.policies[header.ID])
	}
	return result, nil
}

func (a *SimulatedAdapter) SetPolicy(_ context.Context, policy Policy) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.policies[policy.HeaderID]; !exists {
		return fmt.Errorf("unknown fan header: %d", policy.HeaderID)
	}
	if !contains(a.modes[policy.HeaderID], policy.Mode) {
		return ErrUnsupportedMode
	}
	a.policies[policy.HeaderID] = policy
	return nil
}

func (a *SimulatedAdapter) Curve(_ context.Context, header HeaderID, mode ControlMode) (Curve, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	curve, exists := a.curves[CurveKey(header, mode)]
	if !exists {
		return Curve{}, ErrUnsupportedMode
	}
	return curve, nil
}

func (a *SimulatedAdapter) SetCurve(_ context.Context, curve Curve) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := CurveKey(curve.HeaderID, curve.Mode)
	if _, exists := a.curves[key]; !exists {
		return ErrUnsupportedMode
	}
	a.curves[key] = curve
	return nil
}

func (a *SimulatedAdapter) Readings(_ context.Context) ([]Reading, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// slow sine drift around plausible values so the panel has
	// something to show
	elapsed := time.Since(a.started).Seconds()
	drift := math.Sin(elapsed / 30.0)

	readings := []Reading{
		{
			Identifier: "cpu_package",
			Name:       "CPU Package",
			Type:       ReadingTypeTemperature,
			Value:      math.Round((52.0+8.0*drift)*10) / 10,
			Unit:       "°C",
		},
		{
			Identifier: "mainboard",
			Name:       "Mainboard",
			Type:       ReadingTypeTemperature,
			Value:      math.Round((38.0+3.0*drift)*10) / 10,
			Unit:       "°C",
		},
	}
	for _, header := range a.headers {
		readings = append(readings, Reading{
			Identifier: fmt.Sprintf("fan_%d", header.ID),
			Name:       header.DisplayName,
			Type:       ReadingTypeFan,
			Value:      math.Round(900 + 300*drift),
			Unit:       "RPM",
		})
	}
	return readings, nil
}

func (a *SimulatedAdapter) SupportedModes(_ context.Context, header HeaderID) ([]ControlMode, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	modes, exists := a.modes[header]
	if !exists {
		return nil, fmt.Errorf("unknown fan header: %d", header)
	}
	result := make([]ControlMode, len(modes))
	copy(result, modes)
	return result, nil
}

func contains(modes []ControlMode, mode ControlMode) bool {
	for _, m := range modes {
		if m == mode {
			return true
		}
	}
	return false
}
