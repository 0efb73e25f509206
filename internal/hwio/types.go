package hwio

import (
	"fmt"
)

// CurvePointCount is the number of control points in a fan curve,
// mirroring the firmware table size.
const CurvePointCount = 8

// HeaderID identifies one physical fan connector on the board.
type HeaderID int

type Header struct {
	ID          HeaderID `json:"id"`
	DisplayName string   `json:"displayName"`
}

// ControlMode is the electrical scheme a header is driven with.
type ControlMode string

const (
	// ControlModeDC drives the header with voltage control
	ControlModeDC ControlMode = "dc"
	// ControlModePWM drives the header with a pulse-width signal
	ControlModePWM ControlMode = "pwm"
	// ControlModeAuto leaves control to the integrated control of the mainboard
	ControlModeAuto ControlMode = "auto"
)

// ControlModes returns all known control modes.
func ControlModes() []ControlMode {
	return []ControlMode{ControlModeDC, ControlModePWM, ControlModeAuto}
}

func (m ControlMode) Valid() bool {
	switch m {
	case ControlModeDC, ControlModePWM, ControlModeAuto:
		return true
	}
	return false
}

// ParseControlMode parses the given string into a ControlMode.
func ParseControlMode(value string) (ControlMode, error) {
	mode := ControlMode(value)
	if !mode.Valid() {
		return "", fmt.Errorf("unknown control mode '%s', use one of: dc | pwm | auto", value)
	}
	return mode, nil
}

type Profile string

const (
	// ProfileStandard lets firmware pick the duty from its built-in table
	ProfileStandard Profile = "standard"
	// ProfileManual drives the header from the user-defined fan curve
	ProfileManual Profile = "manual"
)

func (p Profile) Valid() bool {
	return p == ProfileStandard || p == ProfileManual
}

// Policy is one header's control configuration.
type Policy struct {
	HeaderID          HeaderID    `json:"headerId"`
	Mode              ControlMode `json:"mode"`
	Profile           Profile     `json:"profile"`
	TemperatureSource string      `json:"temperatureSource"`
	LowRpmLimit       int         `json:"lowRpmLimit"`
}

// CurvePoint is a single temperature -> duty-cycle mapping point.
type CurvePoint struct {
	TemperatureC int `json:"temperatureC"`
	DutyPct      int `json:"dutyPct"`
}

// Curve is a complete fan curve for one (header, mode) pair.
// Points are sorted ascending by temperature; duplicates may only
// exist transiently while a point is being dragged.
type Curve struct {
	HeaderID HeaderID                    `json:"headerId"`
	Mode     ControlMode                 `json:"mode"`
	Points   [CurvePointCount]CurvePoint `json:"points"`
}

// Reading is a live sensor value. Readings are replaced wholesale on
// every poll, never merged field by field.
type Reading struct {
	Identifier string  `json:"identifier"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
}

const (
	ReadingTypeTemperature = "Temperature"
	ReadingTypeFan         = "Fan"
	ReadingTypeVoltage     = "Voltage"
)

// CurveKey returns the canonical "<headerId>_<mode>" key for a
// (header, mode) pair, as used in the export document format.
func CurveKey(header HeaderID, mode ControlMode) string {
	return fmt.Sprintf("%d_%s", header, mode)
}

// ParseCurveKey parses a key created by CurveKey.
func ParseCurveKey(key string) (HeaderID, ControlMode, error) {
	var id int
	var mode string
	if _, err := fmt.Sscanf(key, "%d_%s", &id, &mode); err != nil {
		return 0, "", fmt.Errorf("malformed curve key '%s': %w", key, err)
	}
	parsed, err := ParseControlMode(mode)
	if err != nil {
		return 0, "", fmt.Errorf("malformed curve key '%s': %w", key, err)
	}
	return HeaderID(id), parsed, nil
}
