package configuration

import (
	"github.com/fansync/fansync/internal/hwio"
)

const (
	// BackendAdapterSimulated runs against the built-in simulated backend
	BackendAdapterSimulated = "sim"
)

type BackendConfig struct {
	// Adapter selects the backend implementation
	Adapter string `json:"adapter"`

	// Headers is the number of fan headers the simulated backend exposes
	Headers int `json:"headers"`

	// DefaultMode is the control mode preselected in the curve editor
	DefaultMode hwio.ControlMode `json:"defaultMode"`
}
