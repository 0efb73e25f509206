package hwio

import (
	"context"
	"errors"
)

var (
	// ErrUnsupportedMode is returned by Curve and SetCurve when the
	// header does not support the requested control mode.
	ErrUnsupportedMode = errors.New("header does not support this control mode")

	// ErrReadingsUnavailable is returned by Readings when the backend
	// has no sensor source. Callers must degrade gracefully and not
	// treat this as a failed refresh.
	ErrReadingsUnavailable = errors.New("sensor readings are not available")
)

// Adapter is the call boundary to the privileged backend that talks to
// motherboard firmware. Transport, elevation and the hardware access
// itself live behind this interface.
type Adapter interface {
	// Headers enumerates the controllable fan headers. The result is
	// stable for the lifetime of a session.
	Headers(ctx context.Context) ([]Header, error)

	// ListPolicies returns the current policy of every present header.
	ListPolicies(ctx context.Context) ([]Policy, error)

	// SetPolicy writes a single header's policy to firmware.
	SetPolicy(ctx context.Context, policy Policy) error

	// Curve reads the stored curve for the given (header, mode) pair.
	// Returns ErrUnsupportedMode if the pair does not exist.
	Curve(ctx context.Context, header HeaderID, mode ControlMode) (Curve, error)

	// SetCurve writes a curve to firmware.
	SetCurve(ctx context.Context, curve Curve) error

	// Readings returns a snapshot of all live sensor values.
	// Returns ErrReadingsUnavailable if the backend has no sensor source.
	Readings(ctx context.Context) ([]Reading, error)

	// SupportedModes probes which control modes the given header accepts.
	SupportedModes(ctx context.Context, header HeaderID) ([]ControlMode, error)
}
