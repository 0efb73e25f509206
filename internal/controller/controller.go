package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fansync/fansync/internal/curve"
	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/store"
	"github.com/fansync/fansync/internal/ui"
)

// ErrStopped is returned for operations issued after the controller
// has been torn down.
var ErrStopped = errors.New("sync controller stopped")

// SyncController keeps the local stores synchronized with the
// hardware backend: periodic refresh, optimistic writes, and
// rollback-by-refetch reconciliation on write failure.
type SyncController interface {
	// Run drives the periodic refresh loop until the context is
	// cancelled. Transient backend failures never stop the loop.
	Run(ctx context.Context) error

	// Refresh performs one synchronous poll of the policy and
	// reading surfaces.
	Refresh(ctx context.Context)

	// SetPolicy optimistically applies the policy to the cache,
	// writes it to the backend and re-arms an immediate refresh on
	// completion, success or failure.
	SetPolicy(ctx context.Context, policy hwio.Policy) error

	// SetCurve validates the curve, optimistically applies it to the
	// cache and writes it to the backend. On failure the true
	// hardware value is pulled back into the cache by refetch.
	SetCurve(ctx context.Context, c hwio.Curve) error

	// EnsureCurve returns the cached entry for the given pair,
	// fetching it from the backend at most once. An unsupported
	// result is cached as an explicit marker and not refetched.
	EnsureCurve(ctx context.Context, header hwio.HeaderID, mode hwio.ControlMode) (store.CurveEntry, error)

	// ReloadCurve drops the cached entry and fetches it again.
	ReloadCurve(ctx context.Context, header hwio.HeaderID, mode hwio.ControlMode) (store.CurveEntry, error)

	// LastError returns the most recent fetch or write failure, or
	// "" if the last operation succeeded.
	LastError() string

	// Stop marks the controller dead: results of calls still in
	// flight are ignored and no further state is mutated.
	Stop()

	Stats() (polls uint64, pollErrors uint64, writeErrors uint64)
}

type resourceState int

const (
	stateIdle resourceState = iota
	stateFetching
	stateWriting
)

const resourcePolicies = "policies"

type syncController struct {
	adapter  hwio.Adapter
	policies *store.PolicyStore
	curves   *store.CurveStore
	readings *store.ReadingStore
	domain   curve.Domain
	pollRate time.Duration

	mu        sync.Mutex
	states    map[string]resourceState
	lastError string
	alive     bool

	refreshCh chan struct{}

	polls       atomic.Uint64
	pollErrors  atomic.Uint64
	writeErrors atomic.Uint64
}

func NewSyncController(
	adapter hwio.Adapter,
	policies *store.PolicyStore,
	curves *store.CurveStore,
	readings *store.ReadingStore,
	domain curve.Domain,
	pollRate time.Duration,
) SyncController {
	return &syncController{
		adapter:   adapter,
		policies:  policies,
		curves:    curves,
		readings:  readings,
		domain:    domain,
		pollRate:  pollRate,
		states:    map[string]resourceState{},
		alive:     true,
		refreshCh: make(chan struct{}, 1),
	}
}

func (s *syncController) Run(ctx context.Context) error {
	defer s.Stop()

	// first poll immediately, so the panel is populated before the
	// first tick
	s.Refresh(ctx)

	tick := time.Tick(s.pollRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			s.Refresh(ctx)
		case <-s.refreshCh:
			s.Refresh(ctx)
		}
	}
}

func (s *syncController) Refresh(ctx context.Context) {
	// a write in flight owns the resource, the next scheduled tick
	// will overwrite with fresher truth
	if !s.transition(resourcePolicies, stateIdle, stateFetching) {
		return
	}
	policies, err := s.adapter.ListPolicies(ctx)
	s.setState(resourcePolicies, stateIdle)

	s.polls.Add(1)

	if !s.isAlive() {
		return
	}

	if err != nil {
		s.pollErrors.Add(1)
		s.recordError(fmt.Sprintf("fetching fan policies failed: %v", err))
	} else {
		s.policies.ReplaceAll(policies)
		s.clearError()
	}

	s.refreshReadings(ctx)
}

func (s *syncController) refreshReadings(ctx context.Context) {
	readings, err := s.adapter.Readings(ctx)
	if !s.isAlive() {
		return
	}
	if errors.Is(err, hwio.ErrReadingsUnavailable) {
		// no sensor source on this backend, not a failure
		ui.Debug("Backend has no sensor readings")
		return
	}
	if err != nil {
		s.pollErrors.Add(1)
		s.recordError(fmt.Sprintf("fetching sensor readings failed: %v", err))
		return
	}
	s.readings.Replace(readings)
}

func (s *syncController) SetPolicy(ctx context.Context, policy hwio.Policy) error {
	if !s.isAlive() {
		return ErrStopped
	}

	key := fmt.Sprintf("policy/%d", policy.HeaderID)
	s.setState(key, stateWriting)

	// the cache reflects the intended value before the write resolves
	s.policies.Put(policy)

	err := s.adapter.SetPolicy(ctx, policy)
	s.setState(key, stateIdle)

	if !s.isAlive() {
		return err
	}

	if err != nil {
		s.writeErrors.Add(1)
		s.recordError(fmt.Sprintf("writing policy for header %d failed: %v", policy.HeaderID, err))
	} else {
		s.clearError()
	}

	// rollback happens by refetch: the refresh pulls the true
	// hardware value back into the cache
	s.requestRefresh()

	return err
}

func (s *syncController) SetCurve(ctx context.Context, c hwio.Curve) error {
	if !s.isAlive() {
		return ErrStopped
	}

	// an invalid curve never leaves the client
	if err := curve.Validate(c, s.domain); err != nil {
		return err
	}
	c.Points = curve.ReorderByTemperature(c.Points)

	key := fmt.Sprintf("curve/%s", hwio.CurveKey(c.HeaderID, c.Mode))
	s.setState(key, stateWriting)

	s.curves.Put(c)

	err := s.adapter.SetCurve(ctx, c)
	s.setState(key, stateIdle)

	if !s.isAlive() {
		return err
	}

	if err != nil {
		s.writeErrors.Add(1)
		s.recordError(fmt.Sprintf("writing curve for header %d (%s) failed: %v", c.HeaderID, c.Mode, err))
		// reconcile with the true hardware value
		if _, reloadErr := s.ReloadCurve(ctx, c.HeaderID, c.Mode); reloadErr != nil {
			ui.Warning("Unable to reload curve for header %d (%s): %v", c.HeaderID, c.Mode, reloadErr)
		}
		return err
	}

	s.clearError()
	s.requestRefresh()
	return nil
}

func (s *syncController) EnsureCurve(ctx context.Context, header hwio.HeaderID, mode hwio.ControlMode) (store.CurveEntry, error) {
	if entry, exists := s.curves.Get(header, mode); exists {
		return entry, nil
	}

	if !s.isAlive() {
		return store.CurveEntry{}, ErrStopped
	}

	key := fmt.Sprintf("curve/%s", hwio.CurveKey(header, mode))
	s.setState(key, stateFetching)
	c, err := s.adapter.Curve(ctx, header, mode)
	s.setState(key, stateIdle)

	if !s.isAlive() {
		return store.CurveEntry{}, ErrStopped
	}

	if errors.Is(err, hwio.ErrUnsupportedMode) {
		// cached as an explicit marker, so the pair is not retried
		// over and over
		s.curves.MarkUnsupported(header, mode)
		entry, _ := s.curves.Get(header, mode)
		return entry, nil
	}
	if err != nil {
		s.pollErrors.Add(1)
		s.recordError(fmt.Sprintf("fetching curve for header %d (%s) failed: %v", header, mode, err))
		return store.CurveEntry{}, err
	}

	s.curves.Put(c)
	s.clearError()
	return store.CurveEntry{Curve: c}, nil
}

func (s *syncController) ReloadCurve(ctx context.Context, header hwio.HeaderID, mode hwio.ControlMode) (store.CurveEntry, error) {
	s.curves.Forget(header, mode)
	return s.EnsureCurve(ctx, header, mode)
}

func (s *syncController) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *syncController) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alive = false
}

func (s *syncController) Stats() (polls uint64, pollErrors uint64, writeErrors uint64) {
	return s.polls.Load(), s.pollErrors.Load(), s.writeErrors.Load()
}

func (s *syncController) isAlive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}

func (s *syncController) recordError(message string) {
	ui.Warning("%s", message)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = message
}

func (s *syncController) clearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

func (s *syncController) setState(key string, state resourceState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive && state != stateIdle {
		return
	}
	s.states[key] = state
}

// transition moves a resource from one state to another, returns
// false if the resource was not in the expected state.
func (s *syncController) transition(key string, from resourceState, to resourceState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive {
		return false
	}
	if s.states[key] != from {
		return false
	}
	s.states[key] = to
	return true
}

// requestRefresh arms an immediate out-of-band refresh without
// blocking. A refresh already pending is enough.
func (s *syncController) requestRefresh() {
	select {
	case s.refreshCh <- struct{}{}:
	default:
	}
}
