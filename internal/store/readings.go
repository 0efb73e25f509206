package store

import (
	"sync"

	"github.com/asecurityteam/rolling"
	"github.com/fansync/fansync/internal/hwio"
	"github.com/fansync/fansync/internal/util"
)

// ReadingStore holds the latest sensor snapshot. The snapshot is
// replaced wholesale on every poll tick; per-channel moving averages
// are kept across replacements for display smoothing.
type ReadingStore struct {
	mu         sync.RWMutex
	readings   []hwio.Reading
	windows    map[string]*rolling.PointPolicy
	windowSize int
}

func NewReadingStore(windowSize int) *ReadingStore {
	return &ReadingStore{
		windows:    map[string]*rolling.PointPolicy{},
		windowSize: windowSize,
	}
}

// Replace swaps in a fresh snapshot and feeds each value into its
// channel's rolling window.
func (s *ReadingStore) Replace(readings []hwio.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.readings = make([]hwio.Reading, len(readings))
	copy(s.readings, readings)

	for _, reading := range readings {
		window, exists := s.windows[reading.Identifier]
		if !exists {
			window = util.CreateRollingWindow(s.windowSize)
			s.windows[reading.Identifier] = window
		}
		window.Append(reading.Value)
	}
}

// All returns a copy of the latest snapshot.
func (s *ReadingStore) All() []hwio.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]hwio.Reading, len(s.readings))
	copy(result, s.readings)
	return result
}

func (s *ReadingStore) Get(identifier string) (hwio.Reading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, reading := range s.readings {
		if reading.Identifier == identifier {
			return reading, true
		}
	}
	return hwio.Reading{}, false
}

// MovingAvg returns the smoothed value of the given channel, or false
// if the channel has never been seen.
func (s *ReadingStore) MovingAvg(identifier string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	window, exists := s.windows[identifier]
	if !exists {
		return 0, false
	}
	return util.GetWindowAvg(window), true
}
