package store

import (
	"github.com/fansync/fansync/internal/hwio"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// CurveKey identifies one cached fan curve. Curves are cached per
// (header, mode) pair, switching a header's mode does not discard the
// other mode's curve.
type CurveKey struct {
	Header hwio.HeaderID
	Mode   hwio.ControlMode
}

func (k CurveKey) String() string {
	return hwio.CurveKey(k.Header, k.Mode)
}

// CurveEntry is the cached state of one (header, mode) pair. A key
// with no entry has not been fetched yet; an entry with Unsupported
// set records that the backend reported the pair as absent, so the
// pair is not fetched again without an explicit reload.
type CurveEntry struct {
	Curve       hwio.Curve
	Unsupported bool
}

// CurveStore is a keyed in-memory store of the last-known curve per
// (header, mode). Entries are replaced wholesale, never mutated in
// place, so readers always observe consistent snapshots.
type CurveStore struct {
	entries cmap.ConcurrentMap[CurveKey, CurveEntry]
}

func NewCurveStore() *CurveStore {
	return &CurveStore{
		entries: cmap.NewStringer[CurveKey, CurveEntry](),
	}
}

func (s *CurveStore) Get(header hwio.HeaderID, mode hwio.ControlMode) (CurveEntry, bool) {
	return s.entries.Get(CurveKey{Header: header, Mode: mode})
}

// Put replaces the entry for the curve's (header, mode) pair.
func (s *CurveStore) Put(curve hwio.Curve) {
	key := CurveKey{Header: curve.HeaderID, Mode: curve.Mode}
	s.entries.Set(key, CurveEntry{Curve: curve})
}

// MarkUnsupported records that the backend has no curve for the given
// pair. Distinct from "not yet fetched".
func (s *CurveStore) MarkUnsupported(header hwio.HeaderID, mode hwio.ControlMode) {
	key := CurveKey{Header: header, Mode: mode}
	s.entries.Set(key, CurveEntry{
		Curve:       hwio.Curve{HeaderID: header, Mode: mode},
		Unsupported: true,
	})
}

// Forget drops the entry for the given pair so the next access
// fetches it again. Used for explicit reloads.
func (s *CurveStore) Forget(header hwio.HeaderID, mode hwio.ControlMode) {
	s.entries.Remove(CurveKey{Header: header, Mode: mode})
}

// Curves returns a snapshot of all cached curves, excluding
// unsupported markers.
func (s *CurveStore) Curves() map[string]hwio.Curve {
	result := map[string]hwio.Curve{}
	for key, entry := range s.entries.Items() {
		if entry.Unsupported {
			continue
		}
		result[key.String()] = entry.Curve
	}
	return result
}
