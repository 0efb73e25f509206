package store

import (
	"sort"
	"strconv"

	"github.com/fansync/fansync/internal/hwio"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// PolicyStore holds the last-known policy of every fan header. The
// cached value is always either the last successful read or the last
// optimistic write not yet falsified by an error.
type PolicyStore struct {
	policies cmap.ConcurrentMap[string, hwio.Policy]
}

func NewPolicyStore() *PolicyStore {
	return &PolicyStore{
		policies: cmap.New[hwio.Policy](),
	}
}

func policyKey(header hwio.HeaderID) string {
	return strconv.Itoa(int(header))
}

func (s *PolicyStore) Get(header hwio.HeaderID) (hwio.Policy, bool) {
	return s.policies.Get(policyKey(header))
}

// Put replaces the cached policy of one header.
func (s *PolicyStore) Put(policy hwio.Policy) {
	s.policies.Set(policyKey(policy.HeaderID), policy)
}

// ReplaceAll replaces the whole policy set with the given batch and
// drops headers no longer present in it.
func (s *PolicyStore) ReplaceAll(policies []hwio.Policy) {
	fresh := map[string]bool{}
	for _, policy := range policies {
		fresh[policyKey(policy.HeaderID)] = true
		s.policies.Set(policyKey(policy.HeaderID), policy)
	}
	for _, key := range s.policies.Keys() {
		if !fresh[key] {
			s.policies.Remove(key)
		}
	}
}

// All returns a snapshot of all cached policies, ordered by header id.
func (s *PolicyStore) All() []hwio.Policy {
	result := make([]hwio.Policy, 0, s.policies.Count())
	for _, policy := range s.policies.Items() {
		result = append(result, policy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].HeaderID < result[j].HeaderID
	})
	return result
}
