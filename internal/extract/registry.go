package extract

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]*Matcher)
	registryMu sync.RWMutex
)

// Register compiles p and adds it to the registry.
// Panics if the pattern is invalid or its member is already registered.
func Register(p Pattern) *Matcher {
	m := MustCompile(p)

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[m.Member()]; exists {
		panic(fmt.Sprintf("pattern already registered: %s", m.Member()))
	}
	registry[m.Member()] = m
	return m
}

// Get returns the matcher registered for a member.
// Returns false if not found.
func Get(member string) (*Matcher, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	m, ok := registry[member]
	return m, ok
}

// All returns all registered matchers sorted by member name.
func All() []*Matcher {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]*Matcher, 0, len(registry))
	for _, m := range registry {
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Member() < result[j].Member()
	})
	return result
}

// Clear removes all registered patterns.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]*Matcher)
}
