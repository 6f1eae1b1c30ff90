package battle

import (
	"sync"
	"sync/atomic"

	"github.com/udisondev/monbattle/internal/model"
)

// Manager tracks in-flight battles.
// Thread-safe: uses RWMutex for the battle map and atomic for ID generation.
// The battles themselves are not; each one belongs to a single caller.
type Manager struct {
	mu      sync.RWMutex
	battles map[int32]*Battle
	nextID  atomic.Int32
}

// NewManager creates an empty battle registry.
func NewManager() *Manager {
	return &Manager{
		battles: make(map[int32]*Battle),
	}
}

// Create starts a party battle and registers it.
func (m *Manager) Create(p1, p2 *model.Party, opts ...Option) (int32, *Battle) {
	b := New(p1, p2, opts...)
	return m.Register(b), b
}

// Register adds b and returns its id. Ids start at 1 and are never reused.
func (m *Manager) Register(b *Battle) int32 {
	id := m.nextID.Add(1)

	m.mu.Lock()
	m.battles[id] = b
	m.mu.Unlock()

	return id
}

// Get returns a battle by ID, or nil if not found.
func (m *Manager) Get(id int32) *Battle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.battles[id]
}

// Remove drops a battle by ID. Unknown ids are ignored.
func (m *Manager) Remove(id int32) {
	m.mu.Lock()
	delete(m.battles, id)
	m.mu.Unlock()
}

// Count returns the number of registered battles.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.battles)
}
