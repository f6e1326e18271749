package metrics

import (
	"sync"
	"sync/atomic"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered        map[string]uint64
	Logins                 map[string]uint64
	AuthRejections         map[string]uint64
	RestaurantsCreated     uint64
	BoxesCreated           uint64
	BoxAvailabilityChanges uint64
	FavoritesAdded         uint64
	FavoritesRemoved       uint64
	CatalogReads           uint64
	CatalogItemsServed     uint64
	OrphanedReferences     map[string]uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu                 sync.Mutex
	usersRegistered    map[string]uint64
	logins             map[string]uint64
	authRejections     map[string]uint64
	orphanedReferences map[string]uint64

	restaurantsCreated     uint64
	boxesCreated           uint64
	boxAvailabilityChanges uint64
	favoritesAdded         uint64
	favoritesRemoved       uint64
	catalogReads           uint64
	catalogItemsServed     uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		usersRegistered:    make(map[string]uint64),
		logins:             make(map[string]uint64),
		authRejections:     make(map[string]uint64),
		orphanedReferences: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		UsersRegistered:        copyCounts(m.usersRegistered),
		Logins:                 copyCounts(m.logins),
		AuthRejections:         copyCounts(m.authRejections),
		RestaurantsCreated:     atomic.LoadUint64(&m.restaurantsCreated),
		BoxesCreated:           atomic.LoadUint64(&m.boxesCreated),
		BoxAvailabilityChanges: atomic.LoadUint64(&m.boxAvailabilityChanges),
		FavoritesAdded:         atomic.LoadUint64(&m.favoritesAdded),
		FavoritesRemoved:       atomic.LoadUint64(&m.favoritesRemoved),
		CatalogReads:           atomic.LoadUint64(&m.catalogReads),
		CatalogItemsServed:     atomic.LoadUint64(&m.catalogItemsServed),
		OrphanedReferences:     copyCounts(m.orphanedReferences),
	}
}

// IncUserRegistered increments the registration counter for a role.
func (m *InMemoryRecorder) IncUserRegistered(role string) {
	m.inc(m.usersRegistered, role)
}

// IncLogin increments the login counter for a status.
func (m *InMemoryRecorder) IncLogin(status string) {
	m.inc(m.logins, status)
}

// IncAuthRejected increments the auth rejection counter for a reason.
func (m *InMemoryRecorder) IncAuthRejected(reason string) {
	m.inc(m.authRejections, reason)
}

// IncRestaurantCreated increments restaurant created counter.
func (m *InMemoryRecorder) IncRestaurantCreated() {
	atomic.AddUint64(&m.restaurantsCreated, 1)
}

// IncBoxCreated increments box created counter.
func (m *InMemoryRecorder) IncBoxCreated() {
	atomic.AddUint64(&m.boxesCreated, 1)
}

// IncBoxAvailabilityChanged increments availability change counter.
func (m *InMemoryRecorder) IncBoxAvailabilityChanged() {
	atomic.AddUint64(&m.boxAvailabilityChanges, 1)
}

// IncFavoriteAdded increments favorite added counter.
func (m *InMemoryRecorder) IncFavoriteAdded() {
	atomic.AddUint64(&m.favoritesAdded, 1)
}

// IncFavoriteRemoved increments favorite removed counter.
func (m *InMemoryRecorder) IncFavoriteRemoved() {
	atomic.AddUint64(&m.favoritesRemoved, 1)
}

// ObserveCatalogSize records one catalog read of the given size.
func (m *InMemoryRecorder) ObserveCatalogSize(size int) {
	atomic.AddUint64(&m.catalogReads, 1)
	atomic.AddUint64(&m.catalogItemsServed, uint64(size))
}

// IncOrphanedReference counts a dangling cross-reference seen on read.
func (m *InMemoryRecorder) IncOrphanedReference(kind string) {
	m.inc(m.orphanedReferences, kind)
}

func (m *InMemoryRecorder) inc(counts map[string]uint64, label string) {
	m.mu.Lock()
	counts[label]++
	m.mu.Unlock()
}

func copyCounts(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
