package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/sat-food/sat/internal/model"
	"github.com/sat-food/sat/internal/repository"
)

// MemStore is an in-memory store with the same contract as
// repository.Repository: missing rows and uniqueness violations are reported
// with the repository sentinel errors. Records are copied in and out.
type MemStore struct {
	mu          sync.RWMutex
	users       map[string]*model.User
	restaurants map[string]*model.Restaurant
	boxes       map[string]*model.Box
	favorites   []*model.Favorite
	seq         int64
	order       map[string]int64
	err         error
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		users:       make(map[string]*model.User),
		restaurants: make(map[string]*model.Restaurant),
		boxes:       make(map[string]*model.Box),
		order:       make(map[string]int64),
	}
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (m *MemStore) FailWith(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// DeleteUser removes a user, simulating an identity that vanished.
func (m *MemStore) DeleteUser(id string) {
	m.mu.Lock()
	delete(m.users, id)
	m.mu.Unlock()
}

// DeleteRestaurant removes a restaurant, leaving its boxes orphaned.
func (m *MemStore) DeleteRestaurant(id string) {
	m.mu.Lock()
	delete(m.restaurants, id)
	m.mu.Unlock()
}

// DeleteBox removes a box, leaving favorites on it dangling.
func (m *MemStore) DeleteBox(id string) {
	m.mu.Lock()
	delete(m.boxes, id)
	m.mu.Unlock()
}

// Counts returns the number of stored users, restaurants, boxes and favorites.
func (m *MemStore) Counts() (users, restaurants, boxes, favorites int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), len(m.restaurants), len(m.boxes), len(m.favorites)
}

func (m *MemStore) track(id string) {
	m.seq++
	m.order[id] = m.seq
}

// Users

func (m *MemStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	u := *user
	m.users[u.ID] = &u
	return nil
}

func (m *MemStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *MemStore) UpdateUserPasswordHash(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	u, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// Restaurants

func (m *MemStore) CreateRestaurant(_ context.Context, restaurant *model.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, r := range m.restaurants {
		if r.UserID == restaurant.UserID {
			return repository.ErrRestaurantExists
		}
	}
	r := *restaurant
	m.restaurants[r.ID] = &r
	return nil
}

func (m *MemStore) GetRestaurantByUserID(_ context.Context, userID string) (*model.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.restaurants {
		if r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrRestaurantNotFound
}

func (m *MemStore) GetRestaurantsByIDs(_ context.Context, ids []string) (map[string]*model.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	result := make(map[string]*model.Restaurant, len(ids))
	for _, id := range ids {
		if r, ok := m.restaurants[id]; ok {
			cp := *r
			result[id] = &cp
		}
	}
	return result, nil
}

// Boxes

func (m *MemStore) CreateBox(_ context.Context, box *model.Box) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	b := *box
	m.boxes[b.ID] = &b
	m.track(b.ID)
	return nil
}

func (m *MemStore) GetBoxByID(_ context.Context, id string) (*model.Box, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.boxes[id]
	if !ok {
		return nil, repository.ErrBoxNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *MemStore) GetBoxesByIDs(_ context.Context, ids []string) (map[string]*model.Box, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	result := make(map[string]*model.Box, len(ids))
	for _, id := range ids {
		if b, ok := m.boxes[id]; ok {
			cp := *b
			result[id] = &cp
		}
	}
	return result, nil
}

func (m *MemStore) ListAvailableBoxes(_ context.Context, limit int) ([]*model.Box, error) {
	return m.listBoxes(limit, func(b *model.Box) bool { return b.IsAvailable })
}

func (m *MemStore) ListBoxesByRestaurant(_ context.Context, restaurantID string, limit int) ([]*model.Box, error) {
	return m.listBoxes(limit, func(b *model.Box) bool { return b.RestaurantID == restaurantID })
}

func (m *MemStore) SetBoxAvailability(_ context.Context, id string, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	b, ok := m.boxes[id]
	if !ok {
		return repository.ErrBoxNotFound
	}
	b.IsAvailable = available
	return nil
}

// listBoxes returns matching boxes newest first, like the SQL ORDER BY.
func (m *MemStore) listBoxes(limit int, match func(*model.Box) bool) ([]*model.Box, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*model.Box, 0)
	for _, b := range m.boxes {
		if match(b) {
			cp := *b
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return m.order[result[i].ID] > m.order[result[j].ID]
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Favorites

func (m *MemStore) CreateFavorite(_ context.Context, fav *model.Favorite) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, f := range m.favorites {
		if f.UserID == fav.UserID && f.BoxID == fav.BoxID {
			return repository.ErrFavoriteExists
		}
	}
	f := *fav
	m.favorites = append(m.favorites, &f)
	return nil
}

func (m *MemStore) GetFavorite(_ context.Context, userID, boxID string) (*model.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, f := range m.favorites {
		if f.UserID == userID && f.BoxID == boxID {
			cp := *f
			return &cp, nil
		}
	}
	return nil, repository.ErrFavoriteNotFound
}

func (m *MemStore) DeleteFavorite(_ context.Context, userID, boxID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, f := range m.favorites {
		if f.UserID == userID && f.BoxID == boxID {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			return nil
		}
	}
	return repository.ErrFavoriteNotFound
}

func (m *MemStore) ListFavoritesByUser(_ context.Context, userID string, limit int) ([]*model.Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, m.err
	}
	result := make([]*model.Favorite, 0)
	for _, f := range m.favorites {
		if f.UserID != userID {
			continue
		}
		cp := *f
		result = append(result, &cp)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
