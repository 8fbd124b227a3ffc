package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/pasarlink/pasarlink-golang/internal/models"
)

// MemoryStore is an in-memory PartitionStore + InboxStore + UserStore.
// It backs the test suite and serves as the dev fallback when no database
// DSN is configured.
type MemoryStore struct {
	mu         sync.RWMutex
	partitions map[int64][]models.Order
	inboxes    map[int64][]models.Notification
	users      map[int64]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		partitions: make(map[int64][]models.Order),
		inboxes:    make(map[int64][]models.Notification),
		users:      make(map[int64]models.User),
	}
}

var (
	_ PartitionStore = (*MemoryStore)(nil)
	_ InboxStore     = (*MemoryStore)(nil)
	_ UserStore      = (*MemoryStore)(nil)
)

func copyOrders(src []models.Order) []models.Order {
	out := make([]models.Order, len(src))
	for i, o := range src {
		cp := o
		cp.Items = append([]models.OrderItem(nil), o.Items...)
		cp.ReviewedItems = make(map[int64]bool, len(o.ReviewedItems))
		for k, v := range o.ReviewedItems {
			cp.ReviewedItems[k] = v
		}
		out[i] = cp
	}
	return out
}

func (m *MemoryStore) Read(ownerID int64) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyOrders(m.partitions[ownerID]), nil
}

func (m *MemoryStore) Write(ownerID int64, orders []models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.partitions[ownerID] = copyOrders(orders)
	return nil
}

func (m *MemoryStore) ListOwnerIDs() ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int64, 0, len(m.partitions))
	for id := range m.partitions {
		ids = append(ids, id)
	}
	// map iteration order is random; keep the scan deterministic
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *MemoryStore) Push(ownerID int64, n models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inboxes[ownerID] = append(m.inboxes[ownerID], n)
	return nil
}

func (m *MemoryStore) List(ownerID int64, limit int) ([]models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]models.Notification(nil), m.inboxes[ownerID]...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsRead != out[j].IsRead {
			return !out[i].IsRead
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryStore) MarkRead(ownerID int64, notificationID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inbox := m.inboxes[ownerID]
	for i := range inbox {
		if inbox[i].ID == notificationID {
			inbox[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryStore) GetByEmail(email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetByID(id int64) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

// SeedUser registers a user in the in-memory directory. Dev/test only.
func (m *MemoryStore) SeedUser(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}
