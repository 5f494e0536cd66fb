package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/homelist/marketplace/internal/model"
	"github.com/homelist/marketplace/internal/repository"
)

// MemoryUsers is an in-memory user store with the same observable
// guarantees as the Postgres repository, including the unique name rule.
type MemoryUsers struct {
	mu     sync.Mutex
	nextID int64
	users  []*model.User

	// Err, when set, is returned by every call.
	Err error
	// StaleNameCheck makes UserNameExists always report false, as a
	// concurrent writer would observe before the competing insert commits.
	StaleNameCheck bool
}

// NewMemoryUsers returns an empty user store.
func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{}
}

// CreateUser stores a copy of user and assigns its ID.
func (m *MemoryUsers) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	for _, u := range m.users {
		if u.Name == user.Name {
			return repository.ErrNameExists
		}
	}

	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users = append(m.users, &stored)
	return nil
}

// GetUserByID returns a copy of the stored user.
func (m *MemoryUsers) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.users {
		if u.ID == id {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// UserNameExists reports whether a user with the exact name is stored.
func (m *MemoryUsers) UserNameExists(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return false, m.Err
	}
	if m.StaleNameCheck {
		return false, nil
	}
	for _, u := range m.users {
		if u.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// ListUsers returns one page ordered by created_at then id, newest first.
func (m *MemoryUsers) ListUsers(ctx context.Context, page model.Page) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	sorted := make([]*model.User, len(m.users))
	copy(sorted, m.users)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt != sorted[j].CreatedAt {
			return sorted[i].CreatedAt > sorted[j].CreatedAt
		}
		return sorted[i].ID > sorted[j].ID
	})

	out := make([]*model.User, 0)
	for _, u := range window(len(sorted), page) {
		copied := *sorted[u]
		out = append(out, &copied)
	}
	return out, nil
}

// Count returns the number of stored users.
func (m *MemoryUsers) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// MemoryListings is an in-memory listing store.
type MemoryListings struct {
	mu       sync.Mutex
	nextID   int64
	listings []*model.Listing

	// Err, when set, is returned by every call.
	Err error
}

// NewMemoryListings returns an empty listing store.
func NewMemoryListings() *MemoryListings {
	return &MemoryListings{}
}

// CreateListing stores a copy of listing and assigns its ID.
func (m *MemoryListings) CreateListing(ctx context.Context, listing *model.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.nextID++
	listing.ID = m.nextID
	stored := *listing
	m.listings = append(m.listings, &stored)
	return nil
}

// GetListingByID returns a copy of the stored listing.
func (m *MemoryListings) GetListingByID(ctx context.Context, id int64) (*model.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	for _, l := range m.listings {
		if l.ID == id {
			found := *l
			return &found, nil
		}
	}
	return nil, repository.ErrListingNotFound
}

// ListListings returns one filtered page, newest first.
func (m *MemoryListings) ListListings(ctx context.Context, filter repository.ListingFilter, page model.Page) ([]*model.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}

	var matched []*model.Listing
	for _, l := range m.listings {
		if filter.UserID != nil && l.UserID != *filter.UserID {
			continue
		}
		matched = append(matched, l)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt != matched[j].CreatedAt {
			return matched[i].CreatedAt > matched[j].CreatedAt
		}
		return matched[i].ID > matched[j].ID
	})

	out := make([]*model.Listing, 0)
	for _, i := range window(len(matched), page) {
		copied := *matched[i]
		out = append(out, &copied)
	}
	return out, nil
}

// Count returns the number of stored listings.
func (m *MemoryListings) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listings)
}

// window returns the indexes of n sorted records selected by page,
// mirroring LIMIT size OFFSET offset.
func window(n int, page model.Page) []int {
	if page.Empty() {
		return nil
	}
	start := page.Offset()
	if start >= n {
		return nil
	}
	end := start + page.Size
	if end > n || end < start {
		end = n
	}
	idx := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		idx = append(idx, i)
	}
	return idx
}
