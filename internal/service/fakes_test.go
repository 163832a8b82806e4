package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:    "unit-test-secret",
			TokenTTLDays: 1,
			BcryptCost:   bcrypt.MinCost,
		},
	}
}

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.UserProfile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]*domain.UserProfile)}
}

func (m *memProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok || p.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *memProfileRepo) Update(_ context.Context, profile *domain.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[profile.UserID]
	if !ok || p.IsDeleted {
		return pgx.ErrNoRows
	}
	cp := *profile
	cp.UpdatedAt = time.Now()
	m.profiles[profile.UserID] = &cp
	return nil
}

type memUserRepo struct {
	mu       sync.Mutex
	users    map[string]*domain.User
	profiles *memProfileRepo
}

func newMemUserRepo(profiles *memProfileRepo) *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User), profiles: profiles}
}

func (m *memUserRepo) CreateWithProfile(_ context.Context, user *domain.User, profile *domain.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	profile.CreatedAt, profile.UpdatedAt = now, now
	cu := *user
	m.users[user.ID] = &cu
	cp := *profile
	m.profiles.mu.Lock()
	m.profiles.profiles[profile.UserID] = &cp
	m.profiles.mu.Unlock()
	return nil
}

func (m *memUserRepo) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[user.ID]
	if !ok || u.IsDeleted {
		return pgx.ErrNoRows
	}
	cp := *user
	cp.UpdatedAt = time.Now()
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByIDIncludingDeleted(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email && u.IsActive && !u.IsDeleted {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memUserRepo) EmailTaken(_ context.Context, email, excludeUserID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email && u.ID != excludeUserID && u.IsActive && !u.IsDeleted {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.UserListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.UserListing
	for _, u := range m.users {
		if u.Role != role || u.IsDeleted {
			continue
		}
		listing := domain.UserListing{User: *u}
		m.profiles.mu.Lock()
		if p, ok := m.profiles.profiles[u.ID]; ok {
			listing.Name = p.Name
		}
		m.profiles.mu.Unlock()
		result = append(result, listing)
	}
	return result, nil
}

func (m *memUserRepo) SoftDeleteWithProfile(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || u.IsDeleted {
		return pgx.ErrNoRows
	}
	u.IsDeleted = true
	m.profiles.mu.Lock()
	if p, ok := m.profiles.profiles[userID]; ok {
		p.IsDeleted = true
	}
	m.profiles.mu.Unlock()
	return nil
}

func (m *memUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, u := range m.users {
		if u.Role == role && !u.IsDeleted {
			count++
		}
	}
	return count, nil
}

type memCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]*domain.Company
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{companies: make(map[string]*domain.Company)}
}

func (m *memCompanyRepo) Create(_ context.Context, company *domain.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	company.CreatedAt, company.UpdatedAt = now, now
	cp := *company
	m.companies[company.ID] = &cp
	return nil
}

func (m *memCompanyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.companies[id]
	if !ok || c.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (m *memCompanyRepo) GetByName(_ context.Context, name string) (*domain.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.companies {
		if c.Name == name && !c.IsDeleted {
			cp := *c
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (m *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	ticket.CreatedAt, ticket.UpdatedAt = now, now
	cp := *ticket
	m.tickets[ticket.ID] = &cp
	return nil
}

func (m *memTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[ticket.ID]
	if !ok || t.IsDeleted {
		return pgx.ErrNoRows
	}
	cp := *ticket
	cp.UpdatedAt = time.Now()
	m.tickets[ticket.ID] = &cp
	return nil
}

func (m *memTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (m *memTicketRepo) ListAll(_ context.Context) ([]domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Ticket
	for _, t := range m.tickets {
		if !t.IsDeleted {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *memTicketRepo) ListForUser(_ context.Context, userID string) ([]domain.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.Ticket
	for _, t := range m.tickets {
		if t.IsDeleted {
			continue
		}
		if t.RequesterID == userID || (t.AssigneeID != nil && *t.AssigneeID == userID) {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *memTicketRepo) SoftDelete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[id]
	if !ok || t.IsDeleted {
		return pgx.ErrNoRows
	}
	t.IsDeleted = true
	return nil
}

func (m *memTicketRepo) CountActive(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, t := range m.tickets {
		if !t.IsDeleted {
			count++
		}
	}
	return count, nil
}

func (m *memTicketRepo) CountForUser(_ context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, t := range m.tickets {
		if t.IsDeleted {
			continue
		}
		if t.RequesterID == userID || (t.AssigneeID != nil && *t.AssigneeID == userID) {
			count++
		}
	}
	return count, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(domain.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published(eventType domain.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, e := range d.events {
		if e.Type == eventType {
			result = append(result, e)
		}
	}
	return result
}
