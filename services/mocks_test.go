package services

import (
	"context"
	"errors"
	"fmt"

	"dibs-api/domain"
	"dibs-api/events"
	"dibs-api/repositories"
)

// ============================================
// MOCKS de repositorios, caché y publisher
// ============================================

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domain.User)}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Username]; exists {
		return repositories.ErrDuplicate
	}
	user.ID = fmt.Sprintf("%d", len(m.users)+1)
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, exists := m.users[username]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

type mockPropertyRepository struct {
	properties []domain.Property
	calls      int
	failWith   error
}

func (m *mockPropertyRepository) GetAll(ctx context.Context) ([]domain.Property, error) {
	m.calls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]domain.Property, len(m.properties))
	copy(out, m.properties)
	return out, nil
}

func (m *mockPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	m.calls++
	if m.failWith != nil {
		return m.failWith
	}
	property.ID = fmt.Sprintf("p%d", len(m.properties)+1)
	m.properties = append(m.properties, *property)
	return nil
}

func (m *mockPropertyRepository) Update(ctx context.Context, id string, fields repositories.Fields) (*domain.Property, error) {
	m.calls++
	for i := range m.properties {
		if m.properties[i].ID == id {
			if name, ok := fields["name"].(string); ok {
				m.properties[i].Name = name
			}
			p := m.properties[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (m *mockPropertyRepository) Delete(ctx context.Context, id string) error {
	m.calls++
	for i := range m.properties {
		if m.properties[i].ID == id {
			m.properties = append(m.properties[:i], m.properties[i+1:]...)
			break
		}
	}
	return nil
}

type mockCache struct {
	data     map[string][]byte
	versions map[string]uint64
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte), versions: make(map[string]uint64)}
}

func (c *mockCache) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *mockCache) Set(key string, value []byte) { c.data[key] = value }
func (c *mockCache) Version(key string) uint64    { return c.versions[key] }
func (c *mockCache) Close()                       {}

func (c *mockCache) SetIfVersion(key string, value []byte, version uint64) bool {
	if c.versions[key] != version {
		return false
	}
	c.data[key] = value
	return true
}

func (c *mockCache) Delete(key string) {
	c.versions[key]++
	delete(c.data, key)
}

type mockPublisher struct {
	events []events.Event
	err    error
}

func (p *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *mockPublisher) Close() error { return nil }

var errStorage = errors.New("storage down")
