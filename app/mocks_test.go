package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dibs-api/domain"
	"dibs-api/repositories"
)

// ============================================
// MOCK del store en memoria
// ============================================

type memStore struct {
	mu           sync.Mutex
	users        map[string]domain.User
	properties   []domain.Property
	reservations []domain.Reservation
	nextID       int
	calls        int
	failWith     error
	closed       bool
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]domain.User)}
}

func (s *memStore) Users() repositories.UserRepository               { return memUsers{s} }
func (s *memStore) Properties() repositories.PropertyRepository       { return memProperties{s} }
func (s *memStore) Reservations() repositories.ReservationRepository { return memReservations{s} }

func (s *memStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// enter registra la llamada y devuelve el error configurado
func (s *memStore) enter() error {
	s.calls++
	return s.failWith
}

func (s *memStore) id() string {
	s.nextID++
	return fmt.Sprintf("%024x", s.nextID)
}

func (s *memStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return err
	}
	if _, exists := r.s.users[user.Username]; exists {
		return repositories.ErrDuplicate
	}
	user.ID = r.s.id()
	r.s.users[user.Username] = *user
	return nil
}

func (r memUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	user, exists := r.s.users[username]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

type memProperties struct{ s *memStore }

func (r memProperties) GetAll(ctx context.Context) ([]domain.Property, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	return append([]domain.Property(nil), r.s.properties...), nil
}

func (r memProperties) Create(ctx context.Context, property *domain.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return err
	}
	if err := property.Validate(); err != nil {
		return err
	}
	property.ID = r.s.id()
	r.s.properties = append(r.s.properties, *property)
	return nil
}

func (r memProperties) Update(ctx context.Context, id string, fields repositories.Fields) (*domain.Property, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	for i := range r.s.properties {
		p := &r.s.properties[i]
		if p.ID != id {
			continue
		}
		for key, value := range fields {
			switch key {
			case "name":
				p.Name = value.(string)
			case "street":
				p.Street = value.(string)
			case "city":
				p.City = value.(string)
			case "state":
				p.State = value.(string)
			case "zipcode":
				p.Zipcode = value.(int)
			case "type":
				p.Type = value.(string)
			case "owner":
				p.Owner = value.(string)
			case "thumbUrl":
				p.ThumbURL = value.(string)
			}
		}
		updated := *p
		return &updated, nil
	}
	return nil, nil
}

func (r memProperties) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return err
	}
	for i := range r.s.properties {
		if r.s.properties[i].ID == id {
			r.s.properties = append(r.s.properties[:i], r.s.properties[i+1:]...)
			break
		}
	}
	return nil
}

type memReservations struct{ s *memStore }

func (r memReservations) GetAll(ctx context.Context) ([]domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	return append([]domain.Reservation(nil), r.s.reservations...), nil
}

func (r memReservations) Create(ctx context.Context, reservation *domain.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return err
	}
	if err := reservation.Validate(); err != nil {
		return err
	}
	reservation.ID = r.s.id()
	r.s.reservations = append(r.s.reservations, *reservation)
	return nil
}

func (r memReservations) Update(ctx context.Context, id string, fields repositories.Fields) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return nil, err
	}
	for i := range r.s.reservations {
		res := &r.s.reservations[i]
		if res.ID != id {
			continue
		}
		for key, value := range fields {
			switch key {
			case "username":
				res.Username = value.(string)
			case "propertyName":
				res.PropertyName = value.(string)
			case "start":
				res.Start = value.(time.Time)
			case "end":
				res.End = value.(time.Time)
			}
		}
		updated := *res
		return &updated, nil
	}
	return nil, nil
}

func (r memReservations) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(); err != nil {
		return err
	}
	for i := range r.s.reservations {
		if r.s.reservations[i].ID == id {
			r.s.reservations = append(r.s.reservations[:i], r.s.reservations[i+1:]...)
			break
		}
	}
	return nil
}
