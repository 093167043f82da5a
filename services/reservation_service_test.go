package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dibs-api/domain"
	"dibs-api/events"
	"dibs-api/repositories"
)

type mockReservationRepository struct {
	reservations []domain.Reservation
	calls        int
}

func (m *mockReservationRepository) GetAll(ctx context.Context) ([]domain.Reservation, error) {
	m.calls++
	return append([]domain.Reservation(nil), m.reservations...), nil
}

func (m *mockReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	m.calls++
	reservation.ID = fmt.Sprintf("r%d", len(m.reservations)+1)
	m.reservations = append(m.reservations, *reservation)
	return nil
}

func (m *mockReservationRepository) Update(ctx context.Context, id string, fields repositories.Fields) (*domain.Reservation, error) {
	m.calls++
	for i := range m.reservations {
		if m.reservations[i].ID == id {
			if end, ok := fields["end"].(time.Time); ok {
				m.reservations[i].End = end
			}
			r := m.reservations[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (m *mockReservationRepository) Delete(ctx context.Context, id string) error {
	m.calls++
	for i := range m.reservations {
		if m.reservations[i].ID == id {
			m.reservations = append(m.reservations[:i], m.reservations[i+1:]...)
			break
		}
	}
	return nil
}

func stay() *domain.Reservation {
	return &domain.Reservation{
		Username:     "exampleUser",
		PropertyName: "Cabin",
		Start:        time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestReservationService_WritesInvalidateListing(t *testing.T) {
	repo := &mockReservationRepository{}
	cache := newMockCache()
	publisher := &mockPublisher{}
	service := NewReservationService(repo, cache, publisher)
	ctx := context.Background()

	created, err := service.Create(ctx, stay())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := service.GetAll(ctx); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, found := cache.Get(repositories.ReservationsListKey); !found {
		t.Fatal("Expected listing to be cached")
	}

	newEnd := time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC)
	updated, err := service.Update(ctx, created.ID, repositories.Fields{"end": newEnd})
	if err != nil || updated == nil {
		t.Fatalf("Expected updated reservation, got %v / %v", updated, err)
	}
	if _, found := cache.Get(repositories.ReservationsListKey); found {
		t.Error("Expected listing to be invalidated after update")
	}

	list, _ := service.GetAll(ctx)
	if len(list) != 1 || !list[0].End.Equal(newEnd) {
		t.Errorf("Expected listing with the new end, got %v", list)
	}

	wantActions := []string{events.ActionCreate, events.ActionUpdate}
	if len(publisher.events) != len(wantActions) {
		t.Fatalf("Expected %d events, got %d", len(wantActions), len(publisher.events))
	}
	for i, action := range wantActions {
		if publisher.events[i].Resource != events.ResourceReservation || publisher.events[i].Action != action {
			t.Errorf("Event %d: unexpected %+v", i, publisher.events[i])
		}
	}
}

func TestReservationService_DeleteMissingSucceeds(t *testing.T) {
	service := NewReservationService(&mockReservationRepository{}, newMockCache(), &mockPublisher{})

	if err := service.Delete(context.Background(), "missing"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
