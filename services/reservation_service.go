package services

import (
	"context"
	"encoding/json"
	"log"

	"dibs-api/domain"
	"dibs-api/events"
	"dibs-api/repositories"
)

// ReservationService define las operaciones sobre reservas.
// No hay control de solapamiento: dos reservas pueden cubrir las mismas fechas.
type ReservationService interface {
	GetAll(ctx context.Context) ([]domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	Update(ctx context.Context, id string, fields repositories.Fields) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
}

type reservationService struct {
	repo      repositories.ReservationRepository
	cache     repositories.CacheRepository
	publisher events.Publisher
}

// NewReservationService crea una nueva instancia del servicio
func NewReservationService(repo repositories.ReservationRepository, cache repositories.CacheRepository, publisher events.Publisher) ReservationService {
	return &reservationService{repo: repo, cache: cache, publisher: publisher}
}

func (s *reservationService) GetAll(ctx context.Context) ([]domain.Reservation, error) {
	if data, found := s.cache.Get(repositories.ReservationsListKey); found {
		var reservations []domain.Reservation
		if err := json.Unmarshal(data, &reservations); err == nil {
			return reservations, nil
		}
		log.Printf("Discarding unreadable cache entry: key=%s", repositories.ReservationsListKey)
	}

	// La versión se toma antes de leer la base; si una escritura la cambia, no se guarda
	version := s.cache.Version(repositories.ReservationsListKey)
	reservations, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(reservations); err == nil {
		s.cache.SetIfVersion(repositories.ReservationsListKey, data, version)
	}
	return reservations, nil
}

func (s *reservationService) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, err
	}
	s.changed(ctx, events.ActionCreate, reservation.ID)
	return reservation, nil
}

func (s *reservationService) Update(ctx context.Context, id string, fields repositories.Fields) (*domain.Reservation, error) {
	reservation, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if reservation != nil {
		s.changed(ctx, events.ActionUpdate, id)
	}
	return reservation, nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, events.ActionDelete, id)
	return nil
}

func (s *reservationService) changed(ctx context.Context, action, id string) {
	s.cache.Delete(repositories.ReservationsListKey)

	event := events.Event{Resource: events.ResourceReservation, Action: action, ID: id}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("Error publishing event (Resource=%s, Action=%s, ID=%s): %v", event.Resource, action, id, err)
	}
}
