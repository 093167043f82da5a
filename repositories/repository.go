package repositories

import (
	"context"
	"errors"

	"dibs-api/domain"
)

var (
	// ErrNotFound se devuelve cuando el registro buscado no existe
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate se devuelve cuando se viola un índice único
	ErrDuplicate = errors.New("duplicate key")
)

// Fields son los campos a reemplazar en un update, con el nombre público (JSON) como clave
type Fields map[string]interface{}

// UserRepository define las operaciones sobre usuarios
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// PropertyRepository define las operaciones sobre propiedades.
// Update y Delete no fallan si el id no existe: Update devuelve nil.
type PropertyRepository interface {
	GetAll(ctx context.Context) ([]domain.Property, error)
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, id string, fields Fields) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
}

// ReservationRepository define las operaciones sobre reservas
type ReservationRepository interface {
	GetAll(ctx context.Context) ([]domain.Reservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) error
	Update(ctx context.Context, id string, fields Fields) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
}

// Store agrupa los repositorios de un mismo backend y su conexión
type Store interface {
	Users() UserRepository
	Properties() PropertyRepository
	Reservations() ReservationRepository
	Close(ctx context.Context) error
}
