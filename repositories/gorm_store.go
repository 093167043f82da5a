package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"dibs-api/domain"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// GormStore implementa Store sobre MySQL usando GORM
type GormStore struct {
	db *gorm.DB
}

// OpenMySQL conecta a MySQL y auto-migra las tablas
func OpenMySQL(dsn string) (*GormStore, error) {
	log.Println("Connecting to MySQL...")
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	// GORM crea las tablas si no existen
	if err := db.AutoMigrate(&domain.User{}, &domain.Property{}, &domain.Reservation{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Successfully connected to MySQL")

	return NewGormStore(db), nil
}

// NewGormStore envuelve una conexión GORM ya abierta
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository {
	return &gormUserRepository{db: s.db}
}

func (s *GormStore) Properties() PropertyRepository {
	return &gormPropertyRepository{db: s.db}
}

func (s *GormStore) Reservations() ReservationRepository {
	return &gormReservationRepository{db: s.db}
}

// Close cierra el pool de conexiones
func (s *GormStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	log.Println("Closing MySQL connection pool")
	return sqlDB.Close()
}

// propertyColumns traduce los nombres públicos a columnas
var propertyColumns = map[string]string{
	"name":     "name",
	"street":   "street",
	"city":     "city",
	"state":    "state",
	"zipcode":  "zipcode",
	"type":     "type",
	"owner":    "owner",
	"thumbUrl": "thumb_url",
}

var reservationColumns = map[string]string{
	"username":     "username",
	"propertyName": "property_name",
	"start":        "start",
	"end":          "end_at",
}

func toColumns(fields Fields, columns map[string]string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		col, ok := columns[k]
		if !ok {
			return nil, fmt.Errorf("unknown field %q", k)
		}
		out[col] = v
	}
	return out, nil
}

// ============================================
// Usuarios
// ============================================

type gormUserRepository struct {
	db *gorm.DB
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	user.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *gormUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// ============================================
// Propiedades
// ============================================

type gormPropertyRepository struct {
	db *gorm.DB
}

func (r *gormPropertyRepository) GetAll(ctx context.Context) ([]domain.Property, error) {
	properties := []domain.Property{}
	if err := r.db.WithContext(ctx).Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to find properties: %w", err)
	}
	return properties, nil
}

func (r *gormPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	if err := property.Validate(); err != nil {
		return err
	}
	property.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(property).Error; err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

func (r *gormPropertyRepository) Update(ctx context.Context, id string, fields Fields) (*domain.Property, error) {
	cols, err := toColumns(fields, propertyColumns)
	if err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Property{}).Where("id = ?", id).Updates(cols).Error; err != nil {
		return nil, fmt.Errorf("failed to update property %s: %w", id, err)
	}

	var property domain.Property
	if err := db.First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to reload property %s: %w", id, err)
	}
	return &property, nil
}

func (r *gormPropertyRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Property{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete property %s: %w", id, err)
	}
	return nil
}

// ============================================
// Reservas
// ============================================

type gormReservationRepository struct {
	db *gorm.DB
}

func (r *gormReservationRepository) GetAll(ctx context.Context) ([]domain.Reservation, error) {
	reservations := []domain.Reservation{}
	if err := r.db.WithContext(ctx).Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	return reservations, nil
}

func (r *gormReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	if err := reservation.Validate(); err != nil {
		return err
	}
	reservation.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(reservation).Error; err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

func (r *gormReservationRepository) Update(ctx context.Context, id string, fields Fields) (*domain.Reservation, error) {
	cols, err := toColumns(fields, reservationColumns)
	if err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)
	if err := db.Model(&domain.Reservation{}).Where("id = ?", id).Updates(cols).Error; err != nil {
		return nil, fmt.Errorf("failed to update reservation %s: %w", id, err)
	}

	var reservation domain.Reservation
	if err := db.First(&reservation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to reload reservation %s: %w", id, err)
	}
	return &reservation, nil
}

func (r *gormReservationRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Reservation{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete reservation %s: %w", id, err)
	}
	return nil
}
