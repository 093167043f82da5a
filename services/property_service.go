package services

import (
	"context"
	"encoding/json"
	"log"

	"dibs-api/domain"
	"dibs-api/events"
	"dibs-api/repositories"
)

// PropertyService define las operaciones sobre propiedades
type PropertyService interface {
	GetAll(ctx context.Context) ([]domain.Property, error)
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	Update(ctx context.Context, id string, fields repositories.Fields) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
}

type propertyService struct {
	repo      repositories.PropertyRepository
	cache     repositories.CacheRepository
	publisher events.Publisher
}

// NewPropertyService crea una nueva instancia del servicio
func NewPropertyService(repo repositories.PropertyRepository, cache repositories.CacheRepository, publisher events.Publisher) PropertyService {
	return &propertyService{repo: repo, cache: cache, publisher: publisher}
}

// GetAll devuelve el listado completo, desde caché si está disponible
func (s *propertyService) GetAll(ctx context.Context) ([]domain.Property, error) {
	if data, found := s.cache.Get(repositories.PropertiesListKey); found {
		var properties []domain.Property
		if err := json.Unmarshal(data, &properties); err == nil {
			return properties, nil
		}
		log.Printf("Discarding unreadable cache entry: key=%s", repositories.PropertiesListKey)
	}

	// La versión se toma antes de leer la base; si una escritura la cambia, no se guarda
	version := s.cache.Version(repositories.PropertiesListKey)
	properties, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(properties); err == nil {
		s.cache.SetIfVersion(repositories.PropertiesListKey, data, version)
	}
	return properties, nil
}

func (s *propertyService) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if err := s.repo.Create(ctx, property); err != nil {
		return nil, err
	}
	s.changed(ctx, events.ActionCreate, property.ID)
	return property, nil
}

// Update reemplaza los campos indicados; devuelve nil si el id no existe
func (s *propertyService) Update(ctx context.Context, id string, fields repositories.Fields) (*domain.Property, error) {
	property, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if property != nil {
		s.changed(ctx, events.ActionUpdate, id)
	}
	return property, nil
}

// Delete no falla si el id no existe
func (s *propertyService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx, events.ActionDelete, id)
	return nil
}

// changed invalida el listado local y avisa a las demás réplicas
func (s *propertyService) changed(ctx context.Context, action, id string) {
	s.cache.Delete(repositories.PropertiesListKey)

	event := events.Event{Resource: events.ResourceProperty, Action: action, ID: id}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("Error publishing event (Resource=%s, Action=%s, ID=%s): %v", event.Resource, action, id, err)
	}
}
