package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dibs-api/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Los documentos envuelven al modelo de dominio y agregan el _id de Mongo

type userDocument struct {
	ObjectID    primitive.ObjectID `bson:"_id,omitempty"`
	domain.User `bson:",inline"`
}

type propertyDocument struct {
	ObjectID        primitive.ObjectID `bson:"_id,omitempty"`
	domain.Property `bson:",inline"`
}

func (d *propertyDocument) toDomain() domain.Property {
	p := d.Property
	p.ID = d.ObjectID.Hex()
	return p
}

type reservationDocument struct {
	ObjectID           primitive.ObjectID `bson:"_id,omitempty"`
	domain.Reservation `bson:",inline"`
}

func (d *reservationDocument) toDomain() domain.Reservation {
	r := d.Reservation
	r.ID = d.ObjectID.Hex()
	return r
}

// parseObjectID convierte el id público. Un id malformado se trata como inexistente.
func parseObjectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

var returnAfter = options.FindOneAndUpdate().SetReturnDocument(options.After)

// ============================================
// Usuarios
// ============================================

type mongoUserRepository struct {
	coll *mongo.Collection
}

// Create inserta un usuario; el índice único devuelve ErrDuplicate
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	res, err := r.coll.InsertOne(ctx, userDocument{User: *user})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return nil
}

// GetByUsername busca un usuario por su username
func (r *mongoUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user := doc.User
	user.ID = doc.ObjectID.Hex()
	return &user, nil
}

// ============================================
// Propiedades
// ============================================

type mongoPropertyRepository struct {
	coll *mongo.Collection
}

// GetAll devuelve todas las propiedades en el orden natural de la colección
func (r *mongoPropertyRepository) GetAll(ctx context.Context) ([]domain.Property, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to find properties: %w", err)
	}
	var docs []propertyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	properties := make([]domain.Property, 0, len(docs))
	for i := range docs {
		properties = append(properties, docs[i].toDomain())
	}
	return properties, nil
}

func (r *mongoPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	if err := property.Validate(); err != nil {
		return err
	}
	property.CreatedAt = time.Now().UTC()

	res, err := r.coll.InsertOne(ctx, propertyDocument{Property: *property})
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		property.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPropertyRepository) Update(ctx context.Context, id string, fields Fields) (*domain.Property, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, nil
	}

	var doc propertyDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)}, returnAfter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update property %s: %w", id, err)
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *mongoPropertyRepository) Delete(ctx context.Context, id string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete property %s: %w", id, err)
	}
	return nil
}

// ============================================
// Reservas
// ============================================

type mongoReservationRepository struct {
	coll *mongo.Collection
}

func (r *mongoReservationRepository) GetAll(ctx context.Context) ([]domain.Reservation, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	var docs []reservationDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	reservations := make([]domain.Reservation, 0, len(docs))
	for i := range docs {
		reservations = append(reservations, docs[i].toDomain())
	}
	return reservations, nil
}

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	if err := reservation.Validate(); err != nil {
		return err
	}
	reservation.CreatedAt = time.Now().UTC()

	res, err := r.coll.InsertOne(ctx, reservationDocument{Reservation: *reservation})
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		reservation.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReservationRepository) Update(ctx context.Context, id string, fields Fields) (*domain.Reservation, error) {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil, nil
	}

	var doc reservationDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)}, returnAfter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update reservation %s: %w", id, err)
	}
	res := doc.toDomain()
	return &res, nil
}

func (r *mongoReservationRepository) Delete(ctx context.Context, id string) error {
	oid, ok := parseObjectID(id)
	if !ok {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete reservation %s: %w", id, err)
	}
	return nil
}
