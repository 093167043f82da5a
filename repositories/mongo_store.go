package repositories

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const defaultMongoDatabase = "dibs"

// Nombres de las colecciones
const (
	usersCollection        = "users"
	propertiesCollection   = "properties"
	reservationsCollection = "reservations"
)

// MongoStore implementa Store sobre MongoDB
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo abre la conexión, verifica con un ping y crea los índices.
// El nombre de la base se toma del path de la URI.
func ConnectMongo(ctx context.Context, uri string) (*MongoStore, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid mongo uri: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = defaultMongoDatabase
	}

	log.Printf("Connecting to MongoDB database %s", dbName)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	store := &MongoStore{client: client, db: client.Database(dbName)}
	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Printf("Successfully connected to MongoDB")
	return store, nil
}

// ensureIndexes crea el índice único de username
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}
	return nil
}

func (s *MongoStore) Users() UserRepository {
	return &mongoUserRepository{coll: s.db.Collection(usersCollection)}
}

func (s *MongoStore) Properties() PropertyRepository {
	return &mongoPropertyRepository{coll: s.db.Collection(propertiesCollection)}
}

func (s *MongoStore) Reservations() ReservationRepository {
	return &mongoReservationRepository{coll: s.db.Collection(reservationsCollection)}
}

// Close desconecta el cliente
func (s *MongoStore) Close(ctx context.Context) error {
	log.Printf("Disconnecting from MongoDB")
	return s.client.Disconnect(ctx)
}
