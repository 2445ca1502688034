/* store.go
 * Contains the Store struct and NewStore function. The store keeps an archive of tournaments that have ended so
 * directors can look back at past schedules. Running tournaments are never loaded from it
 */

package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Tournaments *mongo.Collection
	}
}

// NewStore connects to MongoDB and returns a Store for the database
// Preconditions: Receives strings containing the database name and the mongo uri
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(dbName string, mongoURI string) (*Store, error) {
	if dbName == "" || mongoURI == "" {
		return nil, fmt.Errorf("dbName and mongoURI are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return newStoreFromDatabase(client, client.Database(dbName)), nil
}

func newStoreFromDatabase(client *mongo.Client, db *mongo.Database) *Store {
	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Tournaments = db.Collection("tournaments")
	return s
}

// Close disconnects from MongoDB
func (s *Store) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}
