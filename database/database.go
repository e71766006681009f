package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pocket-lite/config"
)

const entriesCollection = "entries"

const connectTimeout = 10 * time.Second

// DB wraps the MongoDB client and the entries collection handle.
type DB struct {
	client  *mongo.Client
	Entries *mongo.Collection
}

// Connect establishes and verifies the MongoDB connection.
func Connect(cfg config.Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.DBURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("can't ping MongoDB: %w", err)
	}

	db := client.Database(cfg.DBName)

	return &DB{
		client:  client,
		Entries: db.Collection(entriesCollection),
	}, nil
}

// Close disconnects the underlying client.
func (d *DB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return d.client.Disconnect(ctx)
}
