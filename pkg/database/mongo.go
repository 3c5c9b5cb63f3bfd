package database

import (
	"context"
	"fmt"
	"time"

	"naturehatch-backend/pkg/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	CollUsers    = "users"
	CollProducts = "products"
	CollOrders   = "orders"
	CollBlogs    = "blogs"
)

// MongoIface abstracts the database handle for repositories
type MongoIface interface {
	Collection(name string) *mongo.Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// DB wrapper struct
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Collection implements MongoIface
func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Ping implements MongoIface
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close implements MongoIface
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// InitDB connects to MongoDB and verifies the connection
func InitDB(config utils.DatabaseConfig, env string) (MongoIface, error) {
	uri := config.URI(env)
	if uri == "" {
		return nil, fmt.Errorf("mongo URI is not configured")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	// Test connection
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancelPing()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo failed: %w", err)
	}

	return &DB{client: client, db: client.Database(config.Name)}, nil
}
