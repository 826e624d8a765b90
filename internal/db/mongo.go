package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nexusai/nexus-backend/internal/config"
)

// MongoDB holds the document store connection and its collections.
type MongoDB struct {
	Client *mongo.Client
	Jobs   *mongo.Collection
	Users  *mongo.Collection
}

// NewMongoDB connects to the document store within the configured timeout.
// This is the only bounded timeout in the system: it decides the backend
// election at startup, so a slow or unreachable cluster must fail fast.
func NewMongoDB(cfg *config.Config) (*MongoDB, error) {
	timeout := cfg.MongoConnectTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Connect is lazy; the ping is what actually exercises the election timeout
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(cfg.Mongo.Database)
	m := &MongoDB{
		Client: client,
		Jobs:   database.Collection("jobs"),
		Users:  database.Collection("users"),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}

	return m, nil
}

// ensureIndexes creates the unique indexes on users.uid and users.email.
// Duplicate-user rejection in document mode relies entirely on these.
func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "uid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := m.Users.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	return nil
}

// Close disconnects from the document store.
func (m *MongoDB) Close(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
