package infra

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"feedbackflow/internal/config"
	"feedbackflow/pkg/utils"
)

// MongoConnector hands out one process-wide database handle. Nothing is dialed
// until Database is first called; a failed attempt caches nothing so the next call
// tries again.
type MongoConnector struct {
	cfg config.MongoConfig

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database

	// connect is replaced in tests.
	connect func(ctx context.Context, uri string) (*mongo.Client, error)
}

func NewMongoConnector(cfg config.MongoConfig) *MongoConnector {
	return &MongoConnector{cfg: cfg, connect: dialMongo}
}

func dialMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Database returns the cached handle, connecting first if there is none.
func (m *MongoConnector) Database(ctx context.Context) (*mongo.Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return m.db, nil
	}

	if m.cfg.URI == "" {
		return nil, &utils.ConfigurationError{Key: "MONGODB_URI"}
	}

	client, err := m.connect(ctx, m.cfg.URI)
	if err != nil {
		return nil, utils.NewStorageError("connect", err)
	}

	m.client = client
	m.db = client.Database(m.cfg.Database)
	log.Info().Str("database", m.cfg.Database).Msg("Connected to MongoDB")
	return m.db, nil
}

// Collection is a shorthand for Database(ctx).Collection(cfg.Collection).
func (m *MongoConnector) Collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := m.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(m.cfg.Collection), nil
}

// Close disconnects if a connection was ever made.
func (m *MongoConnector) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client, m.db = nil, nil
	if err != nil {
		return utils.NewStorageError("disconnect", err)
	}
	log.Info().Msg("MongoDB connection closed")
	return nil
}
