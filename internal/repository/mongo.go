package repository

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names for the three record kinds.
const (
	coursesCollection   = "courses"
	studyLogsCollection = "studylogs"
	memosCollection     = "dashboardmemos"
)

// Mongo owns the process-wide connection handle. The connection is
// established lazily on first use and reused afterwards; calling Database
// on an already-connected handle is a no-op lookup.
type Mongo struct {
	uri  string
	name string

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo prepares a handle without connecting.
func NewMongo(uri, database string) *Mongo {
	return &Mongo{uri: uri, name: database}
}

// Database returns the database handle, connecting first if needed.
func (m *Mongo) Database(ctx context.Context) (*mongo.Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return m.db, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	m.client = client
	m.db = client.Database(m.name)
	return m.db, nil
}

// Close disconnects the underlying client if a connection was established.
func (m *Mongo) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	m.db = nil
	return err
}
