package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bistro-boss/internal/config"
	"bistro-boss/internal/logger"
)

// Collection names
const (
	CollectionMenu     = "menu"
	CollectionReviews  = "reviews"
	CollectionCarts    = "carts"
	CollectionUsers    = "users"
	CollectionPayments = "payments"
	CollectionBookings = "bookings"
)

// MongoDB is the process-wide document database handle. It is created once at
// startup and passed to every repository.
type MongoDB struct {
	Client       *mongo.Client
	DB           *mongo.Database
	transactions bool
	logger       *logger.Logger
}

// NewMongo connects to MongoDB using the Stable API v1 and verifies the connection
func NewMongo(ctx context.Context, cfg *config.Config, log *logger.Logger) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetServerAPIOptions(serverAPI).
		SetMaxPoolSize(50).
		SetConnectTimeout(10 * time.Second)

	var (
		client *mongo.Client
		err    error
	)
	maxRetries := cfg.Mongo.ConnectRetries
	for i := 0; i < maxRetries; i++ {
		client, err = mongo.Connect(ctx, opts)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = client.Ping(pingCtx, nil)
			cancel()
			if err == nil {
				break
			}
			_ = client.Disconnect(ctx)
		}

		if i < maxRetries-1 {
			waitTime := time.Duration(i+1) * 2 * time.Second
			log.Error("mongo_connection_failed",
				fmt.Sprintf("Failed to connect to MongoDB, retrying in %v", waitTime),
				"startup", err, nil)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(waitTime):
			}
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb after %d attempts: %w", maxRetries, err)
	}

	return &MongoDB{
		Client:       client,
		DB:           client.Database(cfg.Mongo.Database),
		transactions: cfg.Mongo.Transactions,
		logger:       log,
	}, nil
}

// Collection returns a handle to the named collection
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.DB.Collection(name)
}

// Ping tests the database connection
func (m *MongoDB) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}

// Close disconnects the client
func (m *MongoDB) Close(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the data model relies on. The unique users.email
// index backs idempotent self-registration.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	_, err := m.Collection(CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	for _, name := range []string{CollectionCarts, CollectionPayments, CollectionBookings, CollectionReviews} {
		_, err := m.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(fmt.Sprintf("idx_%s_email", name)),
		})
		if err != nil {
			return fmt.Errorf("failed to create %s email index: %w", name, err)
		}
	}

	m.logger.Info("indexes_ensured", "MongoDB indexes are in place", "startup", nil)
	return nil
}

// WithTransaction runs fn inside a multi-document transaction when transactions are
// enabled, and directly otherwise (standalone servers do not support them).
func (m *MongoDB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.transactions {
		return fn(ctx)
	}

	session, err := m.Client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
