package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/cvforge/cv-service/internal/config"
)

// Collection names for the three document stores.
const (
	CollectionUsers   = "users"
	CollectionCVs     = "cvs"
	CollectionReviews = "reviews"
)

// Mongo wraps the document store client and database handle.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongo connects to MongoDB using the provided configuration.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout())
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("connected to mongodb", zap.String("database", cfg.Database))
	return &Mongo{Client: client, Database: client.Database(cfg.Database)}, nil
}

// Users returns the users collection handle.
func (m *Mongo) Users() *mongo.Collection {
	return m.Database.Collection(CollectionUsers)
}

// CVs returns the cvs collection handle.
func (m *Mongo) CVs() *mongo.Collection {
	return m.Database.Collection(CollectionCVs)
}

// Reviews returns the reviews collection handle.
func (m *Mongo) Reviews() *mongo.Collection {
	return m.Database.Collection(CollectionReviews)
}

// Ping verifies connectivity to the document store.
func (m *Mongo) Ping(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return errors.New("mongo client not configured")
	}
	return m.Client.Ping(ctx, nil)
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) {
	if m != nil && m.Client != nil {
		_ = m.Client.Disconnect(ctx)
	}
}

// EnsureIndexes creates the indexes the service relies on: unique user
// emails plus lookup indexes for owner and review references.
func EnsureIndexes(ctx context.Context, m *Mongo, logger *zap.Logger) error {
	unique := options.Index().SetUnique(true)

	if _, err := m.Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	}); err != nil {
		return err
	}

	if _, err := m.CVs().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	}); err != nil {
		return err
	}

	if _, err := m.Reviews().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "cvId", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}); err != nil {
		return err
	}

	logger.Info("mongodb indexes ensured")
	return nil
}
