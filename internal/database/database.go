package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"crowdcube/internal/utils"
)

const (
	UsersCollection     = "users"
	CampaignsCollection = "campaigns"
	DonationsCollection = "donations"
)

type Service interface {
	Health() map[string]string
	Client() *mongo.Client
	Collection(name string) *mongo.Collection
	EnsureIndexes(ctx context.Context) error
	Close(ctx context.Context) error
}

type service struct {
	db     *mongo.Client
	dbName string
}

// New connects to MongoDB and verifies the deployment answers a ping.
func New(ctx context.Context, uri, dbName string) (Service, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}).
		SetPoolMonitor(poolMonitor(dbName))
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.Info().Str("database", dbName).Msg("Pinged your deployment. Connected to MongoDB")
	return &service{db: client, dbName: dbName}, nil
}

// poolMonitor mirrors the driver's connection pool into the
// db_connections_* gauges.
func poolMonitor(dbName string) *event.PoolMonitor {
	open := utils.DBConnectionsOpen.WithLabelValues(dbName)
	inUse := utils.DBConnectionsInUse.WithLabelValues(dbName)
	return &event.PoolMonitor{
		Event: func(e *event.PoolEvent) {
			switch e.Type {
			case event.ConnectionCreated:
				open.Inc()
			case event.ConnectionClosed:
				open.Dec()
			case event.GetSucceeded:
				inUse.Inc()
			case event.ConnectionReturned:
				inUse.Dec()
			}
		},
	}
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := s.db.Ping(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("Database health check failed")
		return map[string]string{
			"message": "db down",
			"error":   err.Error(),
		}
	}

	return map[string]string{
		"message": "It's healthy",
	}
}

func (s *service) Client() *mongo.Client {
	return s.db
}

func (s *service) Collection(name string) *mongo.Collection {
	return s.db.Database(s.dbName).Collection(name)
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// email index on users is what turns a duplicate registration into a
// duplicate key error. Safe to call on every startup.
func (s *service) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("idx_users_email"),
			},
		},
		CampaignsCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("idx_campaigns_email"),
			},
			{
				Keys:    bson.D{{Key: "deadline", Value: 1}},
				Options: options.Index().SetName("idx_campaigns_deadline"),
			},
		},
		DonationsCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("idx_donations_email"),
			},
		},
	}

	for name, models := range indexes {
		if _, err := s.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes for %s: %w", name, err)
		}
	}
	return nil
}

func (s *service) Close(ctx context.Context) error {
	log.Info().Msg("Disconnecting from MongoDB")
	return s.db.Disconnect(ctx)
}
