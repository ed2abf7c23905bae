package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names.
const (
	ColUsers       = "users"
	ColParcels     = "parcels"
	ColAssignments = "deliveryAssign"
)

// NewClient connects to MongoDB and pings the primary.
func NewClient(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true)).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the lookup indexes. Email is not unique on users:
// registration relies on an existence check instead.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		col  string
		keys bson.D
	}{
		{ColUsers, bson.D{{Key: "email", Value: 1}}},
		{ColParcels, bson.D{{Key: "email", Value: 1}}},
	}

	for _, ix := range indexes {
		model := mongo.IndexModel{Keys: ix.keys, Options: options.Index()}
		if _, err := db.Collection(ix.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", ix.col, err)
		}
	}
	return nil
}
