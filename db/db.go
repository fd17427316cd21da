package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database holds the client and the collections used by the stores.
type Database struct {
	Client       *mongo.Client
	DB           *mongo.Database
	Offers       *mongo.Collection
	Users        *mongo.Collection
	Destinations *mongo.Collection
	Groups       *mongo.Collection
}

// Connect opens a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, uri, name string) (*Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return FromClient(client, name), nil
}

func FromClient(client *mongo.Client, name string) *Database {
	database := client.Database(name)
	return &Database{
		Client:       client,
		DB:           database,
		Offers:       database.Collection("traveloffers"),
		Users:        database.Collection("users"),
		Destinations: database.Collection("destinations"),
		Groups:       database.Collection("groups"),
	}
}

// EnsureIndexes creates the indexes the queries rely on. It is idempotent.
func (d *Database) EnsureIndexes(ctx context.Context) error {
	indexes := map[*mongo.Collection][]mongo.IndexModel{
		d.Users: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		d.Offers: {
			{Keys: bson.D{{Key: "available", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "tags", Value: 1}}},
		},
		d.Destinations: {
			{Keys: bson.D{{Key: "country", Value: 1}}},
		},
		d.Groups: {
			{Keys: bson.D{{Key: "members", Value: 1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func (d *Database) Disconnect(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
