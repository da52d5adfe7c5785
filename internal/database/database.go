package database

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultMongoDatabase is used when the URI carries no database name.
const DefaultMongoDatabase = "goalledger"

// ConnectMongo connects to MongoDB and returns the client and the database named
// in the URI path.
func ConnectMongo(mongoURI string) (*mongo.Client, *mongo.Database, error) {
	// Use longer timeout for Atlas connections
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	log.Printf("Attempting to connect to MongoDB...")
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, err
	}

	// Ping the database with a separate context
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, err
	}

	log.Println("✅ Connected to MongoDB")
	return client, client.Database(MongoDatabaseName(mongoURI)), nil
}

// MongoDatabaseName extracts the database from mongodb://host/name?opts.
func MongoDatabaseName(mongoURI string) string {
	rest := mongoURI
	if i := strings.Index(rest, "://"); i != -1 {
		rest = rest[i+3:]
	}
	i := strings.Index(rest, "/")
	if i == -1 {
		return DefaultMongoDatabase
	}
	name := strings.Split(rest[i+1:], "?")[0]
	if name == "" {
		return DefaultMongoDatabase
	}
	return name
}

// DisconnectMongo closes the client.
func DisconnectMongo(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
