package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func Connect(ctx context.Context) (Database, error) {
	var uri string

	// Check if MONGO_URL is provided (connection string)
	mongoURL := os.Getenv("MONGO_URL")
	if mongoURL != "" {
		uri = mongoURL
		log.Println("Connecting to MongoDB using MONGO_URL...")
	} else {
		// Build URI from individual parameters
		host := os.Getenv("MONGO_HOST")
		port := os.Getenv("MONGO_PORT")
		if host == "" {
			host = "localhost"
		}
		if port == "" {
			port = "27017"
		}
		uri = fmt.Sprintf("mongodb://%s:%s", host, port)
		log.Printf("Connecting to MongoDB at %s:%s...", host, port)
	}

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "iot"
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := &MongoDatabase{Client: client, DB: client.Database(dbName)}

	log.Println("MongoDB connection established successfully!")

	log.Println("Ensuring collection indexes...")
	if err := ensureIndexes(connectCtx, database); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}
	log.Println("Collection indexes ready!")

	return database, nil
}

// ensureIndexes backs the list ordering on devices and the per-device range
// queries on history.
func ensureIndexes(ctx context.Context, database *MongoDatabase) error {
	_, err := database.Collection(DevicesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "last_update", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = database.Collection(DeviceDataHistoryCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "device_id", Value: 1}}},
		{Keys: bson.D{{Key: "device_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	})
	return err
}
