package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DevicesCollection           = "devices"
	DeviceDataHistoryCollection = "device_data_history"
)

type Database interface {
	Collection(name string) *mongo.Collection
	Close(ctx context.Context) error
}

type MongoDatabase struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func (m *MongoDatabase) Collection(name string) *mongo.Collection {
	return m.DB.Collection(name)
}

func (m *MongoDatabase) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
