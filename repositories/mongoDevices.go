package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"iot-device-api/db"
	"iot-device-api/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type deviceMongoRepository struct {
	col *mongo.Collection
}

func NewDeviceMongoRepository(database db.Database) DeviceRepository {
	return &deviceMongoRepository{col: database.Collection(db.DevicesCollection)}
}

// deviceDoc is the persisted shape. Data stays a raw value because older
// writers stored the blob as a JSON-encoded string instead of a subdocument.
type deviceDoc struct {
	ID         string        `bson:"_id"`
	Name       string        `bson:"name"`
	Type       string        `bson:"type"`
	Status     string        `bson:"status"`
	LastUpdate time.Time     `bson:"last_update"`
	Data       bson.RawValue `bson:"data"`
}

func (r *deviceMongoRepository) Create(ctx context.Context, device *entities.Device) error {
	doc := bson.M{
		"_id":         device.ID,
		"name":        device.Name,
		"type":        device.Type,
		"status":      device.Status,
		"last_update": time.UnixMilli(device.LastUpdate).UTC(),
		"data":        device.Data,
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func (r *deviceMongoRepository) GetByID(ctx context.Context, id string) (*entities.Device, error) {
	var doc deviceDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toEntity()
}

func (r *deviceMongoRepository) GetAll(ctx context.Context) ([]entities.Device, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_update", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	devices := make([]entities.Device, 0)
	for cursor.Next(ctx) {
		var doc deviceDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		device, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		devices = append(devices, *device)
	}
	return devices, cursor.Err()
}

func (r *deviceMongoRepository) Update(ctx context.Context, id string, update DeviceUpdate) error {
	set := bson.M{"last_update": time.UnixMilli(update.LastUpdate).UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Type != nil {
		set["type"] = *update.Type
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.Data != nil {
		set["data"] = *update.Data
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *deviceMongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *deviceDoc) toEntity() (*entities.Device, error) {
	data, err := normalizeDeviceData(d.Data)
	if err != nil {
		return nil, fmt.Errorf("device %s: %w", d.ID, err)
	}
	return &entities.Device{
		ID:         d.ID,
		Name:       d.Name,
		Type:       d.Type,
		Status:     d.Status,
		LastUpdate: d.LastUpdate.UnixMilli(),
		Data:       data,
	}, nil
}

// normalizeDeviceData accepts the two blob shapes found in the devices
// collection: a JSON-encoded string and a structured subdocument. Anything
// else is rejected outright.
func normalizeDeviceData(raw bson.RawValue) (entities.DeviceData, error) {
	var data entities.DeviceData
	switch raw.Type {
	case bson.TypeString:
		if err := json.Unmarshal([]byte(raw.StringValue()), &data); err != nil {
			return entities.DeviceData{}, fmt.Errorf("malformed data blob: %w", err)
		}
	case bson.TypeEmbeddedDocument:
		if err := raw.Unmarshal(&data); err != nil {
			return entities.DeviceData{}, fmt.Errorf("malformed data document: %w", err)
		}
	default:
		return entities.DeviceData{}, fmt.Errorf("unsupported data blob type %s", raw.Type)
	}
	return data, nil
}
