package repositories

import (
	"context"
	"errors"
	"time"

	"iot-device-api/db"
	"iot-device-api/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type deviceDataHistoryMongoRepository struct {
	col *mongo.Collection
}

func NewDeviceDataHistoryMongoRepository(database db.Database) DeviceDataHistoryRepository {
	return &deviceDataHistoryMongoRepository{col: database.Collection(db.DeviceDataHistoryCollection)}
}

type historyDoc struct {
	ID          string    `bson:"_id"`
	DeviceID    string    `bson:"device_id"`
	Timestamp   time.Time `bson:"timestamp"`
	Temperature float64   `bson:"temperature"`
	Humidity    float64   `bson:"humidity"`
	Power       string    `bson:"power"`
}

func (r *deviceDataHistoryMongoRepository) Insert(ctx context.Context, record *entities.DeviceDataHistory) error {
	_, err := r.col.InsertOne(ctx, toHistoryDoc(*record))
	return err
}

func (r *deviceDataHistoryMongoRepository) InsertMany(ctx context.Context, records []entities.DeviceDataHistory) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(records))
	for _, record := range records {
		docs = append(docs, toHistoryDoc(record))
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func (r *deviceDataHistoryMongoRepository) GetByDeviceID(ctx context.Context, filter entities.HistoryFilter) ([]entities.DeviceDataHistory, error) {
	query := bson.M{"device_id": filter.DeviceID}
	bounds := bson.M{}
	if filter.Start != 0 {
		bounds["$gte"] = time.UnixMilli(filter.Start).UTC()
	}
	if filter.End != 0 {
		bounds["$lte"] = time.UnixMilli(filter.End).UTC()
	}
	if len(bounds) > 0 {
		query["timestamp"] = bounds
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = entities.DefaultHistoryLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]entities.DeviceDataHistory, 0)
	for cursor.Next(ctx) {
		var doc historyDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, doc.toEntity())
	}
	return records, cursor.Err()
}

func (r *deviceDataHistoryMongoRepository) GetLatest(ctx context.Context, deviceID string) (*entities.DeviceDataHistory, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	var doc historyDoc
	err := r.col.FindOne(ctx, bson.M{"device_id": deviceID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	record := doc.toEntity()
	return &record, nil
}

func toHistoryDoc(record entities.DeviceDataHistory) historyDoc {
	return historyDoc{
		ID:          record.ID,
		DeviceID:    record.DeviceID,
		Timestamp:   time.UnixMilli(record.Timestamp).UTC(),
		Temperature: record.Temperature,
		Humidity:    record.Humidity,
		Power:       record.Power,
	}
}

func (d *historyDoc) toEntity() entities.DeviceDataHistory {
	return entities.DeviceDataHistory{
		ID:          d.ID,
		DeviceID:    d.DeviceID,
		Timestamp:   d.Timestamp.UnixMilli(),
		Temperature: d.Temperature,
		Humidity:    d.Humidity,
		Power:       d.Power,
	}
}
