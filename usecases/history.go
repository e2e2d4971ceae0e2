package usecases

import (
	"context"
	"time"

	"iot-device-api/entities"
	"iot-device-api/repositories"

	"github.com/google/uuid"
)

type HistoryUseCase struct {
	HistoryRepo repositories.DeviceDataHistoryRepository
}

func NewHistoryUseCase(historyRepo repositories.DeviceDataHistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{HistoryRepo: historyRepo}
}

// AppendReadingRequest carries one sensor reading. All fields are required;
// the timestamp is assigned by the server, never by the client.
type AppendReadingRequest struct {
	Temperature *float64 `json:"temperature" binding:"required"`
	Humidity    *float64 `json:"humidity" binding:"required"`
	Power       string   `json:"power" binding:"required"`
}

// AppendReading stores an immutable reading for a device. The device itself
// is not looked up; history is loosely coupled by device id.
func (uc *HistoryUseCase) AppendReading(ctx context.Context, deviceID string, req AppendReadingRequest) (*entities.DeviceDataHistory, error) {
	if deviceID == "" {
		return nil, invalid("device id is required")
	}
	if req.Temperature == nil || req.Humidity == nil {
		return nil, invalid("temperature and humidity are required")
	}
	if !entities.ValidPower(req.Power) {
		return nil, invalid("power must be on or off")
	}

	record := &entities.DeviceDataHistory{
		ID:          uuid.New().String(),
		DeviceID:    deviceID,
		Timestamp:   time.Now().UnixMilli(),
		Temperature: *req.Temperature,
		Humidity:    *req.Humidity,
		Power:       req.Power,
	}
	if err := uc.HistoryRepo.Insert(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// QueryReadings returns readings for a device, newest first, bounded by the
// optional inclusive time range and capped at the limit (default 100).
func (uc *HistoryUseCase) QueryReadings(ctx context.Context, filter entities.HistoryFilter) ([]entities.DeviceDataHistory, error) {
	if filter.DeviceID == "" {
		return nil, invalid("device id is required")
	}
	return uc.HistoryRepo.GetByDeviceID(ctx, filter)
}

// LatestReading returns the most recent reading for a device
func (uc *HistoryUseCase) LatestReading(ctx context.Context, deviceID string) (*entities.DeviceDataHistory, error) {
	if deviceID == "" {
		return nil, invalid("device id is required")
	}
	return uc.HistoryRepo.GetLatest(ctx, deviceID)
}
