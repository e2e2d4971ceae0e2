package repositories

import (
	"context"
	"errors"
	"iot-device-api/entities"
)

// ErrNotFound is the single absent-entity signal shared by every repository
// operation, so callers never have to tell a missing document apart from a
// store failure by inspecting driver errors.
var ErrNotFound = errors.New("not found")

// DeviceUpdate carries the fields of a partial device update. Nil pointers
// are left untouched; LastUpdate is always written.
type DeviceUpdate struct {
	Name       *string
	Type       *string
	Status     *string
	Data       *entities.DeviceData
	LastUpdate int64
}

type DeviceRepository interface {
	Create(ctx context.Context, device *entities.Device) error
	GetByID(ctx context.Context, id string) (*entities.Device, error)
	GetAll(ctx context.Context) ([]entities.Device, error)
	Update(ctx context.Context, id string, update DeviceUpdate) error
	Delete(ctx context.Context, id string) error
}

type DeviceDataHistoryRepository interface {
	Insert(ctx context.Context, record *entities.DeviceDataHistory) error
	InsertMany(ctx context.Context, records []entities.DeviceDataHistory) error
	GetByDeviceID(ctx context.Context, filter entities.HistoryFilter) ([]entities.DeviceDataHistory, error)
	GetLatest(ctx context.Context, deviceID string) (*entities.DeviceDataHistory, error)
}
