package usecases

import (
	"context"
	"time"

	"iot-device-api/entities"
	"iot-device-api/repositories"

	"github.com/google/uuid"
)

type DeviceUseCase struct {
	DeviceRepo repositories.DeviceRepository
}

func NewDeviceUseCase(deviceRepo repositories.DeviceRepository) *DeviceUseCase {
	return &DeviceUseCase{DeviceRepo: deviceRepo}
}

type CreateDeviceRequest struct {
	Name   string               `json:"name"`
	Type   string               `json:"type"`
	Status string               `json:"status"`
	Data   *entities.DeviceData `json:"data"`
}

// UpdateDeviceRequest carries a partial update: empty/nil fields are left
// unchanged on the device.
type UpdateDeviceRequest struct {
	Name   string               `json:"name"`
	Type   string               `json:"type"`
	Status string               `json:"status"`
	Data   *entities.DeviceData `json:"data"`
}

// CreateDevice creates a new device, applying defaults for the optional
// status and data fields.
func (uc *DeviceUseCase) CreateDevice(ctx context.Context, req CreateDeviceRequest) (*entities.Device, error) {
	if req.Name == "" {
		return nil, invalid("device name is required")
	}
	if !entities.ValidDeviceType(req.Type) {
		return nil, invalid("device type must be sensor or controller")
	}

	status := req.Status
	if status == "" {
		status = entities.DeviceStatusOnline
	} else if !entities.ValidDeviceStatus(status) {
		return nil, invalid("device status must be online or offline")
	}

	data := entities.DefaultDeviceData()
	if req.Data != nil {
		if !entities.ValidPower(req.Data.Power) {
			return nil, invalid("power must be on or off")
		}
		data = *req.Data
	}

	device := &entities.Device{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Type:       req.Type,
		Status:     status,
		LastUpdate: time.Now().UnixMilli(),
		Data:       data,
	}
	if err := uc.DeviceRepo.Create(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

// GetDevice retrieves a device by ID
func (uc *DeviceUseCase) GetDevice(ctx context.Context, id string) (*entities.Device, error) {
	if id == "" {
		return nil, invalid("device id is required")
	}
	return uc.DeviceRepo.GetByID(ctx, id)
}

// GetAllDevices retrieves all devices, most recently updated first
func (uc *DeviceUseCase) GetAllDevices(ctx context.Context) ([]entities.Device, error) {
	return uc.DeviceRepo.GetAll(ctx)
}

// UpdateDevice applies only the provided fields and bumps last_update
// regardless of which fields changed.
func (uc *DeviceUseCase) UpdateDevice(ctx context.Context, id string, req UpdateDeviceRequest) error {
	if id == "" {
		return invalid("device id is required")
	}

	update := repositories.DeviceUpdate{LastUpdate: time.Now().UnixMilli()}
	if req.Name != "" {
		update.Name = &req.Name
	}
	if req.Type != "" {
		if !entities.ValidDeviceType(req.Type) {
			return invalid("device type must be sensor or controller")
		}
		update.Type = &req.Type
	}
	if req.Status != "" {
		if !entities.ValidDeviceStatus(req.Status) {
			return invalid("device status must be online or offline")
		}
		update.Status = &req.Status
	}
	if req.Data != nil {
		if !entities.ValidPower(req.Data.Power) {
			return invalid("power must be on or off")
		}
		update.Data = req.Data
	}

	return uc.DeviceRepo.Update(ctx, id, update)
}

// UpdateDeviceStatus sets status and last_update only
func (uc *DeviceUseCase) UpdateDeviceStatus(ctx context.Context, id, status string) error {
	if id == "" {
		return invalid("device id is required")
	}
	if !entities.ValidDeviceStatus(status) {
		return invalid("device status must be online or offline")
	}
	return uc.DeviceRepo.Update(ctx, id, repositories.DeviceUpdate{
		Status:     &status,
		LastUpdate: time.Now().UnixMilli(),
	})
}

// UpdateDeviceData replaces the embedded data object as a whole
func (uc *DeviceUseCase) UpdateDeviceData(ctx context.Context, id string, data entities.DeviceData) error {
	if id == "" {
		return invalid("device id is required")
	}
	if !entities.ValidPower(data.Power) {
		return invalid("power must be on or off")
	}
	return uc.DeviceRepo.Update(ctx, id, repositories.DeviceUpdate{
		Data:       &data,
		LastUpdate: time.Now().UnixMilli(),
	})
}

// DeleteDevice deletes a device. Deleting an unknown id reports
// repositories.ErrNotFound rather than success.
func (uc *DeviceUseCase) DeleteDevice(ctx context.Context, id string) error {
	if id == "" {
		return invalid("device id is required")
	}
	return uc.DeviceRepo.Delete(ctx, id)
}
