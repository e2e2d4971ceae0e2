package usecases

import (
	"context"
	"sort"

	"iot-device-api/entities"
	"iot-device-api/repositories"
)

// fakeDeviceRepo is an in-memory test double for DeviceRepository.
type fakeDeviceRepo struct {
	devices map[string]entities.Device
	err     error
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: make(map[string]entities.Device)}
}

func (f *fakeDeviceRepo) Create(ctx context.Context, device *entities.Device) error {
	if f.err != nil {
		return f.err
	}
	f.devices[device.ID] = *device
	return nil
}

func (f *fakeDeviceRepo) GetByID(ctx context.Context, id string) (*entities.Device, error) {
	if f.err != nil {
		return nil, f.err
	}
	device, ok := f.devices[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &device, nil
}

func (f *fakeDeviceRepo) GetAll(ctx context.Context) ([]entities.Device, error) {
	if f.err != nil {
		return nil, f.err
	}
	all := make([]entities.Device, 0, len(f.devices))
	for _, device := range f.devices {
		all = append(all, device)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].LastUpdate > all[j].LastUpdate })
	return all, nil
}

func (f *fakeDeviceRepo) Update(ctx context.Context, id string, update repositories.DeviceUpdate) error {
	if f.err != nil {
		return f.err
	}
	device, ok := f.devices[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if update.Name != nil {
		device.Name = *update.Name
	}
	if update.Type != nil {
		device.Type = *update.Type
	}
	if update.Status != nil {
		device.Status = *update.Status
	}
	if update.Data != nil {
		device.Data = *update.Data
	}
	device.LastUpdate = update.LastUpdate
	f.devices[id] = device
	return nil
}

func (f *fakeDeviceRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.devices[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.devices, id)
	return nil
}

// fakeHistoryRepo is an in-memory test double for DeviceDataHistoryRepository.
type fakeHistoryRepo struct {
	records []entities.DeviceDataHistory
	err     error
}

func (f *fakeHistoryRepo) Insert(ctx context.Context, record *entities.DeviceDataHistory) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeHistoryRepo) InsertMany(ctx context.Context, records []entities.DeviceDataHistory) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, records...)
	return nil
}

func (f *fakeHistoryRepo) GetByDeviceID(ctx context.Context, filter entities.HistoryFilter) ([]entities.DeviceDataHistory, error) {
	if f.err != nil {
		return nil, f.err
	}
	matched := make([]entities.DeviceDataHistory, 0)
	for _, record := range f.records {
		if record.DeviceID != filter.DeviceID {
			continue
		}
		if filter.Start != 0 && record.Timestamp < filter.Start {
			continue
		}
		if filter.End != 0 && record.Timestamp > filter.End {
			continue
		}
		matched = append(matched, record)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Timestamp > matched[j].Timestamp })
	limit := filter.Limit
	if limit <= 0 {
		limit = entities.DefaultHistoryLimit
	}
	if int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeHistoryRepo) GetLatest(ctx context.Context, deviceID string) (*entities.DeviceDataHistory, error) {
	if f.err != nil {
		return nil, f.err
	}
	records, err := f.GetByDeviceID(ctx, entities.HistoryFilter{DeviceID: deviceID, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, repositories.ErrNotFound
	}
	return &records[0], nil
}
