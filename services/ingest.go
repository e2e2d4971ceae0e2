package services

import (
	"context"
	"errors"
	"log"
	"time"

	"iot-device-api/cache"
	"iot-device-api/entities"
	"iot-device-api/repositories"
)

// Ingestor buffers readings pushed by devices and periodically flushes them:
// a bulk insert into history plus one embedded-data update per device with
// its newest reading.
type Ingestor struct {
	buffer      *cache.ReadingBuffer
	historyRepo repositories.DeviceDataHistoryRepository
	deviceRepo  repositories.DeviceRepository
	interval    time.Duration
}

func NewIngestor(historyRepo repositories.DeviceDataHistoryRepository, deviceRepo repositories.DeviceRepository, interval time.Duration) *Ingestor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Ingestor{
		buffer:      cache.NewReadingBuffer(),
		historyRepo: historyRepo,
		deviceRepo:  deviceRepo,
		interval:    interval,
	}
}

// Start runs the periodic flush loop until ctx is cancelled.
func (ing *Ingestor) Start(ctx context.Context) {
	ticker := time.NewTicker(ing.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ing.Flush(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Add buffers a reading until the next flush
func (ing *Ingestor) Add(record entities.DeviceDataHistory) {
	ing.buffer.Add(record)
}

// Flush drains the buffer into the store
func (ing *Ingestor) Flush(ctx context.Context) {
	byDevice := ing.buffer.Drain()
	if len(byDevice) == 0 {
		log.Printf("No buffered readings to flush")
		return
	}

	var all []entities.DeviceDataHistory
	for _, records := range byDevice {
		all = append(all, records...)
	}
	if err := ing.historyRepo.InsertMany(ctx, all); err != nil {
		log.Printf("Error bulk inserting %d readings: %v", len(all), err)
		return
	}
	log.Printf("Inserted %d buffered readings", len(all))

	// Apply the newest reading per device to its embedded data. Unknown
	// device ids are expected; history is loosely coupled to devices.
	for deviceID, records := range byDevice {
		newest := records[len(records)-1]
		data := entities.DeviceData{
			Temperature: newest.Temperature,
			Humidity:    newest.Humidity,
			Power:       newest.Power,
		}
		err := ing.deviceRepo.Update(ctx, deviceID, repositories.DeviceUpdate{
			Data:       &data,
			LastUpdate: time.Now().UnixMilli(),
		})
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			log.Printf("Error updating device %s data: %v", deviceID, err)
		}
	}
}

// Stats returns statistics about the current buffer
func (ing *Ingestor) Stats() map[string]interface{} {
	return ing.buffer.Stats()
}
