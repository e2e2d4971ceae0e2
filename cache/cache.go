package cache

import (
	"sync"

	"iot-device-api/entities"
)

// ReadingBuffer accumulates readings pushed over websocket until the ingest
// processor flushes them to the store in bulk.
type ReadingBuffer struct {
	mu       sync.RWMutex
	readings map[string][]entities.DeviceDataHistory // map[deviceID][]readings
}

func NewReadingBuffer() *ReadingBuffer {
	return &ReadingBuffer{
		readings: make(map[string][]entities.DeviceDataHistory),
	}
}

// Add appends a reading to the buffer for its device
func (b *ReadingBuffer) Add(record entities.DeviceDataHistory) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.readings[record.DeviceID] = append(b.readings[record.DeviceID], record)
}

// Drain returns all buffered readings grouped by device and clears the buffer
func (b *ReadingBuffer) Drain() map[string][]entities.DeviceDataHistory {
	b.mu.Lock()
	defer b.mu.Unlock()

	drained := b.readings
	b.readings = make(map[string][]entities.DeviceDataHistory)
	return drained
}

// Stats returns statistics about the current buffer contents
func (b *ReadingBuffer) Stats() map[string]interface{} {
	b.mu.RLock()
	defer b.mu.RUnlock()

	totalReadings := 0
	for _, records := range b.readings {
		totalReadings += len(records)
	}

	return map[string]interface{}{
		"total_devices":  len(b.readings),
		"total_readings": totalReadings,
	}
}
