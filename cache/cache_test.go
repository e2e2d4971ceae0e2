package cache

import (
	"testing"

	"iot-device-api/entities"
)

func TestReadingBufferAddAndDrain(t *testing.T) {
	buffer := NewReadingBuffer()

	buffer.Add(entities.DeviceDataHistory{ID: "r1", DeviceID: "a", Timestamp: 1})
	buffer.Add(entities.DeviceDataHistory{ID: "r2", DeviceID: "a", Timestamp: 2})
	buffer.Add(entities.DeviceDataHistory{ID: "r3", DeviceID: "b", Timestamp: 3})

	drained := buffer.Drain()
	if len(drained) != 2 {
		t.Fatalf("expected readings for 2 devices, got %d", len(drained))
	}
	if len(drained["a"]) != 2 || len(drained["b"]) != 1 {
		t.Errorf("unexpected grouping: a=%d b=%d", len(drained["a"]), len(drained["b"]))
	}
	// Arrival order is preserved within a device
	if drained["a"][0].ID != "r1" || drained["a"][1].ID != "r2" {
		t.Errorf("arrival order lost: %+v", drained["a"])
	}

	// Drain clears the buffer
	if again := buffer.Drain(); len(again) != 0 {
		t.Errorf("expected empty buffer after drain, got %d devices", len(again))
	}
}

func TestReadingBufferStats(t *testing.T) {
	buffer := NewReadingBuffer()

	buffer.Add(entities.DeviceDataHistory{ID: "r1", DeviceID: "a"})
	buffer.Add(entities.DeviceDataHistory{ID: "r2", DeviceID: "b"})
	buffer.Add(entities.DeviceDataHistory{ID: "r3", DeviceID: "b"})

	stats := buffer.Stats()
	if stats["total_devices"] != 2 {
		t.Errorf("expected 2 devices, got %v", stats["total_devices"])
	}
	if stats["total_readings"] != 3 {
		t.Errorf("expected 3 readings, got %v", stats["total_readings"])
	}
}
