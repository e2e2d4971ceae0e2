package repositories

import (
	"testing"

	"iot-device-api/entities"

	"go.mongodb.org/mongo-driver/bson"
)

func rawValue(t *testing.T, v interface{}) bson.RawValue {
	t.Helper()
	typ, data, err := bson.MarshalValue(v)
	if err != nil {
		t.Fatalf("MarshalValue failed: %v", err)
	}
	return bson.RawValue{Type: typ, Value: data}
}

func TestNormalizeDeviceDataFromDocument(t *testing.T) {
	raw := rawValue(t, bson.M{"temperature": 22.5, "humidity": 45.0, "power": "on"})

	data, err := normalizeDeviceData(raw)
	if err != nil {
		t.Fatalf("normalizeDeviceData failed: %v", err)
	}
	want := entities.DeviceData{Temperature: 22.5, Humidity: 45, Power: "on"}
	if data != want {
		t.Errorf("expected %+v, got %+v", want, data)
	}
}

func TestNormalizeDeviceDataFromJSONString(t *testing.T) {
	raw := rawValue(t, `{"temperature": 19, "humidity": 55, "power": "off"}`)

	data, err := normalizeDeviceData(raw)
	if err != nil {
		t.Fatalf("normalizeDeviceData failed: %v", err)
	}
	want := entities.DeviceData{Temperature: 19, Humidity: 55, Power: "off"}
	if data != want {
		t.Errorf("expected %+v, got %+v", want, data)
	}
}

func TestNormalizeDeviceDataRejectsOtherShapes(t *testing.T) {
	cases := []struct {
		name string
		v    interface{}
	}{
		{"number", 42},
		{"array", bson.A{1, 2, 3}},
		{"garbled string", "not json at all"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := normalizeDeviceData(rawValue(t, tc.v)); err == nil {
				t.Error("expected an error for unsupported blob shape")
			}
		})
	}
}

func TestNormalizeDeviceDataRejectsMissingField(t *testing.T) {
	// Zero RawValue is what a document without a data field decodes to
	if _, err := normalizeDeviceData(bson.RawValue{}); err == nil {
		t.Error("expected an error for an absent data field")
	}
}
