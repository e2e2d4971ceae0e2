package entities

const (
	DeviceTypeSensor     = "sensor"
	DeviceTypeController = "controller"

	DeviceStatusOnline  = "online"
	DeviceStatusOffline = "offline"

	PowerOn  = "on"
	PowerOff = "off"
)

// Defaults applied when a create request omits the optional fields.
const (
	DefaultTemperature = 20.0
	DefaultHumidity    = 40.0
)

type Device struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`        // sensor | controller
	Status     string     `json:"status"`      // online | offline
	LastUpdate int64      `json:"last_update"` // unix milliseconds
	Data       DeviceData `json:"data"`
}

// DeviceData is the current telemetry snapshot embedded on a device,
// not a historical record.
type DeviceData struct {
	Temperature float64 `json:"temperature" bson:"temperature"`
	Humidity    float64 `json:"humidity" bson:"humidity"`
	Power       string  `json:"power" bson:"power"` // on | off
}

func DefaultDeviceData() DeviceData {
	return DeviceData{
		Temperature: DefaultTemperature,
		Humidity:    DefaultHumidity,
		Power:       PowerOff,
	}
}

func ValidDeviceType(t string) bool {
	return t == DeviceTypeSensor || t == DeviceTypeController
}

func ValidDeviceStatus(s string) bool {
	return s == DeviceStatusOnline || s == DeviceStatusOffline
}

func ValidPower(p string) bool {
	return p == PowerOn || p == PowerOff
}
