package entities

// DeviceDataHistory is an immutable telemetry record. Records are written
// once when a reading arrives and never updated or deleted by the services.
type DeviceDataHistory struct {
	ID          string  `json:"id"`
	DeviceID    string  `json:"device_id"`
	Timestamp   int64   `json:"timestamp"` // unix milliseconds, server-assigned
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Power       string  `json:"power"` // on | off
}

// HistoryFilter bounds a history query. Start and End are inclusive unix
// millisecond bounds; zero means unbounded on that side. Limit <= 0 falls
// back to DefaultHistoryLimit.
type HistoryFilter struct {
	DeviceID string
	Start    int64
	End      int64
	Limit    int64
}

const DefaultHistoryLimit = 100
