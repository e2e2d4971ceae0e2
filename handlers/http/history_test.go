package httpHandler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"testing"
	"time"

	"iot-device-api/entities"
	"iot-device-api/repositories"
	"iot-device-api/usecases"

	"github.com/gin-gonic/gin"
)

// memHistoryRepo is an in-memory DeviceDataHistoryRepository for handler tests.
type memHistoryRepo struct {
	records []entities.DeviceDataHistory
}

func (m *memHistoryRepo) Insert(ctx context.Context, record *entities.DeviceDataHistory) error {
	m.records = append(m.records, *record)
	return nil
}

func (m *memHistoryRepo) InsertMany(ctx context.Context, records []entities.DeviceDataHistory) error {
	m.records = append(m.records, records...)
	return nil
}

func (m *memHistoryRepo) GetByDeviceID(ctx context.Context, filter entities.HistoryFilter) ([]entities.DeviceDataHistory, error) {
	matched := make([]entities.DeviceDataHistory, 0)
	for _, record := range m.records {
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

func (m *memHistoryRepo) GetLatest(ctx context.Context, deviceID string) (*entities.DeviceDataHistory, error) {
	records, _ := m.GetByDeviceID(ctx, entities.HistoryFilter{DeviceID: deviceID, Limit: 1})
	if len(records) == 0 {
		return nil, repositories.ErrNotFound
	}
	return &records[0], nil
}

func newHistoryTestRouter(repo repositories.DeviceDataHistoryRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHistoryHandler(usecases.NewHistoryUseCase(repo))

	router := gin.New()
	devices := router.Group("/api/devices")
	{
		devices.POST("/:id/history", handler.AppendReading)
		devices.GET("/:id/history", handler.QueryReadings)
		devices.GET("/:id/history/latest", handler.LatestReading)
	}
	return router
}

func TestAppendReadingEndpoint(t *testing.T) {
	router := newHistoryTestRouter(&memHistoryRepo{})

	before := time.Now().UnixMilli()
	w := doRequest(router, http.MethodPost, "/api/devices/device-x/history",
		`{"temperature":22.5,"humidity":45,"power":"on"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data entities.DeviceDataHistory `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.DeviceID != "device-x" {
		t.Errorf("expected device-x, got %q", resp.Data.DeviceID)
	}
	if resp.Data.Timestamp < before {
		t.Errorf("expected server-assigned timestamp, got %d", resp.Data.Timestamp)
	}
	if resp.Data.Temperature != 22.5 || resp.Data.Humidity != 45 || resp.Data.Power != "on" {
		t.Errorf("reading fields mismatch: %+v", resp.Data)
	}
}

func TestAppendReadingEndpointRequiresAllFields(t *testing.T) {
	router := newHistoryTestRouter(&memHistoryRepo{})

	w := doRequest(router, http.MethodPost, "/api/devices/device-x/history", `{"temperature":22.5}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestQueryReadingsEndpoint(t *testing.T) {
	repo := &memHistoryRepo{}
	for i := int64(1); i <= 5; i++ {
		repo.records = append(repo.records, entities.DeviceDataHistory{
			ID:        fmt.Sprintf("r%d", i),
			DeviceID:  "device-x",
			Timestamp: i * 1000,
		})
	}
	router := newHistoryTestRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/devices/device-x/history?start=2000&end=4000&limit=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data  []entities.DeviceDataHistory `json:"data"`
		Count int                          `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 records, got %d", resp.Count)
	}
	if resp.Data[0].Timestamp != 4000 || resp.Data[1].Timestamp != 3000 {
		t.Errorf("expected newest first within bounds, got %d, %d", resp.Data[0].Timestamp, resp.Data[1].Timestamp)
	}
}

func TestQueryReadingsEndpointRejectsBadBounds(t *testing.T) {
	router := newHistoryTestRouter(&memHistoryRepo{})

	w := doRequest(router, http.MethodGet, "/api/devices/device-x/history?start=yesterday", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestQueryReadingsEndpointEmptyIsOK(t *testing.T) {
	router := newHistoryTestRouter(&memHistoryRepo{})

	w := doRequest(router, http.MethodGet, "/api/devices/device-x/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty history, got %d", w.Code)
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("expected empty result, got %d", resp.Count)
	}
}

func TestLatestReadingEndpoint(t *testing.T) {
	repo := &memHistoryRepo{
		records: []entities.DeviceDataHistory{
			{ID: "r1", DeviceID: "device-x", Timestamp: 1000},
			{ID: "r2", DeviceID: "device-x", Timestamp: 2000},
		},
	}
	router := newHistoryTestRouter(repo)

	w := doRequest(router, http.MethodGet, "/api/devices/device-x/history/latest", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data entities.DeviceDataHistory `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Data.ID != "r2" {
		t.Errorf("expected newest record r2, got %q", resp.Data.ID)
	}

	w = doRequest(router, http.MethodGet, "/api/devices/device-y/history/latest", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for device with no readings, got %d", w.Code)
	}
}
