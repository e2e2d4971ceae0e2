package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"iot-device-api/entities"
	"iot-device-api/services"
	"iot-device-api/usecases"
	"iot-device-api/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WebSocket message envelopes
type incomingMessage struct {
	Type string `json:"type"` // sensor_data | heartbeat
}

type sensorDataPayload struct {
	Type        string  `json:"type"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Power       string  `json:"power"`
}

type powerRequest struct {
	Power string `json:"power" binding:"required"`
}

// WSHandler groups dependencies for websocket flows
type WSHandler struct {
	mgr      *ws.Manager
	deviceUC *usecases.DeviceUseCase
	ingestor *services.Ingestor
}

func NewWSHandler(mgr *ws.Manager, deviceUC *usecases.DeviceUseCase, ingestor *services.Ingestor) *WSHandler {
	return &WSHandler{mgr: mgr, deviceUC: deviceUC, ingestor: ingestor}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleDeviceWS upgrades to websocket and reads readings from a device.
// GET /ws?id=<device_id>
func (h *WSHandler) HandleDeviceWS(c *gin.Context) {
	deviceID := c.Query("id")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing device id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	h.mgr.RegisterDevice(deviceID, conn)
	log.Printf("device connected: %s", deviceID)

	defer func() {
		h.mgr.UnregisterDevice(deviceID)
		log.Printf("device disconnected: %s", deviceID)
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("device %s closed connection", deviceID)
			} else {
				log.Printf("read error from %s: %v", deviceID, err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		// Peek type
		var base incomingMessage
		if err := json.Unmarshal(message, &base); err != nil {
			log.Printf("invalid json from %s: %v", deviceID, err)
			continue
		}

		switch base.Type {
		case "sensor_data":
			var payload sensorDataPayload
			if err := json.Unmarshal(message, &payload); err != nil {
				log.Printf("invalid sensor_data payload from %s: %v", deviceID, err)
				continue
			}
			if !entities.ValidPower(payload.Power) {
				log.Printf("invalid power value from %s: %q", deviceID, payload.Power)
				continue
			}
			// Stamp at arrival; clients never supply timestamps
			record := entities.DeviceDataHistory{
				ID:          uuid.New().String(),
				DeviceID:    deviceID,
				Timestamp:   time.Now().UnixMilli(),
				Temperature: payload.Temperature,
				Humidity:    payload.Humidity,
				Power:       payload.Power,
			}
			h.ingestor.Add(record)
			if b, err := json.Marshal(record); err == nil {
				h.mgr.Broadcast(b)
			}
		case "heartbeat":
			// No-op, could update a last-seen cache
		default:
			log.Printf("unknown message type from %s: %s", deviceID, base.Type)
		}
	}
}

// HandleFeedWS subscribes a dashboard client to the live reading feed.
// GET /ws/feed
func (h *WSHandler) HandleFeedWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	h.mgr.Subscribe(conn)
	defer h.mgr.Unsubscribe(conn)

	// Drain control frames until the client goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// SendPowerCommand POST /api/devices/:id/power
// {"power": "on"} — pushes the change to a connected device and persists it.
func (h *WSHandler) SendPowerCommand(c *gin.Context) {
	deviceID := c.Param("id")

	var req powerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}
	if !entities.ValidPower(req.Power) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "power must be on or off"})
		return
	}

	device, err := h.deviceUC.GetDevice(c.Request.Context(), deviceID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
		return
	}

	data := device.Data
	data.Power = req.Power
	if err := h.deviceUC.UpdateDeviceData(c.Request.Context(), deviceID, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update device data", "details": err.Error()})
		return
	}

	// Best effort push; the device picks up the state on reconnect otherwise
	cmd := map[string]interface{}{
		"type":      "power",
		"power":     req.Power,
		"timestamp": time.Now().UnixMilli(),
	}
	b, _ := json.Marshal(cmd)
	delivered := h.mgr.SendToDevice(deviceID, b) == nil

	c.JSON(http.StatusOK, gin.H{"status": "applied", "delivered": delivered})
}

// GetConnectedDevices GET /api/devices/connected
func (h *WSHandler) GetConnectedDevices(c *gin.Context) {
	devices := h.mgr.ListDevices()
	c.JSON(http.StatusOK, gin.H{"devices": devices, "count": len(devices)})
}
