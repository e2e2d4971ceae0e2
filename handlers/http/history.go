package httpHandler

import (
	"net/http"
	"strconv"

	"iot-device-api/entities"
	"iot-device-api/usecases"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	useCase *usecases.HistoryUseCase
}

func NewHistoryHandler(useCase *usecases.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{
		useCase: useCase,
	}
}

// AppendReading handles POST /api/devices/:id/history
func (h *HistoryHandler) AppendReading(c *gin.Context) {
	deviceID := c.Param("id")

	var req usecases.AppendReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	record, err := h.useCase.AppendReading(c.Request.Context(), deviceID, req)
	if err != nil {
		respondError(c, err, "Device not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reading recorded successfully",
		"data":    record,
	})
}

// QueryReadings handles GET /api/devices/:id/history?start=&end=&limit=
// with start/end as inclusive unix millisecond bounds.
func (h *HistoryHandler) QueryReadings(c *gin.Context) {
	filter := entities.HistoryFilter{DeviceID: c.Param("id")}

	var err error
	if v := c.Query("start"); v != "" {
		if filter.Start, err = strconv.ParseInt(v, 10, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be unix milliseconds"})
			return
		}
	}
	if v := c.Query("end"); v != "" {
		if filter.End, err = strconv.ParseInt(v, 10, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end must be unix milliseconds"})
			return
		}
	}
	if v := c.Query("limit"); v != "" {
		if filter.Limit, err = strconv.ParseInt(v, 10, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
	}

	records, err := h.useCase.QueryReadings(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Device not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  records,
		"count": len(records),
	})
}

// LatestReading handles GET /api/devices/:id/history/latest
func (h *HistoryHandler) LatestReading(c *gin.Context) {
	deviceID := c.Param("id")

	record, err := h.useCase.LatestReading(c.Request.Context(), deviceID)
	if err != nil {
		respondError(c, err, "No readings for device")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": record,
	})
}
