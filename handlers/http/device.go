package httpHandler

import (
	"net/http"

	"iot-device-api/entities"
	"iot-device-api/usecases"

	"github.com/gin-gonic/gin"
)

type DeviceHandler struct {
	useCase *usecases.DeviceUseCase
}

func NewDeviceHandler(useCase *usecases.DeviceUseCase) *DeviceHandler {
	return &DeviceHandler{
		useCase: useCase,
	}
}

// CreateDevice handles POST /api/devices
func (h *DeviceHandler) CreateDevice(c *gin.Context) {
	var req usecases.CreateDeviceRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	device, err := h.useCase.CreateDevice(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Device not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Device created successfully",
		"data":    device,
	})
}

// GetDevice handles GET /api/devices/:id
func (h *DeviceHandler) GetDevice(c *gin.Context) {
	id := c.Param("id")

	device, err := h.useCase.GetDevice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Device not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": device,
	})
}

// GetAllDevices handles GET /api/devices
func (h *DeviceHandler) GetAllDevices(c *gin.Context) {
	devices, err := h.useCase.GetAllDevices(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve devices",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  devices,
		"count": len(devices),
	})
}

// UpdateDevice handles PUT /api/devices/:id
func (h *DeviceHandler) UpdateDevice(c *gin.Context) {
	id := c.Param("id")

	var req usecases.UpdateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.useCase.UpdateDevice(c.Request.Context(), id, req); err != nil {
		respondError(c, err, "Device not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Device updated successfully",
	})
}

// UpdateDeviceStatus handles PATCH /api/devices/:id/status
func (h *DeviceHandler) UpdateDeviceStatus(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.useCase.UpdateDeviceStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err, "Device not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Device status updated successfully",
	})
}

// UpdateDeviceData handles PATCH /api/devices/:id/data
func (h *DeviceHandler) UpdateDeviceData(c *gin.Context) {
	id := c.Param("id")

	var data entities.DeviceData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.useCase.UpdateDeviceData(c.Request.Context(), id, data); err != nil {
		respondError(c, err, "Device not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Device data updated successfully",
	})
}

// DeleteDevice handles DELETE /api/devices/:id
func (h *DeviceHandler) DeleteDevice(c *gin.Context) {
	id := c.Param("id")

	if err := h.useCase.DeleteDevice(c.Request.Context(), id); err != nil {
		respondError(c, err, "Device not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Device deleted successfully",
	})
}
