package handlers

import (
	"net/http"

	"iot-device-api/services"

	"github.com/gin-gonic/gin"
)

type IngestHandler struct {
	ingestor *services.Ingestor
}

func NewIngestHandler(ingestor *services.Ingestor) *IngestHandler {
	return &IngestHandler{
		ingestor: ingestor,
	}
}

// Flush POST /api/ingest/flush — drains the reading buffer immediately
func (h *IngestHandler) Flush(c *gin.Context) {
	h.ingestor.Flush(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "flushed"})
}

// Stats GET /api/ingest/stats
func (h *IngestHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"stats":  h.ingestor.Stats(),
	})
}
