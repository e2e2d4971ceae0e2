package httpHandler

import (
	"errors"
	"net/http"

	"iot-device-api/repositories"
	"iot-device-api/usecases"

	"github.com/gin-gonic/gin"
)

// respondError maps service outcomes to status codes: not-found to 404,
// rejected input to 400, anything else (store failures) to 500.
func respondError(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, repositories.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	var ve *usecases.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error", "details": err.Error()})
}
