package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goodlandcafe/pos_backend/config"
	"github.com/goodlandcafe/pos_backend/models"
	"github.com/goodlandcafe/pos_backend/models/reports"
)

func statusFor(err error) int {
	switch {
	case models.IsValidationError(err), errors.Is(err, reports.ErrInvalidAlpha):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAlreadyCompleted), errors.Is(err, models.ErrCartCommitted),
		errors.Is(err, models.ErrItemBusy):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes the error body. Server faults are logged and their
// details are not sent to the client.
func respondError(c *gin.Context, funcName string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		config.LogError(config.GetLogger(), "api", funcName, c.Request.URL.Path, nil, err)
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	body := gin.H{"error": err.Error()}
	var ve *models.ValidationError
	if errors.As(err, &ve) && ve.Field != "" {
		body["field"] = ve.Field
	}
	c.JSON(status, body)
}

func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		respondError(c, "bindJSON", models.NewValidationError("body", err))
		return false
	}
	return true
}
