package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "apigee-gateway/errors"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data          any    `json:"data"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// respondWithError derives the status and structured body from a
// classified error; anything unclassified becomes a generic 500.
func respondWithError(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	if appErr.CorrelationID == "" {
		appErr = appErr.WithCorrelationID(c.GetString(requestIDKey))
	}
	c.JSON(appErr.Status, appErr.ToResponse())
}

// apperrValidation classifies a malformed request body.
func apperrValidation(err error) *apperrors.Error {
	return apperrors.Validation("request body must be a JSON object").WithCause(err)
}

// respondOK sends a 200 response wrapping data.
func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}
