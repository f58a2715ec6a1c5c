// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/fertishop-backend/internal/pkg/apperrors"
)

// respondError translates a typed domain error into a transport status
// code. This is the only place that mapping exists; domain services
// never see HTTP codes.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsAuth(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		// Internal detail stays out of the response body
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
