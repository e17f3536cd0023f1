package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yourusername/bookstore-api/internal/pkg/errors"
)

// handleError maps service errors to HTTP responses. Anything outside the
// sentinel taxonomy is logged and hidden behind a generic 500.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNoActiveQuiz):
		c.JSON(http.StatusNotFound, gin.H{"error": "No active quiz found"})
	case errors.Is(err, apperrors.ErrAlreadyCompleted):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrQuizInactive):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error in handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUser pulls the authenticated identity set by the auth middleware.
func currentUser(c *gin.Context) (uint, string, bool) {
	userIDRaw, exists := c.Get("user_id")
	if !exists {
		return 0, "", false
	}
	userID, ok := userIDRaw.(uint)
	if !ok {
		return 0, "", false
	}
	email, _ := c.Get("email")
	emailStr, _ := email.(string)
	return userID, emailStr, true
}
