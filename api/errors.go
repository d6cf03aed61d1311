package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gytech/flightdesk/internal/domain"
)

// respondErr translates the domain error taxonomy into HTTP statuses. Every
// body carries the human-readable reason so the UI can surface it directly.
func respondErr(c *gin.Context, err error) {
	var verr *domain.ValidationError
	var conflict *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrNotConnected):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoEarlierPost):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrBadCredentials),
		errors.Is(err, domain.ErrUnknownUser),
		errors.Is(err, domain.ErrPasswordMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
