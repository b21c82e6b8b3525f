package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"techfix-shop/internal/domain"
	custsvc "techfix-shop/internal/service/customer"
)

// writeError maps domain errors onto HTTP statuses. Validation failures are
// 422 so the frontend can attach the message to the named field; 400 is
// reserved for requests that could not be decoded at all.
func writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, custsvc.ErrInvalidCredentials), errors.Is(err, custsvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
