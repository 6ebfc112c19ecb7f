package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"formiverse/internal/services"
)

// respond writes the success envelope: {status, data, message}.
func respond(c *gin.Context, status int, data interface{}, message string) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, gin.H{
		"status":  status,
		"data":    data,
		"message": message,
	})
}

// respondError writes the failure envelope: {status, message, errors}.
func respondError(c *gin.Context, status int, message string, errs ...string) {
	if errs == nil {
		errs = []string{}
	}
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"errors":  errs,
	})
}

// respondServiceError maps sentinel service errors to status codes; anything
// unrecognized is logged and collapsed to a generic 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrCodeInvalid):
		respondError(c, http.StatusBadRequest, "Invalid or expired otp")
	case errors.Is(err, services.ErrCodeExpired):
		respondError(c, http.StatusBadRequest, "Code expired, please request a new one")
	case errors.Is(err, services.ErrTooManyAttempts):
		respondError(c, http.StatusBadRequest, "Too many attempts, please request a new code")
	case errors.Is(err, services.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "Unauthorized request")
	case errors.Is(err, services.ErrForbidden):
		respondError(c, http.StatusForbidden, "You are not authorized to perform this action")
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrConflict):
		respondError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("[http] %s %s: internal error: %v", c.Request.Method, c.Request.URL.Path, err)
		respondError(c, http.StatusInternalServerError, "Something went wrong")
	}
}
