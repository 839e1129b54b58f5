package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Conflict reports a scheduling collision, including the appointment the
// caller collided with so alternatives can be offered.
func Conflict(c *gin.Context, ce ConflictError) {
	c.JSON(http.StatusConflict, gin.H{
		"error_code": "time_conflict",
		"message":    "Time slot conflicts with an existing appointment.",
		"conflict": gin.H{
			"appointment_id": ce.AppointmentID,
			"start_time":     ce.Start,
			"end_time":       ce.End,
		},
	})
}
