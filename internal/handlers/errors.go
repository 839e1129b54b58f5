package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/evofit/trainer-scheduler/internal/httperr"
)

// writeScheduleError maps usecase errors onto HTTP responses. Business
// codes are stable and part of the API contract.
func writeScheduleError(c *gin.Context, err error) {
	if ce, ok := httperr.AsConflict(err); ok {
		httperr.Conflict(c, ce)
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		switch be.Code {
		case "appointment_not_found":
			httperr.NotFound(c, be.Code, "Appointment not found.")
		case "availability_rule_not_found":
			httperr.NotFound(c, be.Code, "Availability rule not found.")
		case "invalid_transition":
			httperr.BadRequest(c, be.Code, "Illegal status change: "+be.Detail)
		case "invalid_time_range":
			httperr.BadRequest(c, be.Code, "Invalid time range: "+be.Detail)
		default:
			httperr.BadRequest(c, be.Code, "Invalid request.")
		}
		return
	}

	httperr.Internal(c, "internal_error", "Something went wrong.")
}
