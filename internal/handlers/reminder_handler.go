package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/evofit/trainer-scheduler/internal/httperr"
	ucSchedule "github.com/evofit/trainer-scheduler/internal/usecase/schedule"
)

type ReminderHandler struct {
	buildUC *ucSchedule.BuildReminder
}

func NewReminderHandler(buildUC *ucSchedule.BuildReminder) *ReminderHandler {
	return &ReminderHandler{buildUC: buildUC}
}

// Get renders the notification payload for an appointment. The
// notification service polls this and owns delivery.
func (h *ReminderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Appointment id must be numeric.")
		return
	}

	payload, err := h.buildUC.Execute(c.Request.Context(), uint(id))
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, payload)
}
