package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/evofit/trainer-scheduler/internal/httperr"
	"github.com/evofit/trainer-scheduler/internal/httpresp"
	"github.com/evofit/trainer-scheduler/internal/middleware"
	"github.com/evofit/trainer-scheduler/internal/models"
	ucSchedule "github.com/evofit/trainer-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createUC     *ucSchedule.CreateAppointment
	rescheduleUC *ucSchedule.RescheduleAppointment
	cancelUC     *ucSchedule.CancelAppointment
	completeUC   *ucSchedule.CompleteAppointment
	confirmUC    *ucSchedule.ConfirmAppointment
	listUC       *ucSchedule.ListAppointments
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucSchedule.CreateAppointment,
	rescheduleUC *ucSchedule.RescheduleAppointment,
	cancelUC *ucSchedule.CancelAppointment,
	completeUC *ucSchedule.CompleteAppointment,
	confirmUC *ucSchedule.ConfirmAppointment,
	listUC *ucSchedule.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		createUC:     createUC,
		rescheduleUC: rescheduleUC,
		cancelUC:     cancelUC,
		completeUC:   completeUC,
		confirmUC:    confirmUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID        uint   `json:"client_id" binding:"required"`
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	AppointmentType string `json:"appointment_type"`
	Start           string `json:"start_time" binding:"required"` // YYYY-MM-DDTHH:MM
	End             string `json:"end_time" binding:"required"`
	Location        string `json:"location"`
	IsOnline        bool   `json:"is_online"`
	MeetingLink     string `json:"meeting_link"`
	Notes           string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	Start string `json:"start_time" binding:"required"`
	End   string `json:"end_time" binding:"required"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	var trainer models.User
	if err := h.db.First(&trainer, trainerID).Error; err != nil {
		httperr.Internal(c, "trainer_not_found", "Trainer not found.")
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	start, err := parseDateTimeForTrainer(&trainer, req.Start)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "start_time must be YYYY-MM-DDTHH:MM.")
		return
	}
	end, err := parseDateTimeForTrainer(&trainer, req.End)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "end_time must be YYYY-MM-DDTHH:MM.")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucSchedule.CreateAppointmentInput{
		TrainerID:       trainerID,
		ClientID:        req.ClientID,
		Title:           req.Title,
		Description:     req.Description,
		AppointmentType: req.AppointmentType,
		Start:           start,
		End:             end,
		Location:        req.Location,
		IsOnline:        req.IsOnline,
		MeetingLink:     req.MeetingLink,
		Notes:           req.Notes,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	var trainer models.User
	if err := h.db.First(&trainer, trainerID).Error; err != nil {
		httperr.Internal(c, "trainer_not_found", "Trainer not found.")
		return
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := parseDateForTrainer(&trainer, dateStr)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
			return
		}

		out, err := h.listUC.ByDate(c.Request.Context(), trainerID, date)
		if err != nil {
			httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
			return
		}

		httpresp.List(c, out)
		return
	}

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		httperr.BadRequest(c, "missing_date", "Provide date= or from= and to=.")
		return
	}

	from, err := parseDateForTrainer(&trainer, fromStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD.")
		return
	}
	to, err := parseDateForTrainer(&trainer, toStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD.")
		return
	}

	out, err := h.listUC.ByRange(
		c.Request.Context(), trainerID, from, to, c.Query("status"),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var trainer models.User
	if err := h.db.First(&trainer, trainerID).Error; err != nil {
		httperr.Internal(c, "trainer_not_found", "Trainer not found.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	newStart, err := parseDateTimeForTrainer(&trainer, req.Start)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "start_time must be YYYY-MM-DDTHH:MM.")
		return
	}
	newEnd, err := parseDateTimeForTrainer(&trainer, req.End)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "end_time must be YYYY-MM-DDTHH:MM.")
		return
	}

	if !h.ownsAppointment(c, id, trainerID) {
		return
	}

	updated, err := h.rescheduleUC.Execute(c.Request.Context(), id, newStart, newEnd)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ======================================================
// CANCEL / COMPLETE / CONFIRM
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req) // body optional

	if !h.ownsAppointment(c, id, trainerID) {
		return
	}

	ap, late, err := h.cancelUC.Execute(c.Request.Context(), id, req.Reason)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	resp := gin.H{"data": ap}
	if late {
		resp["late_cancellation"] = true
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	if !h.ownsAppointment(c, id, trainerID) {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	if !h.ownsAppointment(c, id, trainerID) {
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), id)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_appointment_id", "Appointment id must be numeric.")
		return 0, false
	}
	return uint(id), true
}

// ownsAppointment enforces that the appointment belongs to the calling
// trainer (admins pass unconditionally).
func (h *AppointmentHandler) ownsAppointment(
	c *gin.Context,
	appointmentID uint,
	trainerID uint,
) bool {

	role, _ := c.Get(middleware.ContextUserRole)
	if roleStr, _ := role.(string); roleStr == models.RoleAdmin {
		return true
	}

	var ap models.Appointment
	if err := h.db.
		Select("id", "trainer_id").
		First(&ap, appointmentID).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return false
	}

	if ap.TrainerID != trainerID {
		httperr.Forbidden(c, "not_owner", "Appointment belongs to another trainer.")
		return false
	}

	return true
}
