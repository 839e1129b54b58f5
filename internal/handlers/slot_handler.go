package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/evofit/trainer-scheduler/internal/domain/schedule"
	"github.com/evofit/trainer-scheduler/internal/httperr"
	"github.com/evofit/trainer-scheduler/internal/models"
	ucSchedule "github.com/evofit/trainer-scheduler/internal/usecase/schedule"
)

type SlotHandler struct {
	db      *gorm.DB
	slotsUC *ucSchedule.GenerateSlots
}

func NewSlotHandler(db *gorm.DB, slotsUC *ucSchedule.GenerateSlots) *SlotHandler {
	return &SlotHandler{
		db:      db,
		slotsUC: slotsUC,
	}
}

// Get returns every candidate slot for a trainer on a date, flagged
// available or taken. An empty day carries a reason instead of an error.
func (h *SlotHandler) Get(c *gin.Context) {
	trainerIDStr := c.Query("trainer_id")
	dateStr := c.Query("date")
	durationStr := c.DefaultQuery("duration", "60")

	if trainerIDStr == "" || dateStr == "" {
		httperr.BadRequest(c, "missing_params", "trainer_id and date are required.")
		return
	}

	trainerID, err := strconv.ParseUint(trainerIDStr, 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_trainer_id", "trainer_id must be numeric.")
		return
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil || duration <= 0 {
		httperr.BadRequest(c, "invalid_duration", "duration must be a positive number of minutes.")
		return
	}

	var trainer models.User
	if err := h.db.First(&trainer, uint(trainerID)).Error; err != nil {
		httperr.NotFound(c, "trainer_not_found", "Trainer not found.")
		return
	}

	date, err := parseDateForTrainer(&trainer, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	slots, reason, err := h.slotsUC.Execute(c.Request.Context(), domain.SlotsInput{
		TrainerID:       uint(trainerID),
		Date:            date,
		DurationMinutes: duration,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	resp := gin.H{
		"data":  slots,
		"total": len(slots),
	}
	if reason != "" {
		resp["reason"] = reason
	}

	c.JSON(http.StatusOK, resp)
}
