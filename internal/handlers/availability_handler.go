package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/evofit/trainer-scheduler/internal/httperr"
	"github.com/evofit/trainer-scheduler/internal/httpresp"
	"github.com/evofit/trainer-scheduler/internal/middleware"
	ucSchedule "github.com/evofit/trainer-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	upsertUC *ucSchedule.UpsertAvailability
	listUC   *ucSchedule.ListAvailability
	deleteUC *ucSchedule.DeleteAvailability
}

func NewAvailabilityHandler(
	upsertUC *ucSchedule.UpsertAvailability,
	listUC *ucSchedule.ListAvailability,
	deleteUC *ucSchedule.DeleteAvailability,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		upsertUC: upsertUC,
		listUC:   listUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AvailabilityUpdateRequest struct {
	Rules []ucSchedule.AvailabilityRuleInput `json:"rules" binding:"required,min=1"`
}

// ======================================================
// ROUTES
// ======================================================

func (h *AvailabilityHandler) Get(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	rules, err := h.listUC.Execute(c.Request.Context(), trainerID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_availability", "Could not load availability.")
		return
	}

	httpresp.List(c, rules)
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	var req AvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rules, err := h.upsertUC.Execute(c.Request.Context(), trainerID, req.Rules)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.List(c, rules)
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	trainerID := c.MustGet(middleware.ContextUserID).(uint)

	ruleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_rule_id", "Rule id must be numeric.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), trainerID, uint(ruleID)); err != nil {
		writeScheduleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
