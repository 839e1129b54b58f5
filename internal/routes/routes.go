package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/evofit/trainer-scheduler/internal/audit"
	"github.com/evofit/trainer-scheduler/internal/config"
	"github.com/evofit/trainer-scheduler/internal/handlers"
	infraRepo "github.com/evofit/trainer-scheduler/internal/infra/repository"
	"github.com/evofit/trainer-scheduler/internal/middleware"
	"github.com/evofit/trainer-scheduler/internal/models"
	"github.com/evofit/trainer-scheduler/internal/ratelimit"
	ucSchedule "github.com/evofit/trainer-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	bookingLimiter := ratelimit.New(
		rdb,
		cfg.BookingRateLimit,
		time.Minute,
		"booking",
	)

	// ======================================================
	// USE CASES
	// ======================================================
	upsertAvailabilityUC := ucSchedule.NewUpsertAvailability(scheduleRepo, auditDispatcher)
	listAvailabilityUC := ucSchedule.NewListAvailability(scheduleRepo)
	deleteAvailabilityUC := ucSchedule.NewDeleteAvailability(scheduleRepo, auditDispatcher)

	generateSlotsUC := ucSchedule.NewGenerateSlots(scheduleRepo)

	createAppointmentUC := ucSchedule.NewCreateAppointment(scheduleRepo, auditDispatcher)
	rescheduleAppointmentUC := ucSchedule.NewRescheduleAppointment(scheduleRepo, auditDispatcher)
	cancelAppointmentUC := ucSchedule.NewCancelAppointment(scheduleRepo, auditDispatcher)
	completeAppointmentUC := ucSchedule.NewCompleteAppointment(scheduleRepo, auditDispatcher)
	confirmAppointmentUC := ucSchedule.NewConfirmAppointment(scheduleRepo, auditDispatcher)
	listAppointmentsUC := ucSchedule.NewListAppointments(scheduleRepo)

	buildReminderUC := ucSchedule.NewBuildReminder(scheduleRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	availabilityHandler := handlers.NewAvailabilityHandler(
		upsertAvailabilityUC,
		listAvailabilityUC,
		deleteAvailabilityUC,
	)

	slotHandler := handlers.NewSlotHandler(db, generateSlotsUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		rescheduleAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		confirmAppointmentUC,
		listAppointmentsUC,
	)

	reminderHandler := handlers.NewReminderHandler(buildReminderUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// SCHEDULE (any authenticated role)
		// ------------------------------
		schedule := api.Group("/schedule")
		schedule.Use(middleware.AuthMiddleware(cfg))
		{
			schedule.GET("/slots", slotHandler.Get)
			schedule.GET("/appointments/:id/reminder", reminderHandler.Get)
		}

		// ------------------------------
		// TRAINER CALENDAR
		// ------------------------------
		me := api.Group("/me")
		me.Use(
			middleware.AuthMiddleware(cfg),
			middleware.RequireRole(models.RoleTrainer, models.RoleAdmin),
		)
		{
			me.GET("", meHandler.GetMe)

			me.GET("/availability", availabilityHandler.Get)
			me.PUT("/availability", availabilityHandler.Update)
			me.DELETE("/availability/:id", availabilityHandler.Delete)

			me.GET("/appointments", appointmentHandler.List)
			me.POST("/appointments", bookingLimiter.Middleware(), appointmentHandler.Create)
			me.PATCH("/appointments/:id/reschedule", bookingLimiter.Middleware(), appointmentHandler.Reschedule)
			me.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			me.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			me.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)

			me.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
