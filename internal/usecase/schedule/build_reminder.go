package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/evofit/trainer-scheduler/internal/domain/schedule"
	"github.com/evofit/trainer-scheduler/internal/httperr"
	"github.com/evofit/trainer-scheduler/internal/timezone"
)

// ReminderLeadTime is how long before the session start the reminder is
// scheduled to go out.
const ReminderLeadTime = 24 * time.Hour

// ReminderPayload is everything the notification collaborator needs to
// deliver an appointment reminder. Delivery itself happens elsewhere.
type ReminderPayload struct {
	AppointmentID  uint      `json:"appointment_id"`
	RecipientName  string    `json:"recipient_name"`
	RecipientEmail string    `json:"recipient_email"`
	TrainerEmail   string    `json:"trainer_email"`
	ReminderTime   time.Time `json:"reminder_time"`
	Subject        string    `json:"subject"`
	Body           string    `json:"body"`
}

type BuildReminder struct {
	repo domain.Repository
}

func NewBuildReminder(repo domain.Repository) *BuildReminder {
	return &BuildReminder{repo: repo}
}

func (uc *BuildReminder) Execute(
	ctx context.Context,
	appointmentID uint,
) (*ReminderPayload, error) {

	ap, err := uc.repo.GetAppointmentWithContacts(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	loc := timezone.Location(ap.Trainer.Timezone)
	when := ap.StartTime.In(loc).Format("Monday, Jan 2 2006 at 15:04")

	where := ap.Location
	if ap.IsOnline {
		where = ap.MeetingLink
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nThis is a reminder of your upcoming session %q with %s on %s.",
		ap.Client.Name, ap.Title, ap.Trainer.Name, when,
	)
	if where != "" {
		body += fmt.Sprintf("\nWhere: %s", where)
	}

	return &ReminderPayload{
		AppointmentID:  ap.ID,
		RecipientName:  ap.Client.Name,
		RecipientEmail: ap.Client.Email,
		TrainerEmail:   ap.Trainer.Email,
		ReminderTime:   ap.StartTime.Add(-ReminderLeadTime),
		Subject:        "Reminder: " + ap.Title,
		Body:           body,
	}, nil
}
