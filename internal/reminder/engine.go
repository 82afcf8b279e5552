package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vaxcare/vaxcare-backend/internal/domain"
	"github.com/vaxcare/vaxcare-backend/internal/email"
	"github.com/vaxcare/vaxcare-backend/internal/metrics"
	"github.com/vaxcare/vaxcare-backend/internal/repository"
)

// batchLimit caps how many due vaccinations one sweep processes.
const batchLimit = 500

// Engine periodically finds children whose age has passed a scheduled
// vaccine's due age with no administered record, stores a reminder
// notification, and emails the account owner.
type Engine struct {
	reminders     repository.ReminderRepository
	notifications repository.NotificationRepository
	sender        email.Sender
	logger        *slog.Logger
	schedule      cron.Schedule
}

func NewEngine(
	reminders repository.ReminderRepository,
	notifications repository.NotificationRepository,
	sender email.Sender,
	logger *slog.Logger,
	cronExpr string,
) (*Engine, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse reminder cron %q: %w", cronExpr, err)
	}
	return &Engine{
		reminders:     reminders,
		notifications: notifications,
		sender:        sender,
		logger:        logger.With("component", "reminder"),
		schedule:      schedule,
	}, nil
}

func (e *Engine) Start(ctx context.Context) {
	e.logger.Info("reminder engine started", "next_run", e.schedule.Next(time.Now()))

	for {
		next := e.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			e.logger.Info("reminder engine shut down")
			return
		case <-timer.C:
			e.Sweep(ctx)
		}
	}
}

// Sweep runs one reminder pass. Exported so cmd/reminder can offer a
// run-once mode for cron-style deployments.
func (e *Engine) Sweep(ctx context.Context) {
	start := time.Now()
	defer func() {
		metrics.ReminderCycleDuration.Observe(time.Since(start).Seconds())
	}()

	due, err := e.reminders.ListDue(ctx, batchLimit)
	if err != nil {
		e.logger.Error("list due reminders", "error", err)
		return
	}
	metrics.RemindersScannedTotal.Add(float64(len(due)))

	if len(due) == 0 {
		e.logger.Info("reminder sweep complete", "due", 0)
		return
	}

	created := 0
	for _, d := range due {
		if err := e.remind(ctx, d); err != nil {
			metrics.RemindersFailedTotal.Inc()
			e.logger.Error("send reminder",
				"child_id", d.ChildID,
				"vaccine_id", d.VaccineID,
				"error", err,
			)
			continue
		}
		metrics.RemindersCreatedTotal.Inc()
		created++
	}

	e.logger.Info("reminder sweep complete",
		"due", len(due),
		"created", created,
		"duration", time.Since(start),
	)
}

func (e *Engine) remind(ctx context.Context, d *repository.DueReminder) error {
	// The title encodes the child/vaccine pair; ListDue excludes pairs that
	// already have a notification with this exact title, so a failed email
	// after a stored notification is not retried with a duplicate row.
	_, err := e.notifications.Create(ctx, &domain.Notification{
		UserID: d.UserID,
		Title:  d.ChildName + ": " + d.VaccineName + " due",
		Message: fmt.Sprintf(
			"%s is due for the %s vaccine (recommended at %s). Please schedule a visit with your healthcare provider.",
			d.ChildName, d.VaccineName, d.RecommendedAge,
		),
		Type: domain.NotificationTypeVaccineReminder,
	})
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	subject := fmt.Sprintf("Vaccination reminder: %s for %s", d.VaccineName, d.ChildName)
	body := fmt.Sprintf(
		"<p>Hi,</p><p><strong>%s</strong> is due for the <strong>%s</strong> vaccine, recommended at %s.</p><p>Please schedule a visit with your healthcare provider.</p>",
		d.ChildName, d.VaccineName, d.RecommendedAge,
	)
	if err := e.sender.Send(ctx, d.UserEmail, subject, body); err != nil {
		return fmt.Errorf("email reminder: %w", err)
	}
	return nil
}
