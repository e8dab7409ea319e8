package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/Dan9191/kos-service/internal/utils/email"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// OverdueRepository finds and flags overdue payments
type OverdueRepository interface {
	ListOverduePayments(ctx context.Context, asOf time.Time) ([]models.OverduePayment, error)
	MarkPaymentsLate(ctx context.Context, ids []string) (int64, error)
}

// Mailer delivers payment reminders
type Mailer interface {
	SendPaymentReminder(r email.Reminder) error
}

// ReminderResult summarizes one reminder run
type ReminderResult struct {
	Overdue int
	Marked  int64
	Emailed int
	Failed  int
}

// ReminderJob marks pending payments past their due date as late and
// notifies the tenants
type ReminderJob struct {
	repo   OverdueRepository
	mailer Mailer
	log    *logrus.Logger
	now    func() time.Time
}

// NewReminderJob initializes a reminder job. A nil mailer only marks payments.
func NewReminderJob(repo OverdueRepository, mailer Mailer, log *logrus.Logger) *ReminderJob {
	return &ReminderJob{repo: repo, mailer: mailer, log: log, now: time.Now}
}

// Run performs one reminder pass
func (j *ReminderJob) Run(ctx context.Context) (ReminderResult, error) {
	var res ReminderResult

	overdue, err := j.repo.ListOverduePayments(ctx, j.now())
	if err != nil {
		return res, fmt.Errorf("failed to list overdue payments: %w", err)
	}
	res.Overdue = len(overdue)
	if len(overdue) == 0 {
		return res, nil
	}

	ids := make([]string, 0, len(overdue))
	for _, p := range overdue {
		ids = append(ids, p.PaymentID)
	}
	res.Marked, err = j.repo.MarkPaymentsLate(ctx, ids)
	if err != nil {
		return res, fmt.Errorf("failed to mark payments late: %w", err)
	}

	if j.mailer == nil {
		return res, nil
	}
	for _, p := range overdue {
		if p.TenantEmail == "" {
			continue
		}
		err := j.mailer.SendPaymentReminder(email.Reminder{
			To:            p.TenantEmail,
			TenantName:    p.TenantName,
			InvoiceNumber: p.InvoiceNumber,
			PaymentMonth:  p.PaymentMonth,
			DueDate:       p.DueDate,
			Amount:        p.Amount,
		})
		if err != nil {
			res.Failed++
			continue
		}
		res.Emailed++
	}
	return res, nil
}

// Schedule registers the job on a cron scheduler running in loc. The caller
// starts and stops the returned scheduler.
func (j *ReminderJob) Schedule(spec string, loc *time.Location) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		res, err := j.Run(context.Background())
		if err != nil {
			j.log.Errorf("Reminder run failed: %v", err)
			return
		}
		j.log.WithFields(logrus.Fields{
			"overdue": res.Overdue,
			"marked":  res.Marked,
			"emailed": res.Emailed,
			"failed":  res.Failed,
		}).Info("Reminder run finished")
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	return c, nil
}
