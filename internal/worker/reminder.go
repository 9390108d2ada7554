package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ipca-wpd/backend/internal/emaillogs"
	"github.com/ipca-wpd/backend/internal/models"
	"github.com/ipca-wpd/backend/internal/registrants"
	"github.com/ipca-wpd/backend/pkg/mailer"
	"github.com/ipca-wpd/backend/pkg/queue"
)

// ReminderProcessor delivers deadline-reminder emails queued by the admin API.
type ReminderProcessor struct {
	regRepo  *registrants.Repository
	mail     *mailer.Mailer
	emailLog *emaillogs.Repository
	queue    *queue.Queue
	logger   *zap.Logger
}

// NewReminderProcessor creates a reminder email processor.
func NewReminderProcessor(regRepo *registrants.Repository, mail *mailer.Mailer, emailLog *emaillogs.Repository, q *queue.Queue, logger *zap.Logger) *ReminderProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderProcessor{regRepo: regRepo, mail: mail, emailLog: emailLog, queue: q, logger: logger}
}

// Process executes one reminder email job.
func (p *ReminderProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeReminder {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.ReminderPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	// Re-check: the registrant may have uploaded since the job was queued.
	reg, err := p.regRepo.GetByID(ctx, payload.RegistrantID)
	if err != nil {
		return fmt.Errorf("registrant lookup: %w", err)
	}
	if reg == nil {
		p.logger.Info("registrant gone, dropping reminder", zap.String("registrant_id", payload.RegistrantID.String()))
		return nil
	}
	if reg.HasVideo() {
		p.logger.Info("video already submitted, dropping reminder", zap.String("email", reg.Email))
		return nil
	}

	prefix := payload.Annotation
	if prefix != "" {
		prefix += " "
	}
	subject := "Reminder: Submit Your World Pest Day Video"
	body := fmt.Sprintf(`
		<h3>Dear %s%s,</h3>
		<p>We hope you're doing well!</p>
		<p>This is a friendly reminder that you have not yet submitted your World Pest Day video.</p>
		<p>Record and share your work in promoting public health through pest control before the submission deadline.</p>
		<p>Warm regards,<br><strong>IPCA - World Pest Day Team</strong></p>`,
		prefix, payload.Name)

	sendErr := p.mail.Send(payload.RecipientEmail, subject, body)
	p.emailLog.Record(ctx, &payload.RegistrantID, models.EmailTypeReminder, payload.RecipientEmail, subject, sendErr)
	if sendErr != nil {
		return fmt.Errorf("send reminder: %w", sendErr)
	}

	if err := p.regRepo.MarkReminderSent(ctx, reg.ID, time.Now()); err != nil {
		p.logger.Warn("reminder timestamp update failed", zap.String("email", reg.Email), zap.Error(err))
	}
	p.logger.Info("reminder sent", zap.String("email", payload.RecipientEmail))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *ReminderProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("reminder worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
		}
	}
}
