package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/solvaders/clubhub/internal/shared"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeWelcomeMail greets a freshly registered account.
	TaskTypeWelcomeMail = "mail:welcome"
	// TaskTypeAuditPrune trims old audit_logs rows.
	TaskTypeAuditPrune = "audit:prune"
)

// WelcomeMailPayload describes the recipient of a welcome mail.
type WelcomeMailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewWelcomeMailTask constructs an Asynq task.
func NewWelcomeMailTask(payload WelcomeMailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeWelcomeMail, data), nil
}

// NewWelcomeMailHandler returns the processor for welcome mails.
func NewWelcomeMailHandler(logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload WelcomeMailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		// Placeholder until an SMTP relay lands.
		logger.Info("welcome mail", slog.String("to", payload.Email), slog.String("name", payload.Name))
		return nil
	}
}

// AuditPrunePayload carries the retention window in days.
type AuditPrunePayload struct {
	RetentionDays int `json:"retention_days"`
}

// NewAuditPruneTask constructs an Asynq task.
func NewAuditPruneTask(payload AuditPrunePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeAuditPrune, data), nil
}

// NewAuditPruneHandler returns the processor for audit pruning.
func NewAuditPruneHandler(audit *shared.AuditLogger, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload AuditPrunePayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.RetentionDays <= 0 {
			payload.RetentionDays = 90
		}
		removed, err := audit.Prune(ctx, time.Duration(payload.RetentionDays)*24*time.Hour)
		if err != nil {
			return err
		}
		logger.Info("audit logs pruned", slog.Int64("removed", removed), slog.Int("retention_days", payload.RetentionDays))
		return nil
	}
}

// Enqueuer submits jobs to the queue. It backs the auth service's
// welcome-mail hook.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer constructs an Asynq client wrapper.
func NewEnqueuer(redisOpts asynq.RedisClientOpt) *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(redisOpts)}
}

// EnqueueWelcome queues a welcome mail for the given account.
func (e *Enqueuer) EnqueueWelcome(ctx context.Context, email, name string) error {
	task, err := NewWelcomeMailTask(WelcomeMailPayload{Email: email, Name: name})
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// Close releases client resources.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}
