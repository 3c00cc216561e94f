package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/solvaders/clubhub/internal/shared"
)

// auditPruneSpec runs the retention sweep nightly at 03:00 UTC.
const auditPruneSpec = "0 3 * * *"

// Worker wraps the Asynq server and scheduler.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

// WorkerConfig collects dependencies required to bootstrap the worker.
type WorkerConfig struct {
	RedisOpts          asynq.RedisClientOpt
	Logger             *slog.Logger
	Audit              *shared.AuditLogger
	AuditRetentionDays int
}

// NewWorker constructs a Worker instance with the standard handlers
// and the nightly audit prune registered.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			QueueDefault: 1,
		},
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeWelcomeMail, NewWelcomeMailHandler(cfg.Logger))
	mux.HandleFunc(TaskTypeAuditPrune, NewAuditPruneHandler(cfg.Audit, cfg.Logger))

	scheduler := asynq.NewScheduler(cfg.RedisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	pruneTask, err := NewAuditPruneTask(AuditPrunePayload{RetentionDays: cfg.AuditRetentionDays})
	if err != nil {
		return nil, err
	}
	if _, err := scheduler.Register(auditPruneSpec, pruneTask, asynq.Queue(QueueDefault)); err != nil {
		return nil, err
	}

	return &Worker{server: srv, mux: mux, scheduler: scheduler, logger: cfg.Logger}, nil
}

// Run starts processing jobs until context cancellation.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: not configured")
	}
	if err := w.scheduler.Start(); err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.scheduler.Shutdown()
		w.server.Shutdown()
		return ctx.Err()
	case err := <-errCh:
		w.scheduler.Shutdown()
		return err
	}
}
