package queue

import (
	"campusflow/core/config"
	"campusflow/core/logger"
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Worker runs the asynq server and the periodic scheduler side by side.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
}

type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug("Asynq", "detail", fmt.Sprint(args...)) }
func (asynqLogger) Info(args ...any)  { logger.Info("Asynq", "detail", fmt.Sprint(args...)) }
func (asynqLogger) Warn(args ...any)  { logger.Warn("Asynq", "detail", fmt.Sprint(args...)) }
func (asynqLogger) Error(args ...any) { logger.Error("Asynq", "detail", fmt.Sprint(args...)) }
func (asynqLogger) Fatal(args ...any) { logger.Error("Asynq:Fatal", "detail", fmt.Sprint(args...)) }

func NewWorker(redisCfg config.RedisConfig, workerCfg config.WorkerConfig, loc *time.Location) *Worker {
	concurrency := workerCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}
	opt := RedisOpt(redisCfg)
	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			QueueCritical: 6,
			QueueDefault:  3,
		},
		Logger: asynqLogger{},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Worker:Task:Failed", "type", task.Type(), "error", err)
		}),
	})
	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Location: loc,
		Logger:   asynqLogger{},
	})
	return &Worker{server: server, scheduler: scheduler, mux: asynq.NewServeMux()}
}

func (w *Worker) Handle(kind string, fn func(ctx context.Context, t *asynq.Task) error) {
	w.mux.HandleFunc(kind, fn)
}

// Every registers a cron-driven job.
func (w *Worker) Every(spec, kind string) error {
	id, err := w.scheduler.Register(spec, asynq.NewTask(kind, nil), asynq.Queue(QueueDefault))
	if err != nil {
		return fmt.Errorf("register %s (%s): %w", kind, spec, err)
	}
	logger.Info("Worker:Every", "kind", kind, "spec", spec, "entry", id)
	return nil
}

func (w *Worker) Start() error {
	if err := w.scheduler.Start(); err != nil {
		return err
	}
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}
