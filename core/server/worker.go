package server

import (
	"campusflow/core/config"
	"campusflow/core/logger"
	"campusflow/core/push"
	"campusflow/core/queue"
	"campusflow/modules/chat"
	"campusflow/modules/event"
	"campusflow/modules/notification"
	notificationService "campusflow/modules/notification/service"
	"campusflow/modules/task"
	"campusflow/modules/user"
	"context"
	"fmt"
)

// Work runs the background job processor until ctx is cancelled.
func Work(ctx context.Context, cfg *config.Config) error {
	if !cfg.Redis.Enabled {
		return fmt.Errorf("worker needs redis (REDIS_ENABLED=true)")
	}
	in, err := newInfra(cfg)
	if err != nil {
		return err
	}
	defer in.close()

	loc := cfg.Location()
	users := user.NewService(in.db, in.uploader)
	notifications := notification.NewService(in.db, in.scheduler)
	tasks := task.NewService(in.db, in.scheduler, loc)
	chats := chat.NewService(in.db, users, in.hub, notifications)
	events := event.NewService(in.db, event.Deps{
		Users:     users,
		Notifier:  notifications,
		Scheduler: in.scheduler,
		Uploader:  in.uploader,
		Rooms:     chats,
	})

	w := queue.NewWorker(cfg.Redis, cfg.Worker, loc)
	notificationService.NewJobs(notifications, users, tasks, events, push.NewExpoSender(cfg.Push), loc).Register(w)
	if err := w.Every(cfg.Worker.DigestCron, queue.TypeDailyDigest); err != nil {
		return err
	}

	if err := w.Start(); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	logger.Info("Server:Work:Started", "concurrency", cfg.Worker.Concurrency, "digest_cron", cfg.Worker.DigestCron)

	<-ctx.Done()
	logger.Info("Server:Work:ShuttingDown")
	w.Shutdown()
	return nil
}
