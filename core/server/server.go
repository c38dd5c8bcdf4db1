package server

import (
	"campusflow/core/config"
	"campusflow/core/controller"
	"campusflow/core/errors"
	"campusflow/core/logger"
	"campusflow/core/middleware"
	"campusflow/core/realtime"
	"campusflow/modules/announcement"
	"campusflow/modules/auth"
	authService "campusflow/modules/auth/service"
	"campusflow/modules/chat"
	"campusflow/modules/event"
	"campusflow/modules/group"
	"campusflow/modules/notification"
	"campusflow/modules/report"
	reportEntity "campusflow/modules/report/entity"
	reportService "campusflow/modules/report/service"
	"campusflow/modules/studybuddy"
	"campusflow/modules/task"
	"campusflow/modules/user"
	userRepository "campusflow/modules/user/repository"
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// newEcho builds the HTTP server with every module mounted under /api/v1.
func newEcho(in *infra) *echo.Echo {
	cfg := in.cfg

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.NewMiddleware(in.cache)
	api := e.Group("/api/v1")
	public := api.Group("/public")
	private := api.Group("/private", mw.AuthMiddleware())

	loc := cfg.Location()
	users := user.Init(private, in.db, mw, in.uploader, cfg.Storage.MaxUploadMB)
	auth.Init(public, private, userRepository.NewUserRepository(in.db), in.cache, in.mailer, authService.NewGoogleClient(cfg.GoogleAPI))
	notifications := notification.Init(private, in.db, in.scheduler)
	task.Init(private, in.db, in.scheduler, loc)

	chats := chat.Init(private, in.db, users, in.hub, notifications)
	in.hub.SetChatAuthorizer(chats)

	events := event.Init(private, in.db, mw, event.Deps{
		Users:       users,
		Notifier:    notifications,
		Scheduler:   in.scheduler,
		Uploader:    in.uploader,
		Rooms:       chats,
		MaxUploadMB: cfg.Storage.MaxUploadMB,
	})
	groups := group.Init(private, in.db, users, chats)
	studybuddy.Init(private, in.db, users, notifications, chats)
	report.Init(private, in.db, mw, report.Deps{
		Users:  users,
		Events: events,
		Targets: map[string]reportService.ExistsFunc{
			reportEntity.TargetMessage: chats.MessageExists,
			reportEntity.TargetUser:    users.Exists,
			reportEntity.TargetEvent:   events.Exists,
		},
	})
	announcement.Init(private, in.db, mw, users, groups, notifications)

	private.GET("/ws", websocketHandler(in.hub))
	return e
}

func websocketHandler(hub *realtime.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, ok := controller.CurrentUserID(c)
		if !ok {
			return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "Unauthorized")
		}
		return hub.ServeWS(c.Response(), c.Request(), userID)
	}
}

// Serve runs the API until ctx is cancelled, then drains in-flight requests.
func Serve(ctx context.Context, cfg *config.Config) error {
	in, err := newInfra(cfg)
	if err != nil {
		return err
	}
	defer in.close()

	e := newEcho(in)
	addr := fmt.Sprintf(":%d", cfg.App.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := in.hub.Run(gctx); err != nil && !stdErrors.Is(err, context.Canceled) {
			return fmt.Errorf("realtime hub: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("Server:Serve:Listening", "addr", addr, "env", cfg.App.Env)
		if err := e.Start(addr); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Server:Serve:ShuttingDown")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
