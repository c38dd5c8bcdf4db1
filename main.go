package main

import (
	"campusflow/core/config"
	"campusflow/core/database"
	"campusflow/core/logger"
	"campusflow/core/server"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

// @title CampusFlow API
// @version 1.0
// @description Backend for CampusFlow: tasks, events, groups, chat and study buddies for students.

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func loadConfig() (*config.Config, error) {
	cfg, err := config.Init()
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.App.Env)
	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:  "campusflow",
		Usage: "campus life API and background worker",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					return server.Serve(c.Context, cfg)
				},
			},
			{
				Name:  "worker",
				Usage: "run reminders, push delivery and the daily digest",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig()
					if err != nil {
						return err
					}
					return server.Work(c.Context, cfg)
				},
			},
			{
				Name:  "migrate",
				Usage: "apply or roll back database migrations",
				Subcommands: []*cli.Command{
					{
						Name: "up",
						Action: func(c *cli.Context) error {
							cfg, err := loadConfig()
							if err != nil {
								return err
							}
							return database.MigrateUp(cfg.Database)
						},
					},
					{
						Name: "down",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "steps", Value: 1, Usage: "steps to roll back, 0 for all"},
						},
						Action: func(c *cli.Context) error {
							cfg, err := loadConfig()
							if err != nil {
								return err
							}
							return database.MigrateDown(cfg.Database, c.Int("steps"))
						},
					},
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Error("campusflow", err)
		stop()
		os.Exit(1)
	}
}
