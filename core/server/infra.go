package server

import (
	"campusflow/core/cache"
	"campusflow/core/config"
	"campusflow/core/constants"
	"campusflow/core/database"
	"campusflow/core/logger"
	"campusflow/core/mailer"
	"campusflow/core/queue"
	"campusflow/core/realtime"
	"campusflow/core/storage"

	"github.com/redis/go-redis/v9"
)

// infra holds the shared clients both the API and the worker are built on.
type infra struct {
	cfg       *config.Config
	db        *database.Database
	redis     *redis.Client
	cache     cache.Cache
	scheduler queue.Scheduler
	hub       *realtime.Hub
	uploader  storage.Uploader
	mailer    mailer.Mailer
}

func newInfra(cfg *config.Config) (*infra, error) {
	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return nil, err
	}
	in := &infra{
		cfg:      cfg,
		db:       db,
		uploader: storage.NewS3Uploader(cfg.Storage),
	}

	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		in.redis = client
		in.cache = cache.NewRedisCache(client)
		in.scheduler = queue.NewAsynqScheduler(cfg.Redis)
		in.hub = realtime.NewHub(realtime.NewRedisBroker(client, constants.RedisChannelRealtime))
	} else {
		logger.Warn("Server:Infra:RedisDisabled", "detail", "using in-memory cache, local broker and a job recorder")
		in.cache = cache.NewMemoryCache()
		in.scheduler = queue.NewRecorder()
		in.hub = realtime.NewHub(realtime.NewLocalBroker())
	}

	if cfg.Mail.Host != "" {
		in.mailer = mailer.NewSMTPMailer(cfg.Mail)
	} else {
		in.mailer = &mailer.Recorder{}
	}
	return in, nil
}

func (in *infra) close() {
	if s, ok := in.scheduler.(*queue.AsynqScheduler); ok {
		if err := s.Close(); err != nil {
			logger.Error("Server:Infra:CloseScheduler", err)
		}
	}
	if in.redis != nil {
		if err := in.redis.Close(); err != nil {
			logger.Error("Server:Infra:CloseRedis", err)
		}
	}
	if err := in.db.Close(); err != nil {
		logger.Error("Server:Infra:CloseDB", err)
	}
}
