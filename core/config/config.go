package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		App       AppConfig      `mapstructure:"app"`
		Database  DatabaseConfig `mapstructure:"database"`
		Redis     RedisConfig    `mapstructure:"redis"`
		JWT       JWTConfig      `mapstructure:"jwt"`
		GoogleAPI GoogleConfig   `mapstructure:"google"`
		Storage   StorageConfig  `mapstructure:"storage"`
		Push      PushConfig     `mapstructure:"push"`
		Mail      MailConfig     `mapstructure:"mail"`
		Worker    WorkerConfig   `mapstructure:"worker"`
		CORS      CORSConfig     `mapstructure:"cors"`
	}

	AppConfig struct {
		Name     string `mapstructure:"name"`
		Env      string `mapstructure:"env"`
		Port     int    `mapstructure:"port"`
		Timezone string `mapstructure:"timezone"`
		BaseURL  string `mapstructure:"base_url"`
	}

	DatabaseConfig struct {
		Host            string `mapstructure:"host"`
		Port            int    `mapstructure:"port"`
		User            string `mapstructure:"user"`
		Password        string `mapstructure:"password"`
		Name            string `mapstructure:"name"`
		SSLMode         string `mapstructure:"ssl_mode"`
		MaxOpenConns    int    `mapstructure:"max_open_conns"`
		MaxIdleConns    int    `mapstructure:"max_idle_conns"`
		ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
	}

	RedisConfig struct {
		Enabled  bool   `mapstructure:"enabled"`
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	}

	JWTConfig struct {
		Secret     string        `mapstructure:"secret"`
		AccessTTL  time.Duration `mapstructure:"access_ttl"`
		RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
		ResetTTL   time.Duration `mapstructure:"reset_ttl"`
	}

	GoogleConfig struct {
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
		RedirectURI  string `mapstructure:"redirect_uri"`
	}

	StorageConfig struct {
		Bucket        string `mapstructure:"bucket"`
		Region        string `mapstructure:"region"`
		Endpoint      string `mapstructure:"endpoint"`
		AccessKey     string `mapstructure:"access_key"`
		SecretKey     string `mapstructure:"secret_key"`
		PublicBaseURL string `mapstructure:"public_base_url"`
		MaxUploadMB   int    `mapstructure:"max_upload_mb"`
	}

	PushConfig struct {
		ExpoURL     string `mapstructure:"expo_url"`
		AccessToken string `mapstructure:"access_token"`
	}

	MailConfig struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Username string `mapstructure:"username"`
		Password string `mapstructure:"password"`
		From     string `mapstructure:"from"`
	}

	WorkerConfig struct {
		Concurrency int    `mapstructure:"concurrency"`
		DigestCron  string `mapstructure:"digest_cron"`
	}

	CORSConfig struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	}
)

var (
	mu       sync.RWMutex
	instance *Config
)

// Init reads .env (if any), environment variables and defaults into the global config.
func Init() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range v.AllKeys() {
		_ = v.BindEnv(key)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if raw := v.GetString("cors.allowed_origins"); raw != "" && len(cfg.CORS.AllowedOrigins) <= 1 {
		cfg.CORS.AllowedOrigins = splitList(raw)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	Set(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "CampusFlow")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 7070)
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("app.base_url", "http://localhost:7070")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "campusflow")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 30)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access_ttl", 24*time.Hour)
	v.SetDefault("jwt.refresh_ttl", 30*24*time.Hour)
	v.SetDefault("jwt.reset_ttl", 15*time.Minute)

	v.SetDefault("google.client_id", "")
	v.SetDefault("google.client_secret", "")
	v.SetDefault("google.redirect_uri", "")

	v.SetDefault("storage.bucket", "campusflow")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.public_base_url", "")
	v.SetDefault("storage.max_upload_mb", 5)

	v.SetDefault("push.expo_url", "https://exp.host/--/api/v2/push/send")
	v.SetDefault("push.access_token", "")

	v.SetDefault("mail.host", "")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "no-reply@campusflow.app")

	v.SetDefault("worker.concurrency", 10)
	v.SetDefault("worker.digest_cron", "0 8 * * *")

	v.SetDefault("cors.allowed_origins", []string{"*"})
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret (JWT_SECRET) is required")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid app.timezone %q: %w", c.App.Timezone, err)
	}
	return nil
}

// Location returns the configured application timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = cfg
}

func Get() *Config {
	cfg, ok := GetSafe()
	if !ok {
		panic("config: Init was not called")
	}
	return cfg
}

func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
