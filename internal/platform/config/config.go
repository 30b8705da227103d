package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Odin     OdinConfig
	Notify   NotifyConfig
	Insights InsightsConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DBConfig: DSN vacío => repos in-memory.
type DBConfig struct {
	DSN     string
	Migrate bool
}

// RedisConfig: Addr vacío => cache en proceso.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CacheConfig struct {
	TTL time.Duration
}

type LogConfig struct {
	Level  string
	Format string
	App    string
}

type OdinConfig struct {
	BaseURL string
	APIKey  string
}

type NotifyConfig struct {
	WebhookURL string
	APIKey     string
	Timeout    time.Duration
}

type InsightsConfig struct {
	Concurrency int
}

// Load lee config.yaml (opcional) + env PETHEALTH_*.
// PORT y DB_DSN se siguen aceptando por compatibilidad con el despliegue actual.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/pet-health")
	}

	v.SetEnvPrefix("PETHEALTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("server.port", "PETHEALTH_SERVER_PORT", "PORT")
	_ = v.BindEnv("db.dsn", "PETHEALTH_DB_DSN", "DB_DSN")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Insights.Concurrency <= 0 {
		cfg.Insights.Concurrency = 1
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "5s")
	v.SetDefault("server.writeTimeout", "10s")

	v.SetDefault("db.dsn", "")
	v.SetDefault("db.migrate", false)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.ttl", "60s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.app", "pet-health")

	v.SetDefault("odin.baseURL", "")
	v.SetDefault("odin.apiKey", "")

	v.SetDefault("notify.webhookURL", "")
	v.SetDefault("notify.apiKey", "")
	v.SetDefault("notify.timeout", "5s")

	v.SetDefault("insights.concurrency", 4)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
