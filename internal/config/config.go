package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"portfolio/pkg/config"
)

const (
	ContentDriverStatic   = "static"
	ContentDriverPostgres = "postgres"
	ContentDriverSQLite   = "sqlite"
)

type Config struct {
	Server  config.ServerConfig  `yaml:"server"`
	Site    config.SiteConfig    `yaml:"site"`
	Mail    config.MailConfig    `yaml:"mail"`
	Content config.ContentConfig `yaml:"content"`
	DB      config.DBConfig      `yaml:"db"`
	Redis   config.RedisConfig   `yaml:"redis"`
	MQ      config.MQConfig      `yaml:"mq"`
	Admin   config.AdminConfig   `yaml:"admin"`
	Otel    config.OtelConfig    `yaml:"otel"`
}

// Default returns the configuration used when no file or variable sets a key.
func Default() Config {
	return Config{
		Server: config.ServerConfig{Port: ":3000"},
		Site: config.SiteConfig{
			URL:          "https://example.com",
			Name:         "Your Name",
			ContactEmail: "you@yourdomain.com",
		},
		Mail: config.MailConfig{
			Provider:          "log",
			BreakerThreshold:  5,
			BreakerTimeoutSec: 30,
		},
		Content: config.ContentConfig{
			Driver:     ContentDriverStatic,
			SQLitePath: "data/content.db",
		},
		DB:    config.DBConfig{Host: "localhost", Port: 5432, User: "portfolio", Name: "portfolio"},
		Redis: config.RedisConfig{TTLSeconds: 300},
		Otel:  config.OtelConfig{ServiceName: "portfolio"},
	}
}

// Load reads the config directory selected by CONFIG_DIR / CONFIG_ENV and exits on error.
func Load() *Config {
	env := config.GetConfigEnv()
	configDir := config.GetEnv("CONFIG_DIR", "config")

	cfg, err := LoadFrom(env, configDir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// LoadFrom 使用统一配置中心加载并转换为 Config 结构
func LoadFrom(env, configDir string) (*Config, error) {
	cfgMap, err := config.LoadConfig(env, configDir)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	cfgData, err := yaml.Marshal(cfgMap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 环境变量覆盖（优先级最高）
	config.OverrideServerFromEnv(&cfg.Server)
	config.OverrideSiteFromEnv(&cfg.Site)
	config.OverrideMailFromEnv(&cfg.Mail)
	config.OverrideContentFromEnv(&cfg.Content)
	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideRedisFromEnv(&cfg.Redis)
	config.OverrideMQFromEnv(&cfg.MQ)
	config.OverrideAdminFromEnv(&cfg.Admin)
	config.OverrideOtelFromEnv(&cfg.Otel)

	// 模板里直接拼接 {{.Site.URL}}{{.Path}}
	cfg.Site.URL = strings.TrimRight(cfg.Site.URL, "/")
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Site.ContactEmail
	}

	return &cfg, nil
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.TTLSeconds) * time.Second
}

func (c *Config) SimulatedMailDelay() time.Duration {
	return time.Duration(c.Mail.SimulatedDelayMS) * time.Millisecond
}

func (c *Config) BreakerTimeout() time.Duration {
	return time.Duration(c.Mail.BreakerTimeoutSec) * time.Second
}
