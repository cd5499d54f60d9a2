package config

import (
	"os"
	"strconv"
	"strings"
)

// DBConfig 数据库配置（postgres 内容存储）
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// MQConfig 消息队列配置，URL 为空表示不启用
type MQConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig Redis配置，Addr 为空表示不启用缓存
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// AdminConfig 管理接口配置
type AdminConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `yaml:"port"`
}

// SiteConfig 站点配置
type SiteConfig struct {
	URL          string `yaml:"url"`
	Name         string `yaml:"name"`
	AnalyticsID  string `yaml:"analytics_id"`
	ContactEmail string `yaml:"contact_email"`
}

// MailConfig 邮件配置
type MailConfig struct {
	Provider          string `yaml:"provider"`
	APIKey            string `yaml:"api_key"`
	From              string `yaml:"from"`
	SimulatedDelayMS  int    `yaml:"simulated_delay_ms"`
	BreakerThreshold  int    `yaml:"breaker_threshold"`
	BreakerTimeoutSec int    `yaml:"breaker_timeout_seconds"`
}

// ContentConfig 内容存储配置
type ContentConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
}

// OtelConfig OpenTelemetry 配置
type OtelConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// OverrideDBFromEnv 从环境变量覆盖数据库配置
func OverrideDBFromEnv(cfg *DBConfig) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Name = name
	}
}

// OverrideMQFromEnv 从环境变量覆盖MQ配置
func OverrideMQFromEnv(cfg *MQConfig) {
	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.URL = url
	}
}

// OverrideRedisFromEnv 从环境变量覆盖Redis配置
func OverrideRedisFromEnv(cfg *RedisConfig) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if ttl := os.Getenv("REDIS_TTL_SECONDS"); ttl != "" {
		if v, err := strconv.Atoi(ttl); err == nil {
			cfg.TTLSeconds = v
		}
	}
}

// OverrideAdminFromEnv 从环境变量覆盖管理接口配置
func OverrideAdminFromEnv(cfg *AdminConfig) {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}
}

// OverrideServerFromEnv 从环境变量覆盖服务器配置
func OverrideServerFromEnv(cfg *ServerConfig) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port = port
	}
}

// OverrideSiteFromEnv 从环境变量覆盖站点配置
// 同时兼容前端部署遗留的 NEXT_PUBLIC_* 变量名
func OverrideSiteFromEnv(cfg *SiteConfig) {
	if url := firstEnv("SITE_URL", "NEXT_PUBLIC_SITE_URL"); url != "" {
		cfg.URL = strings.TrimRight(url, "/")
	}
	if name := os.Getenv("SITE_NAME"); name != "" {
		cfg.Name = name
	}
	if id := firstEnv("GA_MEASUREMENT_ID", "NEXT_PUBLIC_GA_MEASUREMENT_ID"); id != "" {
		cfg.AnalyticsID = id
	}
	if email := os.Getenv("CONTACT_EMAIL"); email != "" {
		cfg.ContactEmail = email
	}
}

// OverrideMailFromEnv 从环境变量覆盖邮件配置
func OverrideMailFromEnv(cfg *MailConfig) {
	if provider := os.Getenv("MAIL_PROVIDER"); provider != "" {
		cfg.Provider = provider
	}
	if key := os.Getenv("MAIL_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	if from := os.Getenv("MAIL_FROM"); from != "" {
		cfg.From = from
	}
	if delay := os.Getenv("MAIL_SIMULATED_DELAY_MS"); delay != "" {
		if v, err := strconv.Atoi(delay); err == nil {
			cfg.SimulatedDelayMS = v
		}
	}
}

// OverrideContentFromEnv 从环境变量覆盖内容存储配置
func OverrideContentFromEnv(cfg *ContentConfig) {
	if driver := os.Getenv("CONTENT_DRIVER"); driver != "" {
		cfg.Driver = driver
	}
	if path := os.Getenv("CONTENT_SQLITE_PATH"); path != "" {
		cfg.SQLitePath = path
	}
}

// OverrideOtelFromEnv 从环境变量覆盖 OpenTelemetry 配置
func OverrideOtelFromEnv(cfg *OtelConfig) {
	if enabled := os.Getenv("OTEL_ENABLED"); enabled != "" {
		if v, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = v
		}
	}
	if endpoint := os.Getenv("OTEL_ENDPOINT"); endpoint != "" {
		cfg.Endpoint = endpoint
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
