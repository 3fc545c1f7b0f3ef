package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PlaceholderWebhookURL is the unconfigured sentinel shipped in example env
// files. Delivery is disabled while the Slack URL still holds this value.
const PlaceholderWebhookURL = "YOUR_SLACK_WEBHOOK_URL_HERE"

type Config struct {
	ListenPort      string        // ex: ":3000"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SlackWebhookURL string // Slack incoming-webhook URL, PlaceholderWebhookURL = delivery disabled
	WebhookSecret   string // shared secret for inbound webhooks (empty = gate disabled)

	// Redis (optional, empty RedisAddr disables dedupe and counters)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // cap on wait between retries
	RedisPingTimeout    time.Duration // timeout per ping attempt

	DedupeTTL time.Duration // window in which a repeated bookmark URL is suppressed
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		ListenPort:      normalizePort(getenv("LINKHERALD_LISTEN_PORT", "3000")),
		ShutdownTimeout: mustDuration("LINKHERALD_SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getenv("LINKHERALD_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LINKHERALD_PRETTY_LOG", true),

		SlackWebhookURL: getenv("LINKHERALD_SLACK_WEBHOOK_URL", PlaceholderWebhookURL),
		WebhookSecret:   getenv("LINKHERALD_WEBHOOK_SECRET", ""),

		RedisAddr:           getenv("LINKHERALD_REDIS_ADDR", ""),
		RedisUser:           getenv("LINKHERALD_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("LINKHERALD_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("LINKHERALD_REDIS_DB", 0),
		RedisDT:             mustDuration("LINKHERALD_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("LINKHERALD_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("LINKHERALD_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("LINKHERALD_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("LINKHERALD_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("LINKHERALD_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("LINKHERALD_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("LINKHERALD_REDIS_PING_TIMEOUT", 5*time.Second),

		DedupeTTL: mustDuration("LINKHERALD_DEDUPE_TTL", 24*time.Hour),
	}

	if path := getenv("LINKHERALD_CONFIG_FILE", ""); path != "" {
		if err := cfg.applyFile(path); err != nil {
			panic(fmt.Sprintf("failed to load config file %s: %v", path, err))
		}
	}

	return cfg
}

// fileConfig is the optional YAML overlay. Only set fields override the
// environment-derived values.
type fileConfig struct {
	ListenPort      string `yaml:"listen_port"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	LogLevel        string `yaml:"log_level"`
	PrettyLog       *bool  `yaml:"pretty_log"`
	SlackWebhookURL string `yaml:"slack_webhook_url"`
	WebhookSecret   string `yaml:"webhook_secret"`
	Redis           struct {
		Addr     string `yaml:"addr"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		DB       *int   `yaml:"db"`
	} `yaml:"redis"`
	DedupeTTL string `yaml:"dedupe_ttl"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}

	if fc.ListenPort != "" {
		c.ListenPort = normalizePort(fc.ListenPort)
	}
	if fc.ShutdownTimeout != "" {
		d, err := time.ParseDuration(fc.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid shutdown_timeout: %w", err)
		}
		c.ShutdownTimeout = d
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.PrettyLog != nil {
		c.PrettyLog = *fc.PrettyLog
	}
	if fc.SlackWebhookURL != "" {
		c.SlackWebhookURL = fc.SlackWebhookURL
	}
	if fc.WebhookSecret != "" {
		c.WebhookSecret = fc.WebhookSecret
	}
	if fc.Redis.Addr != "" {
		c.RedisAddr = fc.Redis.Addr
	}
	if fc.Redis.Username != "" {
		c.RedisUser = fc.Redis.Username
	}
	if fc.Redis.Password != "" {
		c.RedisPassword = fc.Redis.Password
	}
	if fc.Redis.DB != nil {
		c.RedisDB = *fc.Redis.DB
	}
	if fc.DedupeTTL != "" {
		d, err := time.ParseDuration(fc.DedupeTTL)
		if err != nil {
			return fmt.Errorf("invalid dedupe_ttl: %w", err)
		}
		c.DedupeTTL = d
	}

	return nil
}

// DeliveryConfigured reports whether an outbound Slack URL has been set to
// something other than the shipped placeholder.
func (c *Config) DeliveryConfigured() bool {
	return c.SlackWebhookURL != "" && c.SlackWebhookURL != PlaceholderWebhookURL
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// normalizePort accepts both "3000" and ":3000" and returns a listen address.
func normalizePort(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":3000"
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
