package config

import (
	"fmt"
	"os"

	"github.com/Domenick1991/pawcare/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory   = "memory"
	StorageSlot     = "slot"
	StoragePostgres = "postgres"

	NotifyLog   = "log"
	NotifyEmail = "email"
	NotifyKafka = "kafka"
)

type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	GRPC          GRPCConfig          `yaml:"grpc"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Kafka         KafkaConfig         `yaml:"kafka"`
	Storage       StorageConfig       `yaml:"storage"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Email         EmailConfig         `yaml:"email"`
	Auth          AuthConfig          `yaml:"auth"`
	Booking       BookingConfig       `yaml:"booking"`
	Log           LogConfig           `yaml:"log"`
	Providers     []domain.Provider   `yaml:"providers"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type GRPCConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

// StorageConfig picks the booking store backend: memory, slot or postgres.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	SlotKey string `yaml:"slot_key"`
}

type NotificationsConfig struct {
	Mode string `yaml:"mode"`
}

type EmailConfig struct {
	From     string `yaml:"from"`
	SMTPAddr string `yaml:"smtp_addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type BookingConfig struct {
	ProvidersCacheTTL int `yaml:"providers_cache_ttl_seconds"`
}

type LogConfig struct {
	Env string `yaml:"env"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("AUTH_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.Email.Password = v
	}
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageMemory
	}
	if c.Storage.SlotKey == "" {
		c.Storage.SlotKey = "pawcare:bookings"
	}
	if c.Notifications.Mode == "" {
		c.Notifications.Mode = NotifyLog
	}
	if c.Kafka.NotificationsTopic == "" {
		c.Kafka.NotificationsTopic = "booking-notifications"
	}
	if c.Booking.ProvidersCacheTTL == 0 {
		c.Booking.ProvidersCacheTTL = 60
	}
	if c.Log.Env == "" {
		c.Log.Env = "development"
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageMemory, StorageSlot, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Notifications.Mode {
	case NotifyLog, NotifyEmail:
	case NotifyKafka:
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("notifications mode %q requires kafka brokers", NotifyKafka)
		}
	default:
		return fmt.Errorf("unknown notifications mode %q", c.Notifications.Mode)
	}
	return nil
}
