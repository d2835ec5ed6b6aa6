package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	ProfileService IntegrationConfig    `toml:"profile_service"`
	ServiceCatalog IntegrationConfig    `toml:"service_catalog"`
	SmsGateway     SmsGatewayConfig     `toml:"sms_gateway"`
	Kafka          KafkaConfig          `toml:"kafka"`
	Booking        BookingEngineConfig  `toml:"booking"`
	Notifications  NotificationsConfig  `toml:"notifications"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig настройки HTTP клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// SmsGatewayConfig настройки шлюза SMS/push уведомлений
type SmsGatewayConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"`
}

// KafkaConfig настройки публикации событий
type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

// BookingEngineConfig настройки движка бронирования
type BookingEngineConfig struct {
	// AlternativeSlotsCount количество альтернативных слотов при отказе
	AlternativeSlotsCount int `toml:"alternative_slots_count"`
	// AlternativeSlotStepMinutes шаг между альтернативными слотами
	AlternativeSlotStepMinutes int `toml:"alternative_slot_step_minutes"`
}

// NotificationsConfig настройки диспетчера уведомлений
type NotificationsConfig struct {
	// DefaultLanguage язык, на который откатываемся при отсутствии шаблона
	DefaultLanguage string `toml:"default_language"`
	// DefaultMaxMessageLength лимит длины для неизвестного оператора
	DefaultMaxMessageLength int `toml:"default_max_message_length"`
	// BatchSize размер пачки при массовой рассылке
	BatchSize int `toml:"batch_size"`
	// BatchDelaySeconds пауза между пачками
	BatchDelaySeconds int `toml:"batch_delay_seconds"`
	// DeliveryLogTTLDays срок хранения журнала доставки
	DeliveryLogTTLDays int `toml:"delivery_log_ttl_days"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults подставляет значения по умолчанию для незаполненных полей
func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Booking.AlternativeSlotsCount == 0 {
		cfg.Booking.AlternativeSlotsCount = 3
	}
	if cfg.Booking.AlternativeSlotStepMinutes == 0 {
		cfg.Booking.AlternativeSlotStepMinutes = 60
	}
	if cfg.Notifications.DefaultLanguage == "" {
		cfg.Notifications.DefaultLanguage = "ru"
	}
	if cfg.Notifications.DefaultMaxMessageLength == 0 {
		cfg.Notifications.DefaultMaxMessageLength = 160
	}
	if cfg.Notifications.BatchSize == 0 {
		cfg.Notifications.BatchSize = 10
	}
	if cfg.Notifications.BatchDelaySeconds == 0 {
		cfg.Notifications.BatchDelaySeconds = 1
	}
	if cfg.Notifications.DeliveryLogTTLDays == 0 {
		cfg.Notifications.DeliveryLogTTLDays = 30
	}
}
