package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса (config.toml)
type Config struct {
	Server         ServerConfig      `toml:"server"`
	Database       DatabaseConfig    `toml:"database"`
	Logs           LogsConfig        `toml:"logs"`
	Metrics        MetricsConfig     `toml:"metrics"`
	Booking        BookingConfig     `toml:"booking"`
	Sweep          SweepConfig       `toml:"sweep"`
	MemberService  IntegrationConfig `toml:"member_service"`
	PaymentService IntegrationConfig `toml:"payment_service"`
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

// DSN собирает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BookingConfig бизнес-политика бронирования
type BookingConfig struct {
	// AdvanceBookingDays горизонт бронирования в днях (0 = без ограничения)
	AdvanceBookingDays int `toml:"advance_booking_days"`
	// MinBookingNoticeMinutes минимальное время до начала слота при бронировании на сегодня
	MinBookingNoticeMinutes int `toml:"min_booking_notice_minutes"`
	// RequireApproval при true новые сессии создаются в статусе pending, иначе confirmed
	RequireApproval bool `toml:"require_approval"`
}

// SweepConfig настройки фонового перевода прошедших сессий в completed
type SweepConfig struct {
	IntervalSeconds int `toml:"interval_seconds"`
}

// IntegrationConfig настройки интеграционного HTTP клиента
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load читает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Sweep.IntervalSeconds <= 0 {
		cfg.Sweep.IntervalSeconds = 60
	}

	return &cfg, nil
}
