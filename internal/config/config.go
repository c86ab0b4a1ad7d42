// Package config manages application configuration from defaults, an
// optional YAML file and ATBOT_* environment variables.
package config

// Config defines the application configuration. Values can be set through
// config.yaml or environment variables prefixed with ATBOT_ (for example
// ATBOT_BOT_NICK or ATBOT_STORE_BACKEND).
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Bot       BotConfig       `mapstructure:"bot"`
	Store     StoreConfig     `mapstructure:"store"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	S3        S3Config        `mapstructure:"s3"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// BotConfig holds the bot identity and command marker.
type BotConfig struct {
	// Nick is the identity direct messages are addressed to.
	Nick   string `mapstructure:"nick"   validate:"required"`
	Prefix string `mapstructure:"prefix" validate:"required"`
}

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendS3     = "s3"
)

// StoreConfig selects the profile store backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory file sqlite redis s3"`
	Root    string `mapstructure:"root"    validate:"required_if=Backend file"`
	Format  string `mapstructure:"format"  validate:"required,oneof=json yaml"`
}

// DatabaseConfig holds settings for the sqlite backend.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// RedisConfig holds settings for the redis backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"     validate:"omitempty,hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"       validate:"min=0"`
	Prefix   string `mapstructure:"prefix"`
}

// S3Config holds settings for the s3 backend.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"   validate:"omitempty,url"`
	PathStyle bool   `mapstructure:"path_style"`
	Prefix    string `mapstructure:"prefix"`
}

// TelegramConfig holds Telegram transport settings.
type TelegramConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"   validate:"required_if=Enabled true"`
}

// DiscordConfig holds Discord transport settings.
type DiscordConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"   validate:"required_if=Enabled true"`
}

// MetricsConfig holds the Prometheus endpoint address. Empty disables it.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"`
}

// SchedulerConfig maps task names to their schedule.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig describes one scheduled task. Schedule is a cron expression
// with an optional leading seconds field.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}
