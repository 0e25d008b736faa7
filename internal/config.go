package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Attendance    AttendanceConfig    `mapstructure:"attendance"`
	Scheduler     SchedulerConfig     `mapstructure:"scheduler"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	I18n          I18nConfig          `mapstructure:"i18n"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
}

type DatabaseConfig struct {
	Driver       string        `mapstructure:"driver"`
	URI          string        `mapstructure:"uri"`
	Name         string        `mapstructure:"name"`
	Source       string        `mapstructure:"source"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	OpTimeout    time.Duration `mapstructure:"op_timeout"`
}

type AttendanceConfig struct {
	Timezone   string `mapstructure:"timezone"`
	WorkdayEnd string `mapstructure:"workday_end"`
}

type SchedulerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Timezone     string        `mapstructure:"timezone"`
	AutoCheckout string        `mapstructure:"auto_checkout"`
	AutoAbsent   string        `mapstructure:"auto_absent"`
	TaskCleanup  string        `mapstructure:"task_cleanup"`
	JobPostClose string        `mapstructure:"job_post_close"`
	SweepTimeout time.Duration `mapstructure:"sweep_timeout"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type I18nConfig struct {
	DefaultLocale string `mapstructure:"default_locale"`
}

// LoadConfigFromEnv builds the configuration from plain environment variables,
// used for container deployments where no config file is mounted.
func LoadConfigFromEnv() *Config {
	cfg := DefaultConfig()

	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)

	cfg.Server.Port = getEnvAsInt("PORT", cfg.Server.Port)
	cfg.Server.BaseURL = getEnv("BASE_URL", cfg.Server.BaseURL)
	cfg.Server.AllowedOrigins = getEnv("ALLOWED_ORIGINS", cfg.Server.AllowedOrigins)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.URI = getEnv("MONGODB_URI", cfg.Database.URI)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.Source = getEnv("DB_SOURCE", cfg.Database.Source)
	cfg.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)

	cfg.Attendance.Timezone = getEnv("ATTENDANCE_TIMEZONE", cfg.Attendance.Timezone)
	cfg.Attendance.WorkdayEnd = getEnv("ATTENDANCE_WORKDAY_END", cfg.Attendance.WorkdayEnd)

	cfg.Scheduler.Enabled = getEnv("SCHEDULER_ENABLED", strconv.FormatBool(cfg.Scheduler.Enabled)) == "true"
	cfg.Scheduler.Timezone = getEnv("SCHEDULER_TIMEZONE", cfg.Scheduler.Timezone)

	cfg.Observability.Logging.Level = getEnv("LOG_LEVEL", cfg.Observability.Logging.Level)
	cfg.Observability.Logging.Format = getEnv("LOG_FORMAT", cfg.Observability.Logging.Format)

	cfg.I18n.DefaultLocale = getEnv("DEFAULT_LOCALE", cfg.I18n.DefaultLocale)

	return cfg
}

// DefaultConfig holds the values used when neither file nor environment set them.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{Env: "development"},
		Server: ServerConfig{
			Port:              5000,
			AllowedOrigins:    "*",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			IdleTimeout:       60 * time.Second,
			WriteTimeout:      30 * time.Second,
			RequestTimeout:    20 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       "mongodb",
			URI:          "mongodb://localhost:27017",
			Name:         "office_management",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			OpTimeout:    10 * time.Second,
		},
		Attendance: AttendanceConfig{
			Timezone:   "UTC",
			WorkdayEnd: "17:00",
		},
		Scheduler: SchedulerConfig{
			Enabled:      true,
			Timezone:     "UTC",
			AutoCheckout: "1 17 * * 1-5",
			AutoAbsent:   "1 17 * * 1-5",
			TaskCleanup:  "0 0 * * *",
			JobPostClose: "0 0 * * *",
			SweepTimeout: 2 * time.Minute,
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{Level: "info", Format: "json"},
		},
		I18n: I18nConfig{DefaultLocale: "en"},
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Attendance.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("attendance config: %v", err))
	}

	if err := c.Scheduler.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("scheduler config: %v", err))
	}

	if err := c.Observability.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.AllowedOrigins != "" {
		for _, origin := range c.Origins() {
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

// Origins splits the comma separated allow list.
func (c *ServerConfig) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case "mongodb":
		if c.URI == "" {
			return errors.New("uri is required for mongodb")
		}
		if c.Name == "" {
			return errors.New("name is required for mongodb")
		}
	case "sqlite", "postgres":
		if c.Source == "" {
			return fmt.Errorf("source is required for %s", c.Driver)
		}
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *AttendanceConfig) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.WorkdayEndOffset(); err != nil {
		return err
	}
	return nil
}

func (c *AttendanceConfig) Location() (*time.Location, error) {
	return loadLocation(c.Timezone)
}

// WorkdayEndOffset parses workday_end ("HH:MM") into an offset from midnight.
func (c *AttendanceConfig) WorkdayEndOffset() (time.Duration, error) {
	if c.WorkdayEnd == "" {
		return 17 * time.Hour, nil
	}
	t, err := time.Parse("15:04", c.WorkdayEnd)
	if err != nil {
		return 0, fmt.Errorf("invalid workday_end %q: %w", c.WorkdayEnd, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func (c *SchedulerConfig) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, spec := range c.Specs() {
		if spec == "" {
			continue
		}
		if _, err := parser.Parse(spec); err != nil {
			return fmt.Errorf("invalid %s spec %q: %w", name, spec, err)
		}
	}
	return nil
}

func (c *SchedulerConfig) Location() (*time.Location, error) {
	return loadLocation(c.Timezone)
}

// Specs maps sweep names to their cron expressions.
func (c *SchedulerConfig) Specs() map[string]string {
	return map[string]string{
		"auto-checkout":  c.AutoCheckout,
		"auto-absent":    c.AutoAbsent,
		"task-cleanup":   c.TaskCleanup,
		"job-post-close": c.JobPostClose,
	}
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level %q", c.Level)
	}
	switch c.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid format %q", c.Format)
	}
	return nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
