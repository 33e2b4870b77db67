package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds everything the API and the seeder need at construction time.
//
// YAML example:
//
//	server:
//	  port: 3000
//	  allowed_origins: "*"
//	database:
//	  driver: mysql
//	  host: 127.0.0.1
//	  user: root
//	  db: employee_management
//	auth:
//	  jwt_secret: change-me
//	  token_ttl: 24h
//	attendance:
//	  work_start: "09:00"
//	  half_day_hours: 4
//	  overtime_hours: 9
//	  timezone: Asia/Jakarta
//	mail:
//	  enabled: false
//	logging:
//	  level: info
//	  format: text
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Attendance AttendanceConfig `yaml:"attendance"`
	Mail       MailConfig       `yaml:"mail"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Port           int    `yaml:"port"`
	AllowedOrigins string `yaml:"allowed_origins"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// AttendanceConfig tunes the lateness and duration classification.
// WorkStart is a "15:04" wall-clock time in Timezone; clock-ins after it are late.
type AttendanceConfig struct {
	WorkStart     string  `yaml:"work_start"`
	HalfDayHours  float64 `yaml:"half_day_hours"`
	OvertimeHours float64 `yaml:"overtime_hours"`
	Timezone      string  `yaml:"timezone"`

	location *time.Location
	startH   int
	startM   int
}

// Location returns the timezone used for calendar-day truncation.
func (c AttendanceConfig) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// StartOfDay returns the work-start threshold on the calendar day of t.
func (c AttendanceConfig) StartOfDay(t time.Time) time.Time {
	t = t.In(c.Location())
	return time.Date(t.Year(), t.Month(), t.Day(), c.startH, c.startM, 0, 0, c.Location())
}

type MailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:           3000,
			AllowedOrigins: "*",
		},
		Database: DatabaseConfig{
			Driver: DriverMySQL,
			DSNConf: DSNConf{
				User: "root",
				Host: "127.0.0.1",
				DB:   "employee_management",
			},
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Attendance: AttendanceConfig{
			WorkStart:     "09:00",
			HalfDayHours:  4,
			OvertimeHours: 9,
		},
		Mail: MailConfig{
			Port: 587,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, a .env file
// and finally the process environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "could not read config file '%s'", path)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "could not parse config file '%s'", path)
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using system environment variables")
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = GetEnvAsInt("PORT", c.Server.Port)
	c.Server.AllowedOrigins = GetEnv("ALLOWED_ORIGINS", c.Server.AllowedOrigins)

	c.Database.Driver = DriverType(GetEnv("DB_DRIVER", string(c.Database.Driver)))
	c.Database.DSN = GetEnv("DB_DSN", c.Database.DSN)
	c.Database.DataDir = GetEnv("DB_DATA_DIR", c.Database.DataDir)
	c.Database.Host = GetEnv("DB_HOST", c.Database.Host)
	c.Database.Port = GetEnvAsInt("DB_PORT", c.Database.Port)
	c.Database.User = GetEnv("DB_USER", c.Database.User)
	c.Database.Password = GetEnv("DB_PASSWORD", c.Database.Password)
	c.Database.DB = GetEnv("DB_NAME", c.Database.DB)
	c.Database.Debug = GetEnvAsBool("DB_DEBUG", c.Database.Debug)

	c.Auth.JWTSecret = GetEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.TokenTTL = GetEnvAsDuration("JWT_TTL", c.Auth.TokenTTL)

	c.Attendance.WorkStart = GetEnv("WORK_START_TIME", c.Attendance.WorkStart)
	c.Attendance.HalfDayHours = GetEnvAsFloat("HALF_DAY_HOURS", c.Attendance.HalfDayHours)
	c.Attendance.OvertimeHours = GetEnvAsFloat("OVERTIME_HOURS", c.Attendance.OvertimeHours)
	c.Attendance.Timezone = GetEnv("TZ_NAME", c.Attendance.Timezone)

	c.Mail.Enabled = GetEnvAsBool("SMTP_ENABLED", c.Mail.Enabled)
	c.Mail.Host = GetEnv("SMTP_HOST", c.Mail.Host)
	c.Mail.Port = GetEnvAsInt("SMTP_PORT", c.Mail.Port)
	c.Mail.Username = GetEnv("SMTP_USERNAME", c.Mail.Username)
	c.Mail.Password = GetEnv("SMTP_PASSWORD", c.Mail.Password)
	c.Mail.From = GetEnv("SMTP_FROM", c.Mail.From)

	c.Logging.Level = GetEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = GetEnv("LOG_FORMAT", c.Logging.Format)
}

// Validate checks the configuration and resolves derived values.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth: jwt_secret must be set (JWT_SECRET)")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth: token_ttl must be positive")
	}
	if err := c.Database.validate(); err != nil {
		return err
	}
	if err := c.Attendance.Validate(); err != nil {
		return err
	}
	if c.Mail.Enabled && (c.Mail.Host == "" || c.Mail.From == "") {
		return errors.New("mail: host and from are required when mail is enabled")
	}
	return nil
}

// Validate parses WorkStart and loads Timezone. It must run before StartOfDay is used.
func (c *AttendanceConfig) Validate() error {
	start, err := time.Parse("15:04", strings.TrimSpace(c.WorkStart))
	if err != nil {
		return errors.Errorf("attendance: invalid work_start '%s', expected HH:MM", c.WorkStart)
	}
	c.startH, c.startM = start.Hour(), start.Minute()

	if c.HalfDayHours < 0 || c.OvertimeHours < 0 {
		return errors.New("attendance: hour thresholds must not be negative")
	}
	if c.OvertimeHours > 0 && c.HalfDayHours > c.OvertimeHours {
		return errors.New("attendance: half_day_hours must not exceed overtime_hours")
	}

	if c.Timezone == "" {
		c.location = time.Local
		return nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return errors.Wrapf(err, "attendance: unknown timezone '%s'", c.Timezone)
	}
	c.location = loc
	return nil
}

// GetEnv returns the environment variable or the fallback value.
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// GetEnvAsInt returns the environment variable as integer or the fallback value.
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsBool(key string, fallback bool) bool {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsFloat(key string, fallback float64) float64 {
	valueStr := GetEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return fallback
}

func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}
