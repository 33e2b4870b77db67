package config

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"employee-management-backend/internal/model"
)

// DriverType represents the type of database driver
type DriverType string

const (
	DriverMySQL    DriverType = "mysql"
	DriverPostgres DriverType = "postgres"
	DriverSQLite   DriverType = "sqlite"
)

// DSNConf holds the connection parameters used to build a DSN when none is given.
type DSNConf struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       string `yaml:"db"`
}

type DatabaseConfig struct {
	Driver DriverType `yaml:"driver"`
	// DSN overrides DSNConf. For SQLite it is the database file path.
	DSN     string `yaml:"dsn"`
	DataDir string `yaml:"data_dir"`
	DSNConf `yaml:",inline"`
	Debug   bool `yaml:"debug"`
}

func (c *DatabaseConfig) validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.DSN == "" && c.DataDir == "" {
			return errors.New("database: sqlite needs dsn or data_dir")
		}
		return nil
	case DriverMySQL, DriverPostgres:
	default:
		return errors.Errorf("database: unsupported driver '%s'", c.Driver)
	}
	if c.DSN != "" {
		return nil
	}
	var err error
	c.DSN, err = DSN(c.Driver, c.DSNConf)
	return err
}

// DSN creates a connection string for the passed driver.
func DSN(driver DriverType, conf DSNConf) (string, error) {
	switch driver {
	case DriverMySQL:
		if conf.Port == 0 {
			conf.Port = 3306
		}
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			conf.User, conf.Password, conf.Host, conf.Port, conf.DB,
		), nil
	case DriverPostgres:
		if conf.Port == 0 {
			conf.Port = 5432
		}
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			conf.Host, conf.User, conf.Password, conf.DB, conf.Port,
		), nil
	default:
		return "", errors.Errorf("driver %s does not use dsn", driver)
	}
}

// Models lists every table the service owns, in migration order.
var Models = []any{
	&model.User{},
	&model.Employee{},
	&model.AttendanceRecord{},
	&model.LeaveRequest{},
	&model.Task{},
	&model.Notification{},
	&model.ActivityLog{},
}

// ConnectDB opens the database and migrates the schema.
func ConnectDB(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = filepath.Join(cfg.DataDir, "employee_management.db")
		}
		dialector = sqlite.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(cfg.DSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, errors.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	logMode := logger.Silent
	if cfg.Debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
		// Duplicate keys surface as gorm.ErrDuplicatedKey on every driver.
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err = db.AutoMigrate(Models...); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}
	log.WithField("driver", cfg.Driver).Info("database connected")
	return db, nil
}
