package config

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pashtetskiy/SimpleToDoWebApi/models"
)

var DB *gorm.DB

// InitDB opens the database connection for the configured driver and, outside
// production, migrates the schema. Production schema changes are rolled out
// by an external migration step.
func InitDB(config Config) error {
	dialector, err := openDialector(config)
	if err != nil {
		return err
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if config.Environment != "production" {
		if err := DB.AutoMigrate(&models.Task{}); err != nil {
			return fmt.Errorf("schema migration failed: %w", err)
		}
	}

	return nil
}

func openDialector(config Config) (gorm.Dialector, error) {
	switch config.DBDriver {
	case "", "sqlite":
		return sqlite.Open(config.DBPath), nil
	case "mysql":
		return mysql.Open(config.MySQLDSN()), nil
	case "postgres":
		return postgres.Open(config.PostgresDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", config.DBDriver)
	}
}
