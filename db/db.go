package db

import (
	"context"
	"fmt"
	"time"

	"github.com/cleitonzila/n64-checklist/config"
	"github.com/cleitonzila/n64-checklist/models"
	"github.com/cleitonzila/n64-checklist/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The two catalog stores and the ownership store are physically separate databases.
var (
	PS1       *gorm.DB
	N64       *gorm.DB
	Ownership *gorm.DB
)

func InitDB(cfg *config.Config) error {
	var err error
	if PS1, err = Open(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("ps1 catalog: %w", err)
	}
	if N64, err = Open(cfg.N64DatabaseURL); err != nil {
		return fmt.Errorf("n64 catalog: %w", err)
	}
	if cfg.OwnershipDatabaseURL == cfg.DatabaseURL {
		Ownership = PS1
	} else if Ownership, err = Open(cfg.OwnershipDatabaseURL); err != nil {
		return fmt.Errorf("ownership store: %w", err)
	}

	if cfg.AutoMigrate {
		if err := Migrate(PS1, N64, Ownership); err != nil {
			return err
		}
	}

	utils.Log.Info("Databases connected")
	return nil
}

func Open(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: NewLogger()})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return conn, nil
}

// NewLogger routes gorm's slow-query and error logs through utils.Log.
func NewLogger() logger.Interface {
	return logger.New(utils.Log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func Migrate(ps1, n64, ownership *gorm.DB) error {
	if err := ps1.AutoMigrate(&models.PS1Game{}); err != nil {
		return fmt.Errorf("failed to migrate ps1 catalog: %w", err)
	}
	if err := n64.AutoMigrate(&models.N64Game{}); err != nil {
		return fmt.Errorf("failed to migrate n64 catalog: %w", err)
	}
	if err := ownership.AutoMigrate(&models.User{}, &models.UserGame{}); err != nil {
		return fmt.Errorf("failed to migrate ownership store: %w", err)
	}
	return nil
}

// Ping checks every store connection.
func Ping(ctx context.Context) error {
	for name, conn := range map[string]*gorm.DB{"ps1": PS1, "n64": N64, "ownership": Ownership} {
		if conn == nil {
			return fmt.Errorf("%s: not connected", name)
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func Close() {
	for _, conn := range []*gorm.DB{PS1, N64, Ownership} {
		if conn == nil {
			continue
		}
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
