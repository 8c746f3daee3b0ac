package database

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vecindia/condominio-api/pkg/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// Connect opens the PostgreSQL pool and verifies it with a ping.
func Connect(databaseURL string) (*gorm.DB, error) {
	level := gormlogger.Info
	if os.Getenv("ENVIRONMENT") == "production" {
		level = gormlogger.Silent
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger:                 logger.NewGormLogger(level, slowQueryThreshold),
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("error al conectar con la base de datos: %w", err)
	}

	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error al obtener el pool de conexiones: %w", err)
	}

	pool.SetMaxIdleConns(5)
	pool.SetMaxOpenConns(50)
	pool.SetConnMaxLifetime(time.Hour)
	pool.SetConnMaxIdleTime(5 * time.Minute)

	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("la base de datos no responde: %w", err)
	}

	return db, nil
}
