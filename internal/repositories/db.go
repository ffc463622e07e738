// Package repositories provides the data access layer: Postgres persistence
// for invoices and verification audit records, plus the Redis cache service.
package repositories

import (
	"fmt"
	"log"
	"time"

	"invox/internal/config"
	"invox/internal/models"
	"invox/internal/repositories/cache"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// CacheService is the global Redis-backed cache.
var CacheService *cache.Service

// InitDB connects to Postgres, runs migrations and initializes the cache.
func InitDB() error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetEnv("DB_HOST", "localhost"),
		config.GetEnv("DB_USER", "postgres"),
		config.GetEnv("DB_PASSWORD", "postgres"),
		config.GetEnv("DB_NAME", "invox"),
		config.GetEnv("DB_PORT", "5432"),
		config.GetEnv("DB_SSLMODE", "disable"),
	)

	logLevel := logger.Silent
	if !config.IsProduction() {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	DB = db

	if err := DB.AutoMigrate(
		&models.Invoice{},
		&models.VerificationRecord{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	CacheService = cache.NewService(redisClient, config.GetDurationEnv("CACHE_TTL", time.Hour))

	log.Println("Database initialized")
	return nil
}
