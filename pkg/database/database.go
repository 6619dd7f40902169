package database

import (
	"fmt"
	"time"

	"studyhive_backend/internal/config"
	"studyhive_backend/internal/model"
	"studyhive_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	logLevel := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := seedLevels(db); err != nil {
		return nil, fmt.Errorf("failed to seed levels: %w", err)
	}

	DB = db
	logger.Log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)
	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Level{},
		&model.Course{},
		&model.PastQuestion{},
		&model.OfficialNote{},
		&model.CommunityNote{},
		&model.SavedNote{},
		&model.Vote{},
		&model.Comment{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
		&model.MaterialRequest{},
	)
}

// seedLevels inserts the five academic levels if they are missing. Levels are
// fixed; the API only ever reads them.
func seedLevels(db *gorm.DB) error {
	levels := []model.Level{
		{Name: "100L", Description: "First year"},
		{Name: "200L", Description: "Second year"},
		{Name: "300L", Description: "Third year"},
		{Name: "400L", Description: "Fourth year"},
		{Name: "500L", Description: "Fifth year"},
	}

	for _, level := range levels {
		var count int64
		if err := db.Model(&model.Level{}).Where("name = ?", level.Name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&level).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
