package database

import (
	"fmt"
	"log"

	"quizdesk_backend/internal/config"
	"quizdesk_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the mysql connection and, unless running in release mode
// without the migrate flag, applies schema migrations and seeds the
// notification settings singleton.
func InitDB(cfg *config.DatabaseConfig, mode string, forceMigrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if mode == "release" && !forceMigrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Quiz{},
		&model.Submission{},
		&model.Complaint{},
		&model.EmailSettings{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed the notification settings singleton so the request path never
	// has to create it. FirstOrCreate on the fixed ID is idempotent across
	// concurrently starting instances.
	settings := model.EmailSettings{
		BaseModel:                  model.BaseModel{ID: model.SettingsID},
		QuizUploadEnabled:          true,
		SubmissionEnabled:          true,
		StudentRegistrationEnabled: true,
	}
	if err := db.Where("id = ?", model.SettingsID).FirstOrCreate(&settings).Error; err != nil {
		return nil, err
	}

	return db, nil
}
