package repository

import (
	"quizdesk_backend/internal/model"

	"gorm.io/gorm"
)

type EmailSettingsRepository struct {
	DB *gorm.DB
}

func NewEmailSettingsRepository(db *gorm.DB) *EmailSettingsRepository {
	return &EmailSettingsRepository{DB: db}
}

// Get reads the singleton row. It is seeded at startup, so a missing row
// is a real error here.
func (r *EmailSettingsRepository) Get() (*model.EmailSettings, error) {
	var settings model.EmailSettings
	err := r.DB.First(&settings, model.SettingsID).Error
	return &settings, err
}

func (r *EmailSettingsRepository) Update(settings *model.EmailSettings) error {
	settings.ID = model.SettingsID
	return r.DB.Model(&model.EmailSettings{}).
		Where("id = ?", model.SettingsID).
		Updates(map[string]interface{}{
			"quiz_upload_enabled":          settings.QuizUploadEnabled,
			"submission_enabled":           settings.SubmissionEnabled,
			"student_registration_enabled": settings.StudentRegistrationEnabled,
		}).Error
}
