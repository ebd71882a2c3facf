package model

// EmailSettings is a singleton row (ID is always SettingsID) holding the
// global notification toggles. It is seeded during migration so request
// handlers never have to create it.
// swagger:model EmailSettings
type EmailSettings struct {
	BaseModel
	QuizUploadEnabled          bool `gorm:"default:true" json:"quizUploadEnabled"`
	SubmissionEnabled          bool `gorm:"default:true" json:"submissionEnabled"`
	StudentRegistrationEnabled bool `gorm:"default:true" json:"studentRegistrationEnabled"`
}

const SettingsID uint = 1

func (EmailSettings) TableName() string {
	return "email_settings"
}
