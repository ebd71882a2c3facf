package model

import "time"

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title       string    `gorm:"size:200;not null" json:"title"`
	Code        string    `gorm:"size:50;unique;not null" json:"code"`
	Description string    `gorm:"type:text" json:"description"`
	HelpFile    string    `gorm:"size:255" json:"helpFile"` // stored path, optional
	CourseID    uint      `gorm:"index;not null" json:"courseId"`
	Course      *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	DueDate     time.Time `gorm:"not null" json:"dueDate"`

	Submissions []Submission `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Open reports whether the quiz still accepts submissions at t.
func (q *Quiz) Open(t time.Time) bool {
	return q.DueDate.After(t)
}
