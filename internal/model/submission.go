package model

import "time"

// Submission holds at most one row per (student, quiz); resubmission
// overwrites the file and timestamp in place, enforced by the composite
// unique index.
// swagger:model Submission
type Submission struct {
	BaseModel
	StudentID uint  `gorm:"uniqueIndex:idx_student_quiz;not null" json:"studentId"`
	Student   *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	// CourseID is denormalized from the quiz so per-course listings
	// need no join.
	CourseID    uint      `gorm:"index;not null" json:"courseId"`
	Course      *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	QuizID      uint      `gorm:"uniqueIndex:idx_student_quiz;not null" json:"quizId"`
	Quiz        *Quiz     `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	File        string    `gorm:"size:255;not null" json:"file"`
	SubmittedAt time.Time `gorm:"not null" json:"submittedAt"`
	Marks       *int      `json:"marks"` // nil until graded, 0..10 once set
	Remarks     string    `gorm:"type:text" json:"remarks"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) Graded() bool {
	return s.Marks != nil
}
