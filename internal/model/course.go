package model

// swagger:model Course
type Course struct {
	BaseModel
	Title string `gorm:"size:200;not null" json:"title"`
	Code  string `gorm:"size:50;unique;not null" json:"code"`

	Quizzes []Quiz `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}
