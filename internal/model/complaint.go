package model

// swagger:model Complaint
type Complaint struct {
	BaseModel
	StudentID uint   `gorm:"index;not null" json:"studentId"`
	Student   *User  `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Body      string `gorm:"type:text;not null" json:"body"`
}

func (Complaint) TableName() string {
	return "complaints"
}
