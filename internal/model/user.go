package model

type UserRole string

const (
	Student UserRole = "student"
	Staff   UserRole = "staff"
	Admin   UserRole = "admin"
)

// AtLeastStaff reports whether the role carries staff powers.
// Admin is a superset of staff.
func (r UserRole) AtLeastStaff() bool {
	return r == Staff || r == Admin
}

// swagger:model User
type User struct {
	BaseModel
	RegNo     string   `gorm:"size:50;unique;not null" json:"regNo"`
	FirstName string   `gorm:"size:100;not null" json:"firstName"`
	LastName  string   `gorm:"size:100;not null" json:"lastName"`
	Gender    string   `gorm:"size:20" json:"gender"`
	Email     string   `gorm:"size:100" json:"email"`
	Password  string   `gorm:"size:100;not null" json:"-"`
	Role      UserRole `gorm:"type:enum('student','staff','admin');default:'student'" json:"role"`
	// Active gates authentication. Suspended users cannot log in and
	// their outstanding tokens are revoked.
	Active bool `gorm:"default:true" json:"active"`

	Submissions []Submission `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Complaints  []Complaint  `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
