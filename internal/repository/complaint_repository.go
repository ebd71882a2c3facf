package repository

import (
	"quizdesk_backend/internal/model"

	"gorm.io/gorm"
)

type ComplaintRepository struct {
	DB *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{DB: db}
}

func (r *ComplaintRepository) Create(complaint *model.Complaint) error {
	return r.DB.Create(complaint).Error
}

func (r *ComplaintRepository) FindAll() ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := r.DB.Preload("Student").Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}

func (r *ComplaintRepository) FindByStudent(studentID uint) ([]model.Complaint, error) {
	var complaints []model.Complaint
	err := r.DB.Where("student_id = ?", studentID).Order("created_at DESC").Find(&complaints).Error
	return complaints, err
}
