package repository

import (
	"quizdesk_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindByCode(code string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("code = ?", code).First(&course).Error
	return &course, err
}

func (r *CourseRepository) FindAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Order("code ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// Delete removes the course; quizzes and their submissions go with it
// via the FK cascade.
func (r *CourseRepository) Delete(courseID uint) error {
	return r.DB.Delete(&model.Course{}, courseID).Error
}
