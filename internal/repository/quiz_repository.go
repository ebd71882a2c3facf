package repository

import (
	"quizdesk_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Course").First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindByCode(code string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("code = ?", code).First(&quiz).Error
	return &quiz, err
}

func (r *QuizRepository) FindByCourse(courseID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("course_id = ?", courseID).Order("due_date ASC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) FindAll() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("Course").Order("due_date ASC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Count(&count).Error
	return count, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(quizID uint) error {
	return r.DB.Delete(&model.Quiz{}, quizID).Error
}
