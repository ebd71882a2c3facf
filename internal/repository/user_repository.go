package repository

import (
	"quizdesk_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByRegNo(regNo string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("reg_no = ?", regNo).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByRole(role model.UserRole) ([]model.User, error) {
	var users []model.User
	err := r.DB.Where("role = ?", role).Order("reg_no ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("reg_no ASC").Find(&users).Error
	return users, err
}

// FindNotifiable returns active users in any of the given roles that
// have an email address on record.
func (r *UserRepository) FindNotifiable(roles ...model.UserRole) ([]model.User, error) {
	var users []model.User
	err := r.DB.
		Where("role IN ?", roles).
		Where("active = ?", true).
		Where("email <> ''").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) SetActive(userID uint, active bool) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("active", active).
		Error
}

func (r *UserRepository) SetRole(userID uint, role model.UserRole) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("role", role).
		Error
}

// Delete removes the user and, through the FK constraints, their
// submissions and complaints.
func (r *UserRepository) Delete(userID uint) error {
	return r.DB.Delete(&model.User{}, userID).Error
}
