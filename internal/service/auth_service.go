package service

import (
	"errors"

	"quizdesk_backend/internal/config"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type credentialStore interface {
	FindByID(id uint) (*model.User, error)
	FindByRegNo(regNo string) (*model.User, error)
	Update(user *model.User) error
}

type AuthService struct {
	Users credentialStore
	Cfg   *config.Config
}

func NewAuthService(users credentialStore, cfg *config.Config) *AuthService {
	return &AuthService{
		Users: users,
		Cfg:   cfg,
	}
}

// Login verifies credentials and the active flag, in that order, and
// returns a signed token. A suspended account fails even with correct
// credentials.
func (s *AuthService) Login(regNo, password string) (string, error) {
	user, err := s.Users.FindByRegNo(regNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	if !user.Active {
		return "", util.ErrAccountSuspended
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// ChangePassword verifies the current password before replacing it.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return util.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.Users.Update(user)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.Users.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
