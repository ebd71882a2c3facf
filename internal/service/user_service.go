package service

import (
	"context"
	"errors"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Tokens   *TokenService
	Notifier *NotificationService
}

func NewUserService(userRepo *repository.UserRepository, tokens *TokenService, notifier *NotificationService) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Tokens:   tokens,
		Notifier: notifier,
	}
}

// Register creates a new student account. user.Password arrives plain
// and is stored hashed. Fires the registration notification
// asynchronously on success.
func (s *UserService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByRegNo(user.RegNo)
	if err == nil {
		return util.ErrRegNoTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if user.Role == "" {
		user.Role = model.Student
	}
	user.Active = true

	if err := s.UserRepo.Create(user); err != nil {
		return err
	}

	go s.Notifier.StudentRegistered(user)
	return nil
}

// UserGroups is the role-partitioned listing for the staff view.
type UserGroups struct {
	Students []model.User `json:"students"`
	Staff    []model.User `json:"staff"`
	Admins   []model.User `json:"admins"`
}

func (s *UserService) ListGrouped() (*UserGroups, error) {
	students, err := s.UserRepo.FindByRole(model.Student)
	if err != nil {
		return nil, err
	}
	staff, err := s.UserRepo.FindByRole(model.Staff)
	if err != nil {
		return nil, err
	}
	admins, err := s.UserRepo.FindByRole(model.Admin)
	if err != nil {
		return nil, err
	}
	return &UserGroups{Students: students, Staff: staff, Admins: admins}, nil
}

func (s *UserService) Get(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// UpdateProfile edits name and gender; credentials and role are managed
// through their own operations.
func (s *UserService) UpdateProfile(userID uint, firstName, lastName, gender string) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.Gender = gender
	return s.UserRepo.Update(user)
}

// ChangeRole assigns a new role to the target user. An identity may not
// change its own role.
func (s *UserService) ChangeRole(ctx context.Context, actorID, targetID uint, role model.UserRole) error {
	if actorID == targetID {
		return util.ErrSelfRoleChange
	}
	if _, err := s.Get(targetID); err != nil {
		return err
	}
	if err := s.UserRepo.SetRole(targetID, role); err != nil {
		return err
	}
	// A demotion must not leave an elevated token usable.
	return s.Tokens.RevokeUser(ctx, targetID)
}

// ToggleSuspension flips the active flag and returns the new state.
// Suspension also revokes the user's live tokens.
func (s *UserService) ToggleSuspension(ctx context.Context, userID uint) (bool, error) {
	user, err := s.Get(userID)
	if err != nil {
		return false, err
	}

	active := !user.Active
	if err := s.UserRepo.SetActive(userID, active); err != nil {
		return false, err
	}

	if !active {
		if err := s.Tokens.RevokeUser(ctx, userID); err != nil {
			return false, err
		}
	}
	return active, nil
}

// Delete removes the user; submissions and complaints cascade.
func (s *UserService) Delete(userID uint) error {
	if _, err := s.Get(userID); err != nil {
		return err
	}
	return s.UserRepo.Delete(userID)
}
