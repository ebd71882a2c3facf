package service

import (
	"context"
	"testing"
	"time"

	"quizdesk_backend/internal/config"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeCredentialStore struct {
	users map[string]*model.User
}

func (f *fakeCredentialStore) FindByRegNo(regNo string) (*model.User, error) {
	u, ok := f.users[regNo]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeCredentialStore) FindByID(id uint) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCredentialStore) Update(user *model.User) error {
	f.users[user.RegNo] = user
	return nil
}

func authFixture(t *testing.T, active bool) *AuthService {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour

	store := &fakeCredentialStore{users: map[string]*model.User{
		"S-1001": {
			BaseModel: model.BaseModel{ID: 7},
			RegNo:     "S-1001",
			Password:  string(hashed),
			Role:      model.Student,
			Active:    active,
		},
	}}
	return NewAuthService(store, cfg)
}

func TestLoginSuccess(t *testing.T) {
	svc := authFixture(t, true)

	token, err := svc.Login("S-1001", "correct-horse")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := authFixture(t, true)

	_, err := svc.Login("S-1001", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := authFixture(t, true)

	_, err := svc.Login("nobody", "correct-horse")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginSuspendedAccount(t *testing.T) {
	svc := authFixture(t, false)

	// correct credentials still fail while suspended
	_, err := svc.Login("S-1001", "correct-horse")
	assert.ErrorIs(t, err, util.ErrAccountSuspended)
}

func TestChangePassword(t *testing.T) {
	svc := authFixture(t, true)

	require.NoError(t, svc.ChangePassword(7, "correct-horse", "new-password"))

	_, err := svc.Login("S-1001", "correct-horse")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login("S-1001", "new-password")
	assert.NoError(t, err)
}

func TestChangePasswordWrongOld(t *testing.T) {
	svc := authFixture(t, true)

	err := svc.ChangePassword(7, "wrong", "new-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestChangeRoleRefusesSelf(t *testing.T) {
	// the self check runs before any store access
	svc := NewUserService(nil, nil, nil)

	err := svc.ChangeRole(context.Background(), 7, 7, model.Staff)
	assert.ErrorIs(t, err, util.ErrSelfRoleChange)
}
