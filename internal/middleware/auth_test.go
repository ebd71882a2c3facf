package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"quizdesk_backend/internal/config"
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/util"
	"quizdesk_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

type fakeRevocations struct {
	revokedAt map[uint]time.Time
	err       error
}

func (f *fakeRevocations) RevokedAt(ctx context.Context, userID uint) (time.Time, bool, error) {
	if f.err != nil {
		return time.Time{}, false, f.err
	}
	at, ok := f.revokedAt[userID]
	return at, ok, nil
}

func authTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func authRouter(cfg *config.Config, revocations TokenRevocationStore, roles ...model.UserRole) *gin.Engine {
	r := gin.New()
	grp := r.Group("/")
	grp.Use(AuthMiddleware(cfg, revocations))
	if len(roles) > 0 {
		grp.Use(RoleMiddleware(roles...))
	}
	grp.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func issueToken(t *testing.T, cfg *config.Config, role model.UserRole) string {
	t.Helper()
	user := &model.User{BaseModel: model.BaseModel{ID: 7}, RegNo: "S-1001", Role: role}
	token, err := util.GenerateJWT(user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	require.NoError(t, err)
	return token
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r := authRouter(authTestConfig(), nil)
	w := doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadToken(t *testing.T) {
	r := authRouter(authTestConfig(), nil)
	w := doRequest(r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	cfg := authTestConfig()
	r := authRouter(cfg, nil)
	w := doRequest(r, issueToken(t, cfg, model.Student))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRevokedToken(t *testing.T) {
	cfg := authTestConfig()
	token := issueToken(t, cfg, model.Student)

	// revocation recorded after the token was issued kills it
	revocations := &fakeRevocations{revokedAt: map[uint]time.Time{7: time.Now().Add(time.Minute)}}
	r := authRouter(cfg, revocations)
	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareTokenIssuedAfterRevocation(t *testing.T) {
	cfg := authTestConfig()

	revocations := &fakeRevocations{revokedAt: map[uint]time.Time{7: time.Now().Add(-time.Hour)}}
	r := authRouter(cfg, revocations)

	// fresh token postdates the revocation instant
	w := doRequest(r, issueToken(t, cfg, model.Student))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRevocationStoreOutageFailsOpen(t *testing.T) {
	cfg := authTestConfig()
	revocations := &fakeRevocations{err: assert.AnError}
	r := authRouter(cfg, revocations)

	w := doRequest(r, issueToken(t, cfg, model.Student))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		role     model.UserRole
		required model.UserRole
		want     int
	}{
		{name: "student on staff route", role: model.Student, required: model.Staff, want: http.StatusForbidden},
		{name: "staff on staff route", role: model.Staff, required: model.Staff, want: http.StatusOK},
		{name: "admin on staff route", role: model.Admin, required: model.Staff, want: http.StatusOK},
		{name: "staff on admin route", role: model.Staff, required: model.Admin, want: http.StatusForbidden},
		{name: "admin on admin route", role: model.Admin, required: model.Admin, want: http.StatusOK},
		{name: "student on student route", role: model.Student, required: model.Student, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := authTestConfig()
			r := authRouter(cfg, nil, tt.required)
			w := doRequest(r, issueToken(t, cfg, tt.role))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
