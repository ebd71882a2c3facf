package service

import (
	"errors"
	"os"
	"testing"
	"time"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/pkg/logger"
	"quizdesk_backend/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

type fakeSettingsStore struct {
	settings model.EmailSettings
	err      error
	updated  *model.EmailSettings
}

func (f *fakeSettingsStore) Get() (*model.EmailSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	cp := f.settings
	return &cp, nil
}

func (f *fakeSettingsStore) Update(settings *model.EmailSettings) error {
	f.updated = settings
	return nil
}

type fakeRecipientStore struct {
	byRole map[model.UserRole][]model.User
	err    error
}

func (f *fakeRecipientStore) FindNotifiable(roles ...model.UserRole) ([]model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.User
	for _, r := range roles {
		out = append(out, f.byRole[r]...)
	}
	return out, nil
}

func allEnabled() *fakeSettingsStore {
	return &fakeSettingsStore{settings: model.EmailSettings{
		QuizUploadEnabled:          true,
		SubmissionEnabled:          true,
		StudentRegistrationEnabled: true,
	}}
}

func notifUser(id uint, regNo, email string, role model.UserRole) model.User {
	return model.User{
		BaseModel: model.BaseModel{ID: id},
		RegNo:     regNo,
		FirstName: "Test",
		LastName:  regNo,
		Email:     email,
		Role:      role,
		Active:    true,
	}
}

func notifQuiz() *model.Quiz {
	return &model.Quiz{
		BaseModel: model.BaseModel{ID: 1},
		Title:     "Graph Traversal",
		Code:      "QZ3",
		CourseID:  1,
		Course:    &model.Course{BaseModel: model.BaseModel{ID: 1}, Title: "Algorithms", Code: "CS201"},
		DueDate:   time.Now().Add(48 * time.Hour),
	}
}

func TestQuizUploadedMailsStudents(t *testing.T) {
	recorder := &mailer.RecorderMailer{}
	users := &fakeRecipientStore{byRole: map[model.UserRole][]model.User{
		model.Student: {
			notifUser(1, "S-1001", "s1001@example.com", model.Student),
			notifUser(2, "S-1002", "s1002@example.com", model.Student),
		},
	}}
	svc := NewNotificationService(allEnabled(), users, recorder)

	svc.QuizUploaded(notifQuiz())

	sent := recorder.Sent()
	require.Len(t, sent, 1)
	assert.Len(t, sent[0].To, 2)
	assert.Contains(t, sent[0].Subject, "Graph Traversal")
	assert.Contains(t, sent[0].HTMLBody, "CS201")
}

func TestQuizUploadedDisabledSendsNothing(t *testing.T) {
	recorder := &mailer.RecorderMailer{}
	settings := allEnabled()
	settings.settings.QuizUploadEnabled = false
	users := &fakeRecipientStore{byRole: map[model.UserRole][]model.User{
		model.Student: {notifUser(1, "S-1001", "s1001@example.com", model.Student)},
	}}
	svc := NewNotificationService(settings, users, recorder)

	svc.QuizUploaded(notifQuiz())

	assert.Empty(t, recorder.Sent())
}

func TestQuizUploadedNoRecipientsIsNoop(t *testing.T) {
	recorder := &mailer.RecorderMailer{}
	svc := NewNotificationService(allEnabled(), &fakeRecipientStore{byRole: map[model.UserRole][]model.User{}}, recorder)

	svc.QuizUploaded(notifQuiz())

	assert.Empty(t, recorder.Sent())
}

func TestQuizSubmittedMailsStaffAndAdmins(t *testing.T) {
	recorder := &mailer.RecorderMailer{}
	users := &fakeRecipientStore{byRole: map[model.UserRole][]model.User{
		model.Staff: {notifUser(3, "T-01", "t01@example.com", model.Staff)},
		model.Admin: {notifUser(4, "A-01", "a01@example.com", model.Admin)},
	}}
	svc := NewNotificationService(allEnabled(), users, recorder)

	student := notifUser(1, "S-1001", "s1001@example.com", model.Student)
	svc.QuizSubmitted(&student, notifQuiz())

	sent := recorder.Sent()
	require.Len(t, sent, 1)
	assert.Len(t, sent[0].To, 2)
	assert.Contains(t, sent[0].Subject, "S-1001")
	assert.Contains(t, sent[0].HTMLBody, "QZ3")
}

func TestQuizSubmittedDisabledSendsNothing(t *testing.T) {
	recorder := &mailer.RecorderMailer{}
	settings := allEnabled()
	settings.settings.SubmissionEnabled = false
	users := &fakeRecipientStore{byRole: map[model.UserRole][]model.User{
		model.Staff: {notifUser(3, "T-01", "t01@example.com", model.Staff)},
	}}
	svc := NewNotificationService(settings, users, recorder)

	student := notifUser(1, "S-1001", "s1001@example.com", model.Student)
	svc.QuizSubmitted(&student, notifQuiz())

	assert.Empty(t, recorder.Sent())
}

func TestStudentRegisteredWelcomeMail(t *testing.T) {
	recorder := &mailer.RecorderMailer{}
	svc := NewNotificationService(allEnabled(), &fakeRecipientStore{}, recorder)

	student := notifUser(1, "S-1001", "s1001@example.com", model.Student)
	svc.StudentRegistered(&student)

	sent := recorder.Sent()
	require.Len(t, sent, 1)
	require.Len(t, sent[0].To, 1)
	assert.Equal(t, "s1001@example.com", sent[0].To[0].Address)
	assert.Contains(t, sent[0].HTMLBody, "S-1001")
}

func TestStudentRegisteredNoEmailShortCircuits(t *testing.T) {
	recorder := &mailer.RecorderMailer{}
	settings := allEnabled()
	svc := NewNotificationService(settings, &fakeRecipientStore{}, recorder)

	student := notifUser(1, "S-1001", "", model.Student)
	svc.StudentRegistered(&student)

	assert.Empty(t, recorder.Sent())
}

func TestStudentRegisteredDisabledSendsNothing(t *testing.T) {
	recorder := &mailer.RecorderMailer{}
	settings := allEnabled()
	settings.settings.StudentRegistrationEnabled = false
	svc := NewNotificationService(settings, &fakeRecipientStore{}, recorder)

	student := notifUser(1, "S-1001", "s1001@example.com", model.Student)
	svc.StudentRegistered(&student)

	assert.Empty(t, recorder.Sent())
}

func TestTransportFailureIsSwallowed(t *testing.T) {
	recorder := &mailer.RecorderMailer{FailWith: errors.New("smtp down")}
	users := &fakeRecipientStore{byRole: map[model.UserRole][]model.User{
		model.Student: {notifUser(1, "S-1001", "s1001@example.com", model.Student)},
	}}
	svc := NewNotificationService(allEnabled(), users, recorder)

	// must not panic or surface the transport error
	svc.QuizUploaded(notifQuiz())

	assert.Len(t, recorder.Sent(), 1)
}

func TestSettingsStoreFailureIsSwallowed(t *testing.T) {
	recorder := &mailer.RecorderMailer{}
	settings := &fakeSettingsStore{err: errors.New("db down")}
	svc := NewNotificationService(settings, &fakeRecipientStore{}, recorder)

	svc.QuizUploaded(notifQuiz())
	student := notifUser(1, "S-1001", "s1001@example.com", model.Student)
	svc.QuizSubmitted(&student, notifQuiz())
	svc.StudentRegistered(&student)

	assert.Empty(t, recorder.Sent())
}

func TestUpdateSettingsPassesThrough(t *testing.T) {
	settings := allEnabled()
	svc := NewNotificationService(settings, &fakeRecipientStore{}, &mailer.RecorderMailer{})

	want := &model.EmailSettings{QuizUploadEnabled: false, SubmissionEnabled: true, StudentRegistrationEnabled: false}
	require.NoError(t, svc.UpdateSettings(want))
	assert.Equal(t, want, settings.updated)
}
