package service

import (
	"bytes"
	"html/template"
	"net/mail"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/pkg/logger"
	"quizdesk_backend/pkg/mailer"
	"quizdesk_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// Notification event names, used for logging and metrics labels.
const (
	EventQuizUploaded      = "quiz_uploaded"
	EventQuizSubmitted     = "quiz_submitted"
	EventStudentRegistered = "student_registered"
)

type settingsStore interface {
	Get() (*model.EmailSettings, error)
	Update(settings *model.EmailSettings) error
}

type recipientStore interface {
	FindNotifiable(roles ...model.UserRole) ([]model.User, error)
}

// NotificationService fans out event emails. Every entry point is
// best-effort: gating, lookup, and transport failures are logged and
// swallowed so a notification can never fail the business operation
// that triggered it. Callers run the dispatch off the request goroutine.
type NotificationService struct {
	settings settingsStore
	users    recipientStore
	mailer   mailer.Mailer
}

func NewNotificationService(settings settingsStore, users recipientStore, m mailer.Mailer) *NotificationService {
	return &NotificationService{
		settings: settings,
		users:    users,
		mailer:   m,
	}
}

var (
	quizUploadedTmpl = template.Must(template.New(EventQuizUploaded).Parse(`
<p>A new quiz has been uploaded.</p>
<ul>
  <li>Course: {{.CourseTitle}} ({{.CourseCode}})</li>
  <li>Quiz: {{.QuizTitle}} ({{.QuizCode}})</li>
  <li>Due: {{.DueDate}}</li>
</ul>
<p>Log in to view the details and submit your work before the deadline.</p>`))

	quizSubmittedTmpl = template.Must(template.New(EventQuizSubmitted).Parse(`
<p>Student <b>{{.StudentName}}</b> ({{.RegNo}}) submitted quiz
<b>{{.QuizTitle}}</b> ({{.QuizCode}}).</p>
<p>The submission is ready for grading.</p>`))

	studentRegisteredTmpl = template.Must(template.New(EventStudentRegistered).Parse(`
<p>Welcome, {{.Name}}!</p>
<p>Your account has been created with registration number <b>{{.RegNo}}</b>.
You can now log in and view your courses.</p>`))
)

// QuizUploaded notifies every active student with an email address that
// a quiz was created. An empty recipient list is a no-op, not an error.
func (s *NotificationService) QuizUploaded(quiz *model.Quiz) {
	settings, err := s.settings.Get()
	if err != nil {
		s.logFailure(EventQuizUploaded, err)
		return
	}
	if !settings.QuizUploadEnabled {
		return
	}

	students, err := s.users.FindNotifiable(model.Student)
	if err != nil {
		s.logFailure(EventQuizUploaded, err)
		return
	}
	if len(students) == 0 {
		return
	}

	courseTitle, courseCode := "", ""
	if quiz.Course != nil {
		courseTitle, courseCode = quiz.Course.Title, quiz.Course.Code
	}
	body, err := render(quizUploadedTmpl, map[string]interface{}{
		"CourseTitle": courseTitle,
		"CourseCode":  courseCode,
		"QuizTitle":   quiz.Title,
		"QuizCode":    quiz.Code,
		"DueDate":     quiz.DueDate.Format("Mon, 02 Jan 2006 15:04"),
	})
	if err != nil {
		s.logFailure(EventQuizUploaded, err)
		return
	}

	s.deliver(EventQuizUploaded, &mailer.Message{
		To:       addresses(students),
		Subject:  "New quiz: " + quiz.Title,
		TextBody: "A new quiz has been uploaded: " + quiz.Title,
		HTMLBody: body,
	})
}

// QuizSubmitted notifies staff and admins that a submission arrived or
// was replaced.
func (s *NotificationService) QuizSubmitted(student *model.User, quiz *model.Quiz) {
	settings, err := s.settings.Get()
	if err != nil {
		s.logFailure(EventQuizSubmitted, err)
		return
	}
	if !settings.SubmissionEnabled {
		return
	}

	recipients, err := s.users.FindNotifiable(model.Staff, model.Admin)
	if err != nil {
		s.logFailure(EventQuizSubmitted, err)
		return
	}
	if len(recipients) == 0 {
		return
	}

	body, err := render(quizSubmittedTmpl, map[string]interface{}{
		"StudentName": student.FullName(),
		"RegNo":       student.RegNo,
		"QuizTitle":   quiz.Title,
		"QuizCode":    quiz.Code,
	})
	if err != nil {
		s.logFailure(EventQuizSubmitted, err)
		return
	}

	s.deliver(EventQuizSubmitted, &mailer.Message{
		To:       addresses(recipients),
		Subject:  "Quiz submission: " + quiz.Code + " by " + student.RegNo,
		TextBody: student.RegNo + " submitted " + quiz.Code,
		HTMLBody: body,
	})
}

// StudentRegistered welcomes a newly registered student. Short-circuits
// when the account has no email address.
func (s *NotificationService) StudentRegistered(user *model.User) {
	if user.Email == "" {
		return
	}

	settings, err := s.settings.Get()
	if err != nil {
		s.logFailure(EventStudentRegistered, err)
		return
	}
	if !settings.StudentRegistrationEnabled {
		return
	}

	body, err := render(studentRegisteredTmpl, map[string]interface{}{
		"Name":  user.FullName(),
		"RegNo": user.RegNo,
	})
	if err != nil {
		s.logFailure(EventStudentRegistered, err)
		return
	}

	s.deliver(EventStudentRegistered, &mailer.Message{
		To:       []mail.Address{{Name: user.FullName(), Address: user.Email}},
		Subject:  "Your account is ready",
		TextBody: "Your account " + user.RegNo + " has been created.",
		HTMLBody: body,
	})
}

// Settings exposes the singleton toggles for the admin surface.
func (s *NotificationService) Settings() (*model.EmailSettings, error) {
	return s.settings.Get()
}

func (s *NotificationService) UpdateSettings(settings *model.EmailSettings) error {
	return s.settings.Update(settings)
}

func (s *NotificationService) deliver(event string, msg *mailer.Message) {
	res := s.mailer.Send(msg)
	if res.Delivered {
		monitoring.NotificationCounter.WithLabelValues(event, "delivered").Inc()
		return
	}
	monitoring.NotificationCounter.WithLabelValues(event, "failed").Inc()
	s.logFailure(event, res.Err)
}

func (s *NotificationService) logFailure(event string, err error) {
	logger.Log.Error("notification dispatch failed",
		zap.String("event", event),
		zap.Error(err),
	)
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, data); err != nil {
		return "", err
	}
	return buff.String(), nil
}

func addresses(users []model.User) []mail.Address {
	addrs := make([]mail.Address, 0, len(users))
	for _, u := range users {
		addrs = append(addrs, mail.Address{Name: u.FullName(), Address: u.Email})
	}
	return addrs
}
