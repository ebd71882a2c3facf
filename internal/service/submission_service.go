package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/util"

	"gorm.io/gorm"
)

// Narrow store interfaces so the workflow can be exercised against
// in-memory fakes; the gorm repositories satisfy them.
type quizStore interface {
	FindByID(id uint) (*model.Quiz, error)
}

type studentStore interface {
	FindByID(id uint) (*model.User, error)
}

type submissionStore interface {
	Upsert(sub *model.Submission) error
	FindByID(id uint) (*model.Submission, error)
	FindByQuiz(quizID uint) ([]model.Submission, error)
	FindByCourse(courseID uint) ([]model.Submission, error)
	FindByStudent(studentID uint) ([]model.Submission, error)
	UpdateMarks(submissionID uint, marks int) error
	UpdateRemarks(submissionID uint, remarks string) error
}

type blobStore interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

type submissionNotifier interface {
	QuizSubmitted(student *model.User, quiz *model.Quiz)
}

const (
	MinMark = 0
	MaxMark = 10
)

// SubmissionService implements the due-date-gated, upsert-on-resubmit
// submission workflow plus grading and remarks.
type SubmissionService struct {
	Quizzes     quizStore
	Students    studentStore
	Submissions submissionStore
	Blobs       blobStore
	Notifier    submissionNotifier
}

func NewSubmissionService(
	quizzes quizStore,
	students studentStore,
	submissions submissionStore,
	blobs blobStore,
	notifier submissionNotifier,
) *SubmissionService {
	return &SubmissionService{
		Quizzes:     quizzes,
		Students:    students,
		Submissions: submissions,
		Blobs:       blobs,
		Notifier:    notifier,
	}
}

// Submit accepts a student's quiz file. The deadline and file-type gates
// run before any state changes; a repeat submission overwrites the
// stored object and the row in place. Staff notification is dispatched
// off this goroutine and cannot fail the submission.
func (s *SubmissionService) Submit(ctx context.Context, studentID, quizID uint, filename string, file io.Reader, size int64, contentType string) (*model.Submission, error) {
	student, err := s.Students.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	quiz, err := s.Quizzes.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	now := time.Now()
	if !quiz.Open(now) {
		return nil, util.ErrDeadlineExpired
	}

	if !util.AllowedSubmissionFile(filename) {
		return nil, util.ErrInvalidFileType
	}

	objectName := submissionObjectName(student, quiz, filename)
	storedPath, err := s.Blobs.Upload(ctx, objectName, file, size, contentType)
	if err != nil {
		return nil, err
	}

	sub := &model.Submission{
		StudentID:   student.ID,
		CourseID:    quiz.CourseID,
		QuizID:      quiz.ID,
		File:        storedPath,
		SubmittedAt: now,
	}
	if err := s.Submissions.Upsert(sub); err != nil {
		return nil, err
	}

	go s.Notifier.QuizSubmitted(student, quiz)
	return sub, nil
}

// ListForQuiz returns every submission for a quiz. Before the deadline
// only staff may look; once the due date has passed the listing is open
// to all authenticated users.
func (s *SubmissionService) ListForQuiz(quizID uint, role model.UserRole) ([]model.Submission, error) {
	quiz, err := s.Quizzes.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if !role.AtLeastStaff() && quiz.Open(time.Now()) {
		return nil, util.ErrPermissionDenied
	}

	return s.Submissions.FindByQuiz(quizID)
}

// ListForCourse is the staff-only per-course listing; the role check is
// done at the route level.
func (s *SubmissionService) ListForCourse(courseID uint) ([]model.Submission, error) {
	return s.Submissions.FindByCourse(courseID)
}

// ListOwn returns the acting student's submissions.
func (s *SubmissionService) ListOwn(studentID uint) ([]model.Submission, error) {
	return s.Submissions.FindByStudent(studentID)
}

func (s *SubmissionService) Get(submissionID uint) (*model.Submission, error) {
	sub, err := s.Submissions.FindByID(submissionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	return sub, err
}

// Grade assigns a bounded mark. An out-of-range mark leaves the stored
// value untouched; a valid one overwrites any prior mark.
func (s *SubmissionService) Grade(submissionID uint, marks int) error {
	if marks < MinMark || marks > MaxMark {
		return util.ErrInvalidMark
	}
	if _, err := s.Get(submissionID); err != nil {
		return err
	}
	return s.Submissions.UpdateMarks(submissionID, marks)
}

// SetRemarks overwrites the free-text feedback.
func (s *SubmissionService) SetRemarks(submissionID uint, remarks string) error {
	if _, err := s.Get(submissionID); err != nil {
		return err
	}
	return s.Submissions.UpdateRemarks(submissionID, remarks)
}

// submissionObjectName builds the deterministic storage key
// <course_code>/<reg_no>-<course_code>-<quiz_code>.<ext>, so a
// resubmission overwrites the previous object.
func submissionObjectName(student *model.User, quiz *model.Quiz, filename string) string {
	courseCode := ""
	if quiz.Course != nil {
		courseCode = quiz.Course.Code
	}
	return fmt.Sprintf("%s/%s-%s-%s.%s",
		courseCode, student.RegNo, courseCode, quiz.Code, util.FileExt(filename))
}
