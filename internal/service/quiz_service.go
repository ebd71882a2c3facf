package service

import (
	"context"
	"errors"
	"io"
	"time"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo       *repository.QuizRepository
	CourseRepo     *repository.CourseRepository
	SubmissionRepo *repository.SubmissionRepository
	Storage        *StorageService
	Notifier       *NotificationService
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	courseRepo *repository.CourseRepository,
	submissionRepo *repository.SubmissionRepository,
	storage *StorageService,
	notifier *NotificationService,
) *QuizService {
	return &QuizService{
		QuizRepo:       quizRepo,
		CourseRepo:     courseRepo,
		SubmissionRepo: submissionRepo,
		Storage:        storage,
		Notifier:       notifier,
	}
}

// HelpFile is an optional attachment supplied with quiz create/update.
type HelpFile struct {
	Filename    string
	Reader      io.Reader
	Size        int64
	ContentType string
}

// Create validates code uniqueness, stores the optional help file, and
// fires the quiz-uploaded notification asynchronously on success.
func (s *QuizService) Create(ctx context.Context, quiz *model.Quiz, help *HelpFile) error {
	if _, err := s.QuizRepo.FindByCode(quiz.Code); err == nil {
		return util.ErrQuizCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	course, err := s.CourseRepo.FindByID(quiz.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	if help != nil {
		path, err := s.storeHelpFile(ctx, help)
		if err != nil {
			return err
		}
		quiz.HelpFile = path
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return err
	}

	quiz.Course = course
	go s.Notifier.QuizUploaded(quiz)
	return nil
}

func (s *QuizService) Get(quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

// ListForCourse returns the course's quizzes together with the set of
// quiz ids the acting student has already submitted, for the student
// quiz listing.
func (s *QuizService) ListForCourse(courseID, studentID uint) ([]model.Quiz, map[uint]bool, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrCourseNotFound
		}
		return nil, nil, err
	}

	quizzes, err := s.QuizRepo.FindByCourse(courseID)
	if err != nil {
		return nil, nil, err
	}

	subs, err := s.SubmissionRepo.FindByStudent(studentID)
	if err != nil {
		return nil, nil, err
	}
	submitted := make(map[uint]bool, len(subs))
	for _, sub := range subs {
		submitted[sub.QuizID] = true
	}

	return quizzes, submitted, nil
}

// QuizUpdate carries the editable quiz fields.
type QuizUpdate struct {
	Title       string
	Code        string
	Description string
	DueDate     time.Time
}

func (s *QuizService) Update(ctx context.Context, quizID uint, upd QuizUpdate, help *HelpFile) error {
	quiz, err := s.Get(quizID)
	if err != nil {
		return err
	}

	if upd.Code != quiz.Code {
		if _, err := s.QuizRepo.FindByCode(upd.Code); err == nil {
			return util.ErrQuizCodeTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	quiz.Title = upd.Title
	quiz.Code = upd.Code
	quiz.Description = upd.Description
	quiz.DueDate = upd.DueDate

	if help != nil {
		path, err := s.storeHelpFile(ctx, help)
		if err != nil {
			return err
		}
		quiz.HelpFile = path
	}

	return s.QuizRepo.Update(quiz)
}

func (s *QuizService) Delete(quizID uint) error {
	if _, err := s.Get(quizID); err != nil {
		return err
	}
	return s.QuizRepo.Delete(quizID)
}

// Help files share one upload directory; a random name avoids
// collisions between quizzes.
func (s *QuizService) storeHelpFile(ctx context.Context, help *HelpFile) (string, error) {
	name := "help_files/" + model.GenerateUUID()
	if ext := util.FileExt(help.Filename); ext != "" {
		name += "." + ext
	}
	return s.Storage.Upload(ctx, name, help.Reader, help.Size, help.ContentType)
}
