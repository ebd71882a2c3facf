package service

import (
	"errors"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
	"quizdesk_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
}

func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{CourseRepo: courseRepo}
}

func (s *CourseService) Create(course *model.Course) error {
	if _, err := s.CourseRepo.FindByCode(course.Code); err == nil {
		return util.ErrCourseCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return s.CourseRepo.Create(course)
}

func (s *CourseService) Get(courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CourseService) List() ([]model.Course, error) {
	return s.CourseRepo.FindAll()
}

func (s *CourseService) Update(courseID uint, title, code string) error {
	course, err := s.Get(courseID)
	if err != nil {
		return err
	}

	if code != course.Code {
		if _, err := s.CourseRepo.FindByCode(code); err == nil {
			return util.ErrCourseCodeTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	course.Title = title
	course.Code = code
	return s.CourseRepo.Update(course)
}

// Delete removes the course and, via the cascade, its quizzes and their
// submissions.
func (s *CourseService) Delete(courseID uint) error {
	if _, err := s.Get(courseID); err != nil {
		return err
	}
	return s.CourseRepo.Delete(courseID)
}
