package service

import (
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
)

// CourseSummary is one dashboard card: the student's standing in a
// single course.
type CourseSummary struct {
	Course      model.Course `json:"course"`
	Submissions int64        `json:"submissions"`
	TotalMarks  int          `json:"totalMarks"`
}

type Dashboard struct {
	Courses          []CourseSummary    `json:"courses"`
	Submissions      []model.Submission `json:"submissions"`
	TotalSubmissions int64              `json:"totalSubmissions"`
	TotalMarks       int                `json:"totalMarks"`
}

type DashboardService struct {
	CourseRepo     *repository.CourseRepository
	SubmissionRepo *repository.SubmissionRepository
}

func NewDashboardService(courseRepo *repository.CourseRepository, submissionRepo *repository.SubmissionRepository) *DashboardService {
	return &DashboardService{
		CourseRepo:     courseRepo,
		SubmissionRepo: submissionRepo,
	}
}

// ForStudent aggregates the acting student's submissions and graded
// marks per course.
func (s *DashboardService) ForStudent(studentID uint) (*Dashboard, error) {
	courses, err := s.CourseRepo.FindAll()
	if err != nil {
		return nil, err
	}

	counts, err := s.SubmissionRepo.CountByCourseForStudent(studentID)
	if err != nil {
		return nil, err
	}
	sums, err := s.SubmissionRepo.MarksByCourseForStudent(studentID)
	if err != nil {
		return nil, err
	}

	subs, err := s.SubmissionRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{Submissions: subs}
	for _, course := range courses {
		summary := CourseSummary{
			Course:      course,
			Submissions: counts[course.ID],
			TotalMarks:  sums[course.ID],
		}
		dash.Courses = append(dash.Courses, summary)
		dash.TotalSubmissions += summary.Submissions
		dash.TotalMarks += summary.TotalMarks
	}
	return dash, nil
}
