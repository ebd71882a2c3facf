package service

import (
	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
)

// ComplaintService records student complaints. Complaints are
// create-only: students file them, staff read them, nobody edits them.
type ComplaintService struct {
	ComplaintRepo *repository.ComplaintRepository
}

func NewComplaintService(complaintRepo *repository.ComplaintRepository) *ComplaintService {
	return &ComplaintService{ComplaintRepo: complaintRepo}
}

func (s *ComplaintService) Submit(studentID uint, body string) (*model.Complaint, error) {
	complaint := &model.Complaint{
		StudentID: studentID,
		Body:      body,
	}
	if err := s.ComplaintRepo.Create(complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

func (s *ComplaintService) ListAll() ([]model.Complaint, error) {
	return s.ComplaintRepo.FindAll()
}

func (s *ComplaintService) ListOwn(studentID uint) ([]model.Complaint, error) {
	return s.ComplaintRepo.FindByStudent(studentID)
}
