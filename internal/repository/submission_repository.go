package repository

import (
	"quizdesk_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

// Upsert inserts the submission or, when a row for (student, quiz)
// already exists, overwrites its file and timestamp in place. The
// composite unique index makes this a single atomic statement, so two
// concurrent submissions for the same pair cannot produce duplicate
// rows or a lost update.
func (r *SubmissionRepository) Upsert(sub *model.Submission) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "quiz_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"file", "submitted_at", "updated_at"}),
	}).Create(sub).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.Preload("Student").Preload("Quiz").First(&sub, id).Error
	return &sub, err
}

func (r *SubmissionRepository) FindByStudentAndQuiz(studentID, quizID uint) (*model.Submission, error) {
	var sub model.Submission
	err := r.DB.
		Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		First(&sub).Error
	return &sub, err
}

func (r *SubmissionRepository) FindByQuiz(quizID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Preload("Student").
		Where("quiz_id = ?", quizID).
		Order("submitted_at ASC").
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) FindByCourse(courseID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Preload("Student").Preload("Quiz").
		Where("course_id = ?", courseID).
		Order("submitted_at ASC").
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) FindByStudent(studentID uint) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Preload("Quiz").Preload("Course").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *SubmissionRepository) UpdateMarks(submissionID uint, marks int) error {
	return r.DB.Model(&model.Submission{}).
		Where("id = ?", submissionID).
		Update("marks", marks).
		Error
}

func (r *SubmissionRepository) UpdateRemarks(submissionID uint, remarks string) error {
	return r.DB.Model(&model.Submission{}).
		Where("id = ?", submissionID).
		Update("remarks", remarks).
		Error
}

// StudentTotal is one row of the graded-marks aggregate.
type StudentTotal struct {
	StudentID  uint
	TotalMarks int
}

// TotalMarksByStudent sums graded marks per student. Students without a
// graded submission do not appear in the result.
func (r *SubmissionRepository) TotalMarksByStudent() ([]StudentTotal, error) {
	var totals []StudentTotal
	err := r.DB.Model(&model.Submission{}).
		Select("student_id, SUM(marks) AS total_marks").
		Where("marks IS NOT NULL").
		Group("student_id").
		Scan(&totals).Error
	return totals, err
}

// CountByCourseForStudent returns the number of submissions the student
// has per course.
func (r *SubmissionRepository) CountByCourseForStudent(studentID uint) (map[uint]int64, error) {
	type row struct {
		CourseID uint
		N        int64
	}
	var rows []row
	err := r.DB.Model(&model.Submission{}).
		Select("course_id, COUNT(*) AS n").
		Where("student_id = ?", studentID).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CourseID] = r.N
	}
	return counts, nil
}

// MarksByCourseForStudent sums the student's graded marks per course.
func (r *SubmissionRepository) MarksByCourseForStudent(studentID uint) (map[uint]int, error) {
	type row struct {
		CourseID uint
		Total    int
	}
	var rows []row
	err := r.DB.Model(&model.Submission{}).
		Select("course_id, SUM(marks) AS total").
		Where("student_id = ? AND marks IS NOT NULL", studentID).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sums := make(map[uint]int, len(rows))
	for _, r := range rows {
		sums[r.CourseID] = r.Total
	}
	return sums, nil
}
