package service

import (
	"sort"

	"quizdesk_backend/internal/model"
	"quizdesk_backend/internal/repository"
)

// RankEntry is one row of the overall leaderboard.
type RankEntry struct {
	StudentID     uint   `json:"studentId"`
	RegNo         string `json:"regNo"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	TotalMarks    int    `json:"totalMarks"`
	TotalPossible int    `json:"totalPossible"`
	Rank          int    `json:"rank"`
}

type RankingService struct {
	UserRepo       *repository.UserRepository
	SubmissionRepo *repository.SubmissionRepository
	QuizRepo       *repository.QuizRepository
}

func NewRankingService(
	userRepo *repository.UserRepository,
	submissionRepo *repository.SubmissionRepository,
	quizRepo *repository.QuizRepository,
) *RankingService {
	return &RankingService{
		UserRepo:       userRepo,
		SubmissionRepo: submissionRepo,
		QuizRepo:       quizRepo,
	}
}

// OverallRanking sums every user's graded marks across all submissions.
// The ceiling is a fixed 10 per quiz regardless of grading progress.
func (s *RankingService) OverallRanking() ([]RankEntry, error) {
	users, err := s.UserRepo.FindAll()
	if err != nil {
		return nil, err
	}

	rows, err := s.SubmissionRepo.TotalMarksByStudent()
	if err != nil {
		return nil, err
	}
	totals := make(map[uint]int, len(rows))
	for _, row := range rows {
		totals[row.StudentID] = row.TotalMarks
	}

	quizCount, err := s.QuizRepo.Count()
	if err != nil {
		return nil, err
	}

	return computeRankings(users, totals, int(quizCount)*MaxMark), nil
}

// RankFor returns the caller's own leaderboard entry, or nil when the
// user is not ranked.
func (s *RankingService) RankFor(userID uint) (*RankEntry, error) {
	rankings, err := s.OverallRanking()
	if err != nil {
		return nil, err
	}
	for i := range rankings {
		if rankings[i].StudentID == userID {
			return &rankings[i], nil
		}
	}
	return nil, nil
}

// computeRankings orders users by total mark sum descending. Ties are
// broken by registration number ascending so the ordering is
// deterministic; rank is the 1-based position, users with no graded
// submission total 0 and land at the bottom.
func computeRankings(users []model.User, totals map[uint]int, totalPossible int) []RankEntry {
	entries := make([]RankEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, RankEntry{
			StudentID:     u.ID,
			RegNo:         u.RegNo,
			FirstName:     u.FirstName,
			LastName:      u.LastName,
			TotalMarks:    totals[u.ID],
			TotalPossible: totalPossible,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalMarks != entries[j].TotalMarks {
			return entries[i].TotalMarks > entries[j].TotalMarks
		}
		return entries[i].RegNo < entries[j].RegNo
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
