package service

import (
	"testing"

	"quizdesk_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankingUser(id uint, regNo string) model.User {
	return model.User{BaseModel: model.BaseModel{ID: id}, RegNo: regNo}
}

func TestComputeRankingsOrdering(t *testing.T) {
	users := []model.User{
		rankingUser(1, "S-1001"),
		rankingUser(2, "S-1002"),
		rankingUser(3, "S-1003"),
	}
	totals := map[uint]int{1: 12, 2: 25, 3: 7}

	entries := computeRankings(users, totals, 30)
	require.Len(t, entries, 3)

	assert.Equal(t, uint(2), entries[0].StudentID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 25, entries[0].TotalMarks)

	assert.Equal(t, uint(1), entries[1].StudentID)
	assert.Equal(t, 2, entries[1].Rank)

	assert.Equal(t, uint(3), entries[2].StudentID)
	assert.Equal(t, 3, entries[2].Rank)

	for _, e := range entries {
		assert.Equal(t, 30, e.TotalPossible)
	}
}

func TestComputeRankingsTieBreak(t *testing.T) {
	// ties break on registration number ascending
	users := []model.User{
		rankingUser(5, "S-2005"),
		rankingUser(3, "S-2001"),
		rankingUser(4, "S-2003"),
	}
	totals := map[uint]int{3: 10, 4: 10, 5: 10}

	entries := computeRankings(users, totals, 10)
	require.Len(t, entries, 3)

	assert.Equal(t, "S-2001", entries[0].RegNo)
	assert.Equal(t, "S-2003", entries[1].RegNo)
	assert.Equal(t, "S-2005", entries[2].RegNo)
	assert.Equal(t, []int{1, 2, 3}, []int{entries[0].Rank, entries[1].Rank, entries[2].Rank})
}

func TestComputeRankingsUngradedUsersTotalZero(t *testing.T) {
	users := []model.User{
		rankingUser(1, "S-1001"),
		rankingUser(2, "S-1002"),
	}
	totals := map[uint]int{1: 3}

	entries := computeRankings(users, totals, 20)
	require.Len(t, entries, 2)

	assert.Equal(t, uint(1), entries[0].StudentID)
	assert.Equal(t, uint(2), entries[1].StudentID)
	assert.Equal(t, 0, entries[1].TotalMarks)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestComputeRankingsEmpty(t *testing.T) {
	entries := computeRankings(nil, nil, 0)
	assert.Empty(t, entries)
}
