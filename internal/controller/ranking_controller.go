package controller

import (
	"quizdesk_backend/internal/service"
	"quizdesk_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RankingController struct {
	RankingService *service.RankingService
}

func NewRankingController(rankingService *service.RankingService) *RankingController {
	return &RankingController{RankingService: rankingService}
}

// Overall godoc
// @Summary Overall leaderboard
// @Description Users ordered by total graded marks; ties break on registration number. Includes the caller's own entry.
// @Tags rankings
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Router /api/rankings [get]
func (c *RankingController) Overall(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	rankings, err := c.RankingService.OverallRanking()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	var own *service.RankEntry
	for i := range rankings {
		if rankings[i].StudentID == user.UserID {
			own = &rankings[i]
			break
		}
	}

	util.Success(ctx, gin.H{
		"rankings": rankings,
		"own":      own,
	})
}
