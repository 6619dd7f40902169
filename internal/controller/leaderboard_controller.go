package controller

import (
	"strconv"

	"studyhive_backend/internal/service"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	leaderboard *service.LeaderboardService
}

func NewLeaderboardController(leaderboard *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboard: leaderboard}
}

// Top godoc
// @Summary Get the reputation leaderboard
// @Tags leaderboard
// @Produce json
// @Param department query string false "Department"
// @Param level query int false "Level ID"
// @Param limit query int false "Number of entries (default 10, max 100)"
// @Success 200 {object} util.Response
// @Router /leaderboard [get]
func (ctl *LeaderboardController) Top(c *gin.Context) {
	levelID, _ := strconv.ParseUint(c.Query("level"), 10, 32)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := ctl.leaderboard.Top(c.Request.Context(), c.Query("department"), uint(levelID), limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Leaderboard fetched", entries)
}

// Contributors godoc
// @Summary Get the top note contributors
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Number of entries (default 10, max 100)"
// @Success 200 {object} util.Response
// @Router /leaderboard/contributors [get]
func (ctl *LeaderboardController) Contributors(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := ctl.leaderboard.Contributors(c.Request.Context(), limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Top contributors fetched", entries)
}

// QuizChampions godoc
// @Summary Get the quiz champions board
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Number of entries (default 10, max 100)"
// @Success 200 {object} util.Response
// @Router /leaderboard/quiz [get]
func (ctl *LeaderboardController) QuizChampions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := ctl.leaderboard.QuizChampions(c.Request.Context(), limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Quiz champions fetched", entries)
}

// Mine godoc
// @Summary Get the caller's own rank
// @Tags leaderboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /leaderboard/me [get]
func (ctl *LeaderboardController) Mine(c *gin.Context) {
	userID, _ := util.GetUserID(c)
	rank, err := ctl.leaderboard.Mine(userID)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Rank fetched", rank)
}
