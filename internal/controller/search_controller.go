package controller

import (
	"studyhive_backend/internal/service"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	search *service.SearchService
}

func NewSearchController(search *service.SearchService) *SearchController {
	return &SearchController{search: search}
}

// Search godoc
// @Summary Search across courses and materials
// @Tags search
// @Produce json
// @Param q query string true "Search query, at least 2 characters"
// @Param type query string false "Result type (all, courses, past-questions, official-notes, notes, quizzes)"
// @Success 200 {object} util.Response
// @Router /search [get]
func (ctl *SearchController) Search(c *gin.Context) {
	results, err := ctl.search.Search(c.Query("q"), c.Query("type"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Search complete", results)
}
