package controller

import (
	"net/http"

	"studyhive_backend/internal/service"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type OfficialNoteController struct {
	notes *service.OfficialNoteService
}

func NewOfficialNoteController(notes *service.OfficialNoteService) *OfficialNoteController {
	return &OfficialNoteController{notes: notes}
}

// Create godoc
// @Summary Attach an uploaded official note to a course
// @Tags official-notes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body service.CreateOfficialNoteInput true "Official note details"
// @Success 201 {object} util.Response
// @Router /official-notes [post]
func (ctl *OfficialNoteController) Create(c *gin.Context) {
	var input service.CreateOfficialNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := util.GetUserID(c)
	note, err := ctl.notes.Create(c.Request.Context(), userID, input)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, "Official note added", note)
}

// ListByCourse godoc
// @Summary List a course's official notes
// @Tags official-notes
// @Produce json
// @Param id path string true "Course ID"
// @Param topic query string false "Topic"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} util.Response
// @Router /courses/{id}/official-notes [get]
func (ctl *OfficialNoteController) ListByCourse(c *gin.Context) {
	page, limit := util.ParsePageParams(c)

	items, pagination, err := ctl.notes.ListByCourse(c.Param("id"), c.Query("topic"), page, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Paginated(c, "Official notes fetched", items, pagination)
}

// Get godoc
// @Summary Get an official note
// @Tags official-notes
// @Produce json
// @Param id path string true "Official note ID"
// @Success 200 {object} util.Response
// @Router /official-notes/{id} [get]
func (ctl *OfficialNoteController) Get(c *gin.Context) {
	note, err := ctl.notes.Get(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Official note fetched", note)
}

// Download godoc
// @Summary Get a time-limited download URL
// @Tags official-notes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Official note ID"
// @Success 200 {object} util.Response
// @Router /official-notes/{id}/download [get]
func (ctl *OfficialNoteController) Download(c *gin.Context) {
	url, err := ctl.notes.DownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Download URL issued", gin.H{"downloadUrl": url})
}

// Delete godoc
// @Summary Delete an official note
// @Tags official-notes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Official note ID"
// @Success 200 {object} util.Response
// @Router /official-notes/{id} [delete]
func (ctl *OfficialNoteController) Delete(c *gin.Context) {
	if err := ctl.notes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Official note deleted", nil)
}
