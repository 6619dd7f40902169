package controller

import (
	"net/http"

	"studyhive_backend/internal/service"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	storage *service.StorageService
}

func NewUploadController(storage *service.StorageService) *UploadController {
	return &UploadController{storage: storage}
}

type presignRequest struct {
	Kind     string `json:"kind" binding:"required,oneof=past-questions official-notes notes"`
	FileName string `json:"fileName" binding:"required"`
	FileSize int64  `json:"fileSize" binding:"required,min=1"`
}

// Presign godoc
// @Summary Get a presigned upload URL
// @Tags uploads
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body presignRequest true "File details"
// @Success 200 {object} util.Response
// @Router /uploads/presign [post]
func (ctl *UploadController) Presign(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	ticket, err := ctl.storage.PresignUpload(c.Request.Context(), req.Kind, req.FileName, req.FileSize)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Upload URL issued", ticket)
}
