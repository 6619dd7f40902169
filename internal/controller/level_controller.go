package controller

import (
	"strconv"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LevelController struct {
	levels *repository.LevelRepository
}

func NewLevelController(levels *repository.LevelRepository) *LevelController {
	return &LevelController{levels: levels}
}

// List godoc
// @Summary List academic levels
// @Tags levels
// @Produce json
// @Success 200 {object} util.Response
// @Router /levels [get]
func (ctl *LevelController) List(c *gin.Context) {
	levels, err := ctl.levels.List()
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Levels fetched", levels)
}

type levelInput struct {
	Name        string `json:"name" binding:"required,min=2,max=20"`
	Description string `json:"description" binding:"max=255"`
}

// Create godoc
// @Summary Add an academic level
// @Tags levels
// @Accept json
// @Produce json
// @Param body body levelInput true "Level"
// @Success 201 {object} util.Response
// @Security BearerAuth
// @Router /levels [post]
func (ctl *LevelController) Create(c *gin.Context) {
	var input levelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.HandleError(c, util.BadRequest(err.Error()))
		return
	}

	existing, err := ctl.levels.FindByName(input.Name)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	if existing != nil {
		util.HandleError(c, util.Conflict("A level with this name already exists"))
		return
	}

	level := &model.Level{Name: input.Name, Description: input.Description}
	if err := ctl.levels.Create(level); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, "Level created", level)
}

// Update godoc
// @Summary Rename an academic level
// @Tags levels
// @Accept json
// @Produce json
// @Param id path int true "Level ID"
// @Param body body levelInput true "Level"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /levels/{id} [put]
func (ctl *LevelController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.HandleError(c, util.BadRequest("Invalid level ID"))
		return
	}

	var input levelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.HandleError(c, util.BadRequest(err.Error()))
		return
	}

	level, err := ctl.levels.FindByID(uint(id))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	if level == nil {
		util.HandleError(c, util.NotFound("Level not found"))
		return
	}

	if input.Name != level.Name {
		existing, err := ctl.levels.FindByName(input.Name)
		if err != nil {
			util.HandleError(c, err)
			return
		}
		if existing != nil {
			util.HandleError(c, util.Conflict("A level with this name already exists"))
			return
		}
	}

	level.Name = input.Name
	level.Description = input.Description
	if err := ctl.levels.Update(level); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Level updated", level)
}

// Delete godoc
// @Summary Remove an academic level
// @Tags levels
// @Produce json
// @Param id path int true "Level ID"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /levels/{id} [delete]
func (ctl *LevelController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.HandleError(c, util.BadRequest("Invalid level ID"))
		return
	}

	level, err := ctl.levels.FindByID(uint(id))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	if level == nil {
		util.HandleError(c, util.NotFound("Level not found"))
		return
	}

	courses, err := ctl.levels.CourseCount(uint(id))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	if courses > 0 {
		util.HandleError(c, util.Conflict("Level still has courses assigned to it"))
		return
	}

	if err := ctl.levels.Delete(uint(id)); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, "Level deleted", nil)
}
