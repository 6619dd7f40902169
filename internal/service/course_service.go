package service

import (
	"strings"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/util"
)

type CreateCourseInput struct {
	Code        string `json:"code" binding:"required,min=2,max=20"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Semester    string `json:"semester" binding:"required,oneof=first second"`
	Units       int    `json:"units" binding:"omitempty,min=1,max=10"`
	LevelID     uint   `json:"levelId" binding:"required"`
	Department  string `json:"department" binding:"required"`
}

type UpdateCourseInput struct {
	Title       string `json:"title" binding:"omitempty,max=255"`
	Description string `json:"description"`
	Semester    string `json:"semester" binding:"omitempty,oneof=first second"`
	Units       int    `json:"units" binding:"omitempty,min=1,max=10"`
}

type CourseService struct {
	courses *repository.CourseRepository
	levels  *repository.LevelRepository
}

func NewCourseService(courses *repository.CourseRepository, levels *repository.LevelRepository) *CourseService {
	return &CourseService{courses: courses, levels: levels}
}

func (s *CourseService) Create(creatorID uint, input CreateCourseInput) (*model.Course, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))

	existing, err := s.courses.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.Conflict("A course with this code already exists")
	}

	level, err := s.levels.FindByID(input.LevelID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, util.BadRequest("Unknown academic level")
	}

	course := &model.Course{
		Code:        code,
		Title:       input.Title,
		Description: input.Description,
		Semester:    input.Semester,
		Units:       input.Units,
		LevelID:     input.LevelID,
		Department:  input.Department,
		CreatedByID: creatorID,
	}
	if err := s.courses.Create(course); err != nil {
		return nil, err
	}
	return s.courses.FindByID(course.ID)
}

func (s *CourseService) Get(id string) (*model.Course, error) {
	course, err := s.courses.FindByID(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.NotFound("Course not found")
	}
	return course, nil
}

func (s *CourseService) List(filter repository.CourseFilter, page, limit int) ([]model.Course, *util.Pagination, error) {
	courses, total, err := s.courses.List(filter, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return courses, util.NewPagination(page, limit, total), nil
}

func (s *CourseService) Update(id string, input UpdateCourseInput) (*model.Course, error) {
	course, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Semester != "" {
		course.Semester = input.Semester
	}
	if input.Units != 0 {
		course.Units = input.Units
	}

	if err := s.courses.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(id string) error {
	course, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.courses.Delete(course)
}
