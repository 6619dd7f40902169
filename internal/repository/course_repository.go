package repository

import (
	"errors"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"gorm.io/gorm"
)

// CourseFilter narrows course listings. Zero values mean "no filter".
type CourseFilter struct {
	LevelID    uint
	Semester   string
	Department string
	Query      string
}

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts the course and bumps its level's course counter together.
func (r *CourseRepository) Create(course *model.Course) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(course).Error; err != nil {
			return err
		}
		return tx.Model(&model.Level{}).Where("id = ?", course.LevelID).
			Update("course_count", gorm.Expr("course_count + 1")).Error
	})
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.db.Preload("Level").First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByCode(code string) (*model.Course, error) {
	var course model.Course
	err := r.db.Where("code = ?", code).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) List(filter CourseFilter, page, limit int) ([]model.Course, int64, error) {
	query := r.db.Model(&model.Course{}).Preload("Level")

	if filter.LevelID != 0 {
		query = query.Where("level_id = ?", filter.LevelID)
	}
	if filter.Semester != "" {
		query = query.Where("semester = ?", filter.Semester)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where("code LIKE ? OR title LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	err := query.Order("code ASC").
		Offset(util.Offset(page, limit)).
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.db.Save(course).Error
}

// Delete removes the course and decrements its level counter. Attached
// material stays behind soft-deleted course IDs and is unreachable through
// the API.
func (r *CourseRepository) Delete(course *model.Course) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(course).Error; err != nil {
			return err
		}
		return tx.Model(&model.Level{}).Where("id = ?", course.LevelID).
			Update("course_count", gorm.Expr("GREATEST(course_count - 1, 0)")).Error
	})
}

// IncrementMaterialCount adjusts one of the per-course material counters
// atomically. Column must be one of the known counter columns.
func (r *CourseRepository) IncrementMaterialCount(tx *gorm.DB, courseID, column string, delta int) error {
	return tx.Model(&model.Course{}).Where("id = ?", courseID).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
}

func (r *CourseRepository) Search(q string, limit int) ([]model.Course, error) {
	like := "%" + q + "%"
	var courses []model.Course
	err := r.db.Preload("Level").
		Where("code LIKE ? OR title LIKE ? OR description LIKE ?", like, like, like).
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}
