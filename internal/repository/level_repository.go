package repository

import (
	"errors"

	"studyhive_backend/internal/model"

	"gorm.io/gorm"
)

type LevelRepository struct {
	db *gorm.DB
}

func NewLevelRepository(db *gorm.DB) *LevelRepository {
	return &LevelRepository{db: db}
}

func (r *LevelRepository) List() ([]model.Level, error) {
	var levels []model.Level
	if err := r.db.Order("name ASC").Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *LevelRepository) FindByID(id uint) (*model.Level, error) {
	var level model.Level
	err := r.db.First(&level, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *LevelRepository) FindByName(name string) (*model.Level, error) {
	var level model.Level
	err := r.db.Where("name = ?", name).First(&level).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *LevelRepository) Create(level *model.Level) error {
	return r.db.Create(level).Error
}

func (r *LevelRepository) Update(level *model.Level) error {
	return r.db.Save(level).Error
}

func (r *LevelRepository) Delete(id uint) error {
	return r.db.Delete(&model.Level{}, id).Error
}

func (r *LevelRepository) CourseCount(id uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Course{}).Where("level_id = ?", id).Count(&count).Error
	return count, err
}

func (r *LevelRepository) IncrementCourseCount(tx *gorm.DB, id uint, delta int) error {
	return tx.Model(&model.Level{}).Where("id = ?", id).
		Update("course_count", gorm.Expr("course_count + ?", delta)).Error
}
