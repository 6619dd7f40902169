package repository

import (
	"errors"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"gorm.io/gorm"
)

type PastQuestionRepository struct {
	db *gorm.DB
}

func NewPastQuestionRepository(db *gorm.DB) *PastQuestionRepository {
	return &PastQuestionRepository{db: db}
}

func (r *PastQuestionRepository) Create(pq *model.PastQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(pq).Error; err != nil {
			return err
		}
		return tx.Model(&model.Course{}).Where("id = ?", pq.CourseID).
			Update("past_question_count", gorm.Expr("past_question_count + 1")).Error
	})
}

func (r *PastQuestionRepository) FindByID(id string) (*model.PastQuestion, error) {
	var pq model.PastQuestion
	err := r.db.Preload("Course").Preload("UploadedBy").First(&pq, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pq, nil
}

// ListByCourse returns a course's past questions newest exam year first,
// optionally narrowed to one year or semester.
func (r *PastQuestionRepository) ListByCourse(courseID string, year int, semester string, page, limit int) ([]model.PastQuestion, int64, error) {
	query := r.db.Model(&model.PastQuestion{}).Where("course_id = ?", courseID)

	if year != 0 {
		query = query.Where("year = ?", year)
	}
	if semester != "" {
		query = query.Where("semester = ?", semester)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.PastQuestion
	err := query.Preload("UploadedBy").
		Order("year DESC, created_at DESC").
		Offset(util.Offset(page, limit)).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PastQuestionRepository) Delete(pq *model.PastQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(pq).Error; err != nil {
			return err
		}
		return tx.Model(&model.Course{}).Where("id = ?", pq.CourseID).
			Update("past_question_count", gorm.Expr("GREATEST(past_question_count - 1, 0)")).Error
	})
}

func (r *PastQuestionRepository) IncrementDownloads(id string) error {
	return r.db.Model(&model.PastQuestion{}).Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1")).Error
}

func (r *PastQuestionRepository) Search(q string, limit int) ([]model.PastQuestion, error) {
	like := "%" + q + "%"
	var items []model.PastQuestion
	err := r.db.Preload("Course").
		Where("title LIKE ?", like).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
