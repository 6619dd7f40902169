package repository

import (
	"errors"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"gorm.io/gorm"
)

type QuizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// Create inserts the quiz with its questions and bumps the course counter.
func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		return tx.Model(&model.Course{}).Where("id = ?", quiz.CourseID).
			Update("quiz_count", gorm.Expr("quiz_count + 1")).Error
	})
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Preload("Course").Preload("CreatedBy").
		First(&quiz, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// ListByCourse pages a course's quizzes. Students only ever see published
// ones; pass includeUnpublished for rep and admin views.
func (r *QuizRepository) ListByCourse(courseID, topic, difficulty string, includeUnpublished bool, page, limit int) ([]model.Quiz, int64, error) {
	query := r.db.Model(&model.Quiz{}).Where("course_id = ?", courseID)

	if !includeUnpublished {
		query = query.Where("status = ?", model.QuizStatusPublished)
	}
	if topic != "" {
		query = query.Where("topic = ?", topic)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quizzes []model.Quiz
	err := query.Preload("CreatedBy").
		Order("created_at DESC").
		Offset(util.Offset(page, limit)).
		Limit(limit).
		Find(&quizzes).Error
	if err != nil {
		return nil, 0, err
	}
	return quizzes, total, nil
}

func (r *QuizRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&model.Quiz{}).Where("id = ?", id).Update("status", status).Error
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.db.Save(quiz).Error
}

// ReplaceQuestions swaps a quiz's question set in one transaction.
func (r *QuizRepository) ReplaceQuestions(quizID string, questions []model.QuizQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("quiz_id = ?", quizID).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quizID
		}
		if len(questions) == 0 {
			return nil
		}
		return tx.Create(&questions).Error
	})
}

func (r *QuizRepository) Delete(quiz *model.Quiz) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(quiz).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("quiz_id = ?", quiz.ID).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.QuizAttempt{}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Course{}).Where("id = ?", quiz.CourseID).
			Update("quiz_count", gorm.Expr("GREATEST(quiz_count - 1, 0)")).Error
	})
}

func (r *QuizRepository) Search(q string, limit int) ([]model.Quiz, error) {
	like := "%" + q + "%"
	var quizzes []model.Quiz
	err := r.db.Preload("Course").
		Where("status = ? AND (title LIKE ? OR topic LIKE ?)", model.QuizStatusPublished, like, like).
		Limit(limit).
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}
