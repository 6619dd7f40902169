package repository

import (
	"errors"
	"fmt"
	"math"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"gorm.io/gorm"
)

type QuizAttemptRepository struct {
	db *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{db: db}
}

// Submit stores a graded attempt. The attempt number, the max-attempts check,
// the quiz stat refresh and the user's quiz-correct counter all happen inside
// one transaction so two simultaneous submits cannot both land as the final
// allowed attempt.
func (r *QuizAttemptRepository) Submit(attempt *model.QuizAttempt, maxAttempts, correctDelta int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var prior int64
		err := tx.Model(&model.QuizAttempt{}).
			Where("quiz_id = ? AND user_id = ?", attempt.QuizID, attempt.UserID).
			Count(&prior).Error
		if err != nil {
			return err
		}
		if maxAttempts > 0 && prior >= int64(maxAttempts) {
			return util.BadRequest(fmt.Sprintf("Maximum attempts (%d) reached", maxAttempts))
		}

		attempt.AttemptNumber = int(prior) + 1
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		if err := refreshQuizStats(tx, attempt.QuizID); err != nil {
			return err
		}

		if err := tx.Model(&model.User{}).Where("id = ?", attempt.UserID).
			Update("quizzes_taken", gorm.Expr("quizzes_taken + 1")).Error; err != nil {
			return err
		}

		return addQuizCorrect(tx, attempt.UserID, correctDelta)
	})
}

// refreshQuizStats recomputes the aggregate columns from the attempts table.
// Average and pass rate are stored as rounded percentages.
func refreshQuizStats(tx *gorm.DB, quizID string) error {
	type stats struct {
		Count    int64
		Average  float64
		Highest  int
		Lowest   int
		PassRate float64
	}
	var s stats
	err := tx.Model(&model.QuizAttempt{}).
		Select("COUNT(*) AS count, COALESCE(AVG(score), 0) AS average, COALESCE(MAX(score), 0) AS highest, COALESCE(MIN(score), 0) AS lowest, COALESCE(AVG(passed) * 100, 0) AS pass_rate").
		Where("quiz_id = ?", quizID).
		Scan(&s).Error
	if err != nil {
		return err
	}

	return tx.Model(&model.Quiz{}).Where("id = ?", quizID).
		Updates(map[string]interface{}{
			"attempt_count": s.Count,
			"average_score": int(math.Round(s.Average)),
			"highest_score": s.Highest,
			"lowest_score":  s.Lowest,
			"pass_rate":     int(math.Round(s.PassRate)),
		}).Error
}

func (r *QuizAttemptRepository) FindByID(id string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.Preload("Quiz").First(&attempt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *QuizAttemptRepository) ListByQuizAndUser(quizID string, userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("attempt_number ASC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *QuizAttemptRepository) ListByUser(userID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	query := r.db.Model(&model.QuizAttempt{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attempts []model.QuizAttempt
	err := query.Preload("Quiz").
		Order("created_at DESC").
		Offset(util.Offset(page, limit)).
		Limit(limit).
		Find(&attempts).Error
	if err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

func (r *QuizAttemptRepository) CountByQuizAndUser(quizID string, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.QuizAttempt{}).
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Count(&count).Error
	return count, err
}
