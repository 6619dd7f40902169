package repository

import (
	"net/http"
	"testing"
	"time"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedQuiz(t *testing.T, db *gorm.DB, courseID string, maxAttempts int) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		CourseID:    courseID,
		Title:       "Limits and continuity",
		Status:      model.QuizStatusPublished,
		MaxAttempts: maxAttempts,
		PassMark:    60,
	}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

func newAttempt(quizID string, userID uint, score int, passed bool) *model.QuizAttempt {
	return &model.QuizAttempt{
		QuizID:    quizID,
		UserID:    userID,
		Score:     score,
		Passed:    passed,
		StartedAt: time.Now(),
	}
}

func TestSubmitRoundsQuizStats(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	bola := seedUser(t, db, "bola")
	course := seedCourse(t, db, "MTH101")
	quiz := seedQuiz(t, db, course.ID, 0)

	attempts := NewQuizAttemptRepository(db)
	require.NoError(t, attempts.Submit(newAttempt(quiz.ID, alice.ID, 50, false), quiz.MaxAttempts, 1))
	require.NoError(t, attempts.Submit(newAttempt(quiz.ID, bola.ID, 67, true), quiz.MaxAttempts, 2))

	var fresh model.Quiz
	require.NoError(t, db.First(&fresh, "id = ?", quiz.ID).Error)
	assert.Equal(t, 2, fresh.AttemptCount)
	// mean of 50 and 67 is 58.5, stored as the rounded percentage
	assert.Equal(t, 59, fresh.AverageScore)
	assert.Equal(t, 67, fresh.HighestScore)
	assert.Equal(t, 50, fresh.LowestScore)
	assert.Equal(t, 50, fresh.PassRate)

	assert.Equal(t, 1, reloadUser(t, db, alice.ID).QuizCorrect)
	assert.Equal(t, 2, reloadUser(t, db, bola.ID).QuizCorrect)
}

func TestSubmitRejectsBeyondMaxAttempts(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")
	course := seedCourse(t, db, "MTH102")
	quiz := seedQuiz(t, db, course.ID, 1)

	attempts := NewQuizAttemptRepository(db)
	require.NoError(t, attempts.Submit(newAttempt(quiz.ID, alice.ID, 80, true), quiz.MaxAttempts, 4))

	err := attempts.Submit(newAttempt(quiz.ID, alice.ID, 90, true), quiz.MaxAttempts, 5)
	var apiErr *util.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Maximum attempts (1) reached", apiErr.Message)

	// The rejected attempt never landed.
	count, err := attempts.CountByQuizAndUser(quiz.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
