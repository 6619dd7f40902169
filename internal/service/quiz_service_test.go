package service

import (
	"encoding/json"
	"testing"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeQuestion(id string, options []string, correct, points int) model.QuizQuestion {
	raw, _ := json.Marshal(options)
	q := model.QuizQuestion{
		Options:      raw,
		CorrectIndex: correct,
		Points:       points,
	}
	q.ID = id
	return q
}

func TestGradeAnswersAllCorrect(t *testing.T) {
	questions := []model.QuizQuestion{
		makeQuestion("q1", []string{"a", "b", "c"}, 0, 2),
		makeQuestion("q2", []string{"x", "y"}, 1, 3),
	}
	answers := []AnswerInput{
		{QuestionID: "q1", SelectedIndex: 0},
		{QuestionID: "q2", SelectedIndex: 1},
	}

	graded, earned, total, correct, err := gradeAnswers(questions, answers)
	require.NoError(t, err)
	assert.Equal(t, 5, earned)
	assert.Equal(t, 5, total)
	assert.Equal(t, 2, correct)
	assert.Len(t, graded, 2)
	assert.True(t, graded[0].Correct)
	assert.Equal(t, 2, graded[0].PointsEarned)
}

func TestGradeAnswersPartial(t *testing.T) {
	questions := []model.QuizQuestion{
		makeQuestion("q1", []string{"a", "b"}, 0, 1),
		makeQuestion("q2", []string{"a", "b"}, 0, 1),
		makeQuestion("q3", []string{"a", "b"}, 1, 1),
	}
	answers := []AnswerInput{
		{QuestionID: "q1", SelectedIndex: 0},
		{QuestionID: "q2", SelectedIndex: 1},
		{QuestionID: "q3", SelectedIndex: 0},
	}

	graded, earned, total, correct, err := gradeAnswers(questions, answers)
	require.NoError(t, err)
	assert.Equal(t, 1, earned)
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, correct)
	assert.False(t, graded[1].Correct)
	assert.Equal(t, 0, graded[1].PointsEarned)
	// The graded record keeps the answer key for review.
	assert.Equal(t, 0, graded[1].CorrectIndex)

	assert.Equal(t, 33, util.QuizPercent(earned, total))
}

func TestGradeAnswersUnknownQuestion(t *testing.T) {
	questions := []model.QuizQuestion{
		makeQuestion("q1", []string{"a", "b"}, 0, 1),
	}
	answers := []AnswerInput{
		{QuestionID: "nope", SelectedIndex: 0},
	}

	_, _, _, _, err := gradeAnswers(questions, answers)
	require.Error(t, err)
	apiErr, ok := err.(*util.ApiError)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestGradeAnswersDuplicateAnswer(t *testing.T) {
	questions := []model.QuizQuestion{
		makeQuestion("q1", []string{"a", "b"}, 0, 1),
		makeQuestion("q2", []string{"a", "b"}, 0, 1),
	}
	answers := []AnswerInput{
		{QuestionID: "q1", SelectedIndex: 0},
		{QuestionID: "q1", SelectedIndex: 1},
	}

	_, _, _, _, err := gradeAnswers(questions, answers)
	assert.Error(t, err)
}

func TestGradeAnswersOutOfRangeOption(t *testing.T) {
	questions := []model.QuizQuestion{
		makeQuestion("q1", []string{"a", "b"}, 0, 1),
	}

	for _, idx := range []int{-1, 2, 99} {
		_, _, _, _, err := gradeAnswers(questions, []AnswerInput{
			{QuestionID: "q1", SelectedIndex: idx},
		})
		assert.Error(t, err, "index %d should be rejected", idx)
	}
}
