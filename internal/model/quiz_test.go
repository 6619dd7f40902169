package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuizQuestionOptionList(t *testing.T) {
	raw, _ := json.Marshal([]string{"red", "green", "blue"})
	q := QuizQuestion{Options: raw}

	opts, err := q.OptionList()
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "green", "blue"}, opts)
}

func TestQuizQuestionOptionListEmpty(t *testing.T) {
	q := QuizQuestion{}
	opts, err := q.OptionList()
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestQuizAttemptAnswerList(t *testing.T) {
	answers := []AttemptAnswer{
		{QuestionID: "q1", SelectedIndex: 1, CorrectIndex: 1, Correct: true, PointsEarned: 2},
	}
	raw, _ := json.Marshal(answers)
	a := QuizAttempt{Answers: raw}

	decoded, err := a.AnswerList()
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.True(t, decoded[0].Correct)
	assert.Equal(t, 2, decoded[0].PointsEarned)
}
