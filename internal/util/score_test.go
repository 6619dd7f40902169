package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteScore(t *testing.T) {
	assert.Equal(t, 0, NoteScore(0, 0, 0, 0))
	assert.Equal(t, 2, NoteScore(1, 0, 0, 0))
	assert.Equal(t, -1, NoteScore(0, 1, 0, 0))
	assert.Equal(t, 1, NoteScore(0, 0, 1, 0))
	assert.Equal(t, 1, NoteScore(0, 0, 0, 1))

	// 3 upvotes, 1 downvote, 2 saves, 4 comments: 6 - 1 + 2 + 4
	assert.Equal(t, 11, NoteScore(3, 1, 2, 4))
}

func TestNoteScoreCanGoNegative(t *testing.T) {
	assert.Equal(t, -5, NoteScore(0, 5, 0, 0))
}

func TestReputation(t *testing.T) {
	assert.Equal(t, 0, Reputation(0, 0, 0, 0, 0))
	assert.Equal(t, 2, Reputation(1, 0, 0, 0, 0))
	assert.Equal(t, 1, Reputation(0, 0, 0, 0, 1))

	// 10 up, 3 down, 5 saves, 7 comments, 12 quiz correct
	assert.Equal(t, 20-3+5+7+12, Reputation(10, 3, 5, 7, 12))
}

func TestQuizPercent(t *testing.T) {
	assert.Equal(t, 100, QuizPercent(10, 10))
	assert.Equal(t, 50, QuizPercent(5, 10))
	assert.Equal(t, 0, QuizPercent(0, 10))

	// 2 of 3 rounds up to 67
	assert.Equal(t, 67, QuizPercent(2, 3))
	// 1 of 3 rounds to 33
	assert.Equal(t, 33, QuizPercent(1, 3))
	// 1 of 8 rounds to 13 (12.5 rounds half away from zero)
	assert.Equal(t, 13, QuizPercent(1, 8))
}

func TestQuizPercentZeroTotal(t *testing.T) {
	assert.Equal(t, 0, QuizPercent(0, 0))
	assert.Equal(t, 0, QuizPercent(5, 0))
}
