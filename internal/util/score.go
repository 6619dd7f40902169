package util

import "math"

// Scoring weights shared by note scores and user reputation.
const (
	UpvoteWeight      = 2
	DownvoteWeight    = 1
	SaveWeight        = 1
	CommentWeight     = 1
	QuizCorrectWeight = 1
)

// NoteScore ranks a community note by its engagement counters.
func NoteScore(upvotes, downvotes, saves, comments int) int {
	return upvotes*UpvoteWeight + saves*SaveWeight + comments*CommentWeight - downvotes*DownvoteWeight
}

// Reputation aggregates a user's contribution counters into a single score.
func Reputation(upvotes, downvotes, saves, comments, quizCorrect int) int {
	return upvotes*UpvoteWeight + saves*SaveWeight + comments*CommentWeight +
		quizCorrect*QuizCorrectWeight - downvotes*DownvoteWeight
}

// QuizPercent converts earned points to a rounded 0-100 score. A quiz with
// zero total points grades to zero rather than dividing by it.
func QuizPercent(pointsEarned, pointsTotal int) int {
	if pointsTotal <= 0 {
		return 0
	}
	return int(math.Round(float64(pointsEarned) / float64(pointsTotal) * 100))
}
