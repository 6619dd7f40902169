package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// cacheDropSpy stands in for the leaderboard cache and counts invalidations.
type cacheDropSpy struct {
	drops int
}

func (s *cacheDropSpy) Invalidate(ctx context.Context) {
	s.drops++
}

func newInvalidationTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Level{},
		&model.Course{},
		&model.CommunityNote{},
		&model.SavedNote{},
		&model.Vote{},
		&model.Comment{},
		&model.MaterialRequest{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.QuizAttempt{},
	))
	return db
}

func seedVotableNote(t *testing.T, db *gorm.DB) (author, voter *model.User, note *model.CommunityNote) {
	t.Helper()

	author = &model.User{Name: "author", Email: "author@uni.edu", Password: "x", Role: model.RoleStudent}
	voter = &model.User{Name: "voter", Email: "voter@uni.edu", Password: "x", Role: model.RoleStudent}
	require.NoError(t, db.Create(author).Error)
	require.NoError(t, db.Create(voter).Error)

	course := &model.Course{Code: "CSC301", Title: "Algorithms", Semester: model.SemesterFirst, LevelID: 1}
	require.NoError(t, db.Create(course).Error)

	note = &model.CommunityNote{
		CourseID: course.ID,
		Title:    "Dynamic programming walkthrough",
		FileKey:  "notes/dp.pdf",
		FileName: "dp.pdf",
		FileSize: 2048,
		AuthorID: author.ID,
	}
	require.NoError(t, db.Create(note).Error)
	return author, voter, note
}

func TestCastVoteDropsLeaderboardCache(t *testing.T) {
	db := newInvalidationTestDB(t)
	_, voter, note := seedVotableNote(t, db)

	spy := &cacheDropSpy{}
	svc := NewVoteService(
		repository.NewVoteRepository(db),
		repository.NewCommunityNoteRepository(db),
		repository.NewCommentRepository(db),
		repository.NewRequestRepository(db),
		spy,
	)

	_, err := svc.Cast(voter.ID, model.VoteTargetNote, note.ID, model.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, spy.drops)

	_, err = svc.Remove(voter.ID, model.VoteTargetNote, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, spy.drops)
}

func TestRejectedVoteKeepsLeaderboardCache(t *testing.T) {
	db := newInvalidationTestDB(t)
	author, _, note := seedVotableNote(t, db)

	spy := &cacheDropSpy{}
	svc := NewVoteService(
		repository.NewVoteRepository(db),
		repository.NewCommunityNoteRepository(db),
		repository.NewCommentRepository(db),
		repository.NewRequestRepository(db),
		spy,
	)

	// Self-votes are refused before anything is written.
	_, err := svc.Cast(author.ID, model.VoteTargetNote, note.ID, model.VoteUp)
	require.Error(t, err)
	assert.Zero(t, spy.drops)
}

func TestCommentWriteDropsLeaderboardCache(t *testing.T) {
	db := newInvalidationTestDB(t)
	_, commenter, note := seedVotableNote(t, db)

	spy := &cacheDropSpy{}
	svc := NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewCommunityNoteRepository(db),
		spy,
	)

	comment, err := svc.Create(commenter.ID, note.ID, CreateCommentInput{Body: "Great walkthrough."})
	require.NoError(t, err)
	assert.Equal(t, 1, spy.drops)

	require.NoError(t, svc.Delete(comment.ID, commenter.ID, model.RoleStudent))
	assert.Equal(t, 2, spy.drops)
}

func TestQuizSubmitDropsCacheAndRecordsStart(t *testing.T) {
	db := newInvalidationTestDB(t)

	student := &model.User{Name: "student", Email: "student@uni.edu", Password: "x", Role: model.RoleStudent}
	require.NoError(t, db.Create(student).Error)
	course := &model.Course{Code: "STA101", Title: "Statistics", Semester: model.SemesterFirst, LevelID: 1}
	require.NoError(t, db.Create(course).Error)

	quiz := &model.Quiz{
		CourseID: course.ID,
		Title:    "Probability basics",
		Status:   model.QuizStatusPublished,
		PassMark: 50,
	}
	require.NoError(t, db.Create(quiz).Error)
	question := &model.QuizQuestion{
		QuizID:       quiz.ID,
		Text:         "P(heads) for a fair coin?",
		Options:      json.RawMessage(`["0.25","0.5","1"]`),
		CorrectIndex: 1,
		Points:       1,
	}
	require.NoError(t, db.Create(question).Error)

	spy := &cacheDropSpy{}
	svc := NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewQuizAttemptRepository(db),
		repository.NewCourseRepository(db),
		spy,
	)

	attempt, err := svc.Submit(student.ID, quiz.ID, SubmitQuizInput{
		Answers: []AnswerInput{{QuestionID: question.ID, SelectedIndex: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, spy.drops)

	// Even an instant submission records when it started.
	assert.False(t, attempt.StartedAt.IsZero())
	assert.WithinDuration(t, time.Now(), attempt.StartedAt, time.Minute)
	assert.True(t, attempt.Passed)
}
