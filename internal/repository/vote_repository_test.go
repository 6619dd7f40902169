package repository

import (
	"net/http"
	"testing"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleVoteLifecycle(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	voter := seedUser(t, db, "voter")
	course := seedCourse(t, db, "CSC101")
	note := seedNote(t, db, course.ID, author.ID)

	votes := NewVoteRepository(db)

	// First upvote lands.
	result, err := votes.Toggle(voter.ID, model.VoteTargetNote, note.ID, model.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, VoteAdded, result.Action)
	assert.Equal(t, 1, result.Upvotes)
	assert.Equal(t, 0, result.Downvotes)

	fresh := reloadNote(t, db, note.ID)
	assert.Equal(t, 1, fresh.Upvotes)
	assert.Equal(t, 2, fresh.Score)
	assert.Equal(t, 2, reloadUser(t, db, author.ID).Reputation)

	// Voting the other way flips it to a single downvote.
	result, err = votes.Toggle(voter.ID, model.VoteTargetNote, note.ID, model.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, VoteChanged, result.Action)
	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 1, result.Downvotes)

	fresh = reloadNote(t, db, note.ID)
	assert.Equal(t, 0, fresh.Upvotes)
	assert.Equal(t, 1, fresh.Downvotes)
	assert.Equal(t, -1, fresh.Score)
	assert.Equal(t, -1, reloadUser(t, db, author.ID).Reputation)

	// Repeating the same vote withdraws it entirely.
	result, err = votes.Toggle(voter.ID, model.VoteTargetNote, note.ID, model.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, VoteRemoved, result.Action)
	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 0, result.Downvotes)

	var remaining int64
	require.NoError(t, db.Model(&model.Vote{}).Count(&remaining).Error)
	assert.Zero(t, remaining)

	fresh = reloadNote(t, db, note.ID)
	assert.Equal(t, 0, fresh.Upvotes)
	assert.Equal(t, 0, fresh.Downvotes)
	assert.Equal(t, 0, fresh.Score)
	assert.Equal(t, 0, reloadUser(t, db, author.ID).Reputation)
}

func TestNoteScoreCombinesAllCounters(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	voter := seedUser(t, db, "voter")
	course := seedCourse(t, db, "MTH202")
	note := seedNote(t, db, course.ID, author.ID)

	require.NoError(t, db.Model(note).Updates(map[string]interface{}{
		"save_count":    3,
		"comment_count": 2,
	}).Error)

	_, err := NewVoteRepository(db).Toggle(voter.ID, model.VoteTargetNote, note.ID, model.VoteUp)
	require.NoError(t, err)

	// score = upvotes*2 + saves + comments - downvotes
	fresh := reloadNote(t, db, note.ID)
	assert.Equal(t, 1*2+3+2-0, fresh.Score)
}

func TestRemoveVote(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author")
	voter := seedUser(t, db, "voter")
	course := seedCourse(t, db, "PHY105")
	note := seedNote(t, db, course.ID, author.ID)

	votes := NewVoteRepository(db)
	_, err := votes.Toggle(voter.ID, model.VoteTargetNote, note.ID, model.VoteUp)
	require.NoError(t, err)

	result, err := votes.Remove(voter.ID, model.VoteTargetNote, note.ID)
	require.NoError(t, err)
	assert.Equal(t, VoteRemoved, result.Action)
	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 0, reloadNote(t, db, note.ID).Upvotes)
	assert.Equal(t, 0, reloadUser(t, db, author.ID).Reputation)

	// Withdrawing again has nothing to remove.
	_, err = votes.Remove(voter.ID, model.VoteTargetNote, note.ID)
	var apiErr *util.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestRequestVotesDrivePriority(t *testing.T) {
	db := newTestDB(t)
	requester := seedUser(t, db, "requester")
	voterA := seedUser(t, db, "voter-a")
	voterB := seedUser(t, db, "voter-b")
	course := seedCourse(t, db, "CHM110")

	req := &model.MaterialRequest{
		CourseID:    course.ID,
		RequesterID: requester.ID,
		Type:        model.RequestTypeNote,
		Title:       "Thermochemistry notes",
		Status:      model.RequestStatusPending,
	}
	require.NoError(t, db.Create(req).Error)

	votes := NewVoteRepository(db)
	_, err := votes.Toggle(voterA.ID, model.VoteTargetRequest, req.ID, model.VoteUp)
	require.NoError(t, err)
	_, err = votes.Toggle(voterB.ID, model.VoteTargetRequest, req.ID, model.VoteUp)
	require.NoError(t, err)

	var fresh model.MaterialRequest
	require.NoError(t, db.First(&fresh, "id = ?", req.ID).Error)
	assert.Equal(t, 2, fresh.Upvotes)
	assert.Equal(t, 2, fresh.Priority)
}
