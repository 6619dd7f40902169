package repository

import (
	"testing"

	"studyhive_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentCreditsCommenterNotNoteAuthor(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "note-author")
	commenter := seedUser(t, db, "commenter")
	course := seedCourse(t, db, "CSC201")
	note := seedNote(t, db, course.ID, author.ID)

	comments := NewCommentRepository(db)
	require.NoError(t, comments.Create(&model.Comment{
		NoteID:   note.ID,
		AuthorID: commenter.ID,
		Body:     "This cleared up recursion for me.",
	}))

	// The comment pays the person who wrote it.
	freshCommenter := reloadUser(t, db, commenter.ID)
	assert.Equal(t, 1, freshCommenter.CommentsMade)
	assert.Equal(t, 1, freshCommenter.Reputation)

	// The note author gains nothing from someone else's comment.
	freshAuthor := reloadUser(t, db, author.ID)
	assert.Equal(t, 0, freshAuthor.CommentsMade)
	assert.Equal(t, 0, freshAuthor.Reputation)

	// The note itself still counts the comment toward its score.
	freshNote := reloadNote(t, db, note.ID)
	assert.Equal(t, 1, freshNote.CommentCount)
	assert.Equal(t, 1, freshNote.Score)
}

func TestDeleteCommentSettlesEveryCommenter(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "note-author")
	commenter := seedUser(t, db, "commenter")
	replier := seedUser(t, db, "replier")
	course := seedCourse(t, db, "CSC202")
	note := seedNote(t, db, course.ID, author.ID)

	comments := NewCommentRepository(db)
	top := &model.Comment{NoteID: note.ID, AuthorID: commenter.ID, Body: "Anyone have the slides?"}
	require.NoError(t, comments.Create(top))
	require.NoError(t, comments.Create(&model.Comment{
		NoteID:   note.ID,
		AuthorID: replier.ID,
		Body:     "Uploaded under week 4.",
		ParentID: &top.ID,
	}))

	assert.Equal(t, 1, reloadUser(t, db, commenter.ID).Reputation)
	assert.Equal(t, 1, reloadUser(t, db, replier.ID).Reputation)
	assert.Equal(t, 2, reloadNote(t, db, note.ID).CommentCount)

	// Deleting the thread takes the reply with it and settles both writers.
	require.NoError(t, comments.Delete(top))

	assert.Equal(t, 0, reloadUser(t, db, commenter.ID).CommentsMade)
	assert.Equal(t, 0, reloadUser(t, db, commenter.ID).Reputation)
	assert.Equal(t, 0, reloadUser(t, db, replier.ID).CommentsMade)
	assert.Equal(t, 0, reloadUser(t, db, replier.ID).Reputation)

	freshNote := reloadNote(t, db, note.ID)
	assert.Equal(t, 0, freshNote.CommentCount)
	assert.Equal(t, 0, freshNote.Score)
}
