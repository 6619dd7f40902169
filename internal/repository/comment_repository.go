package repository

import (
	"errors"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts the comment and settles the note's comment count and score
// plus the commenter's own counter in one transaction.
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if err := settleNoteComments(tx, comment.NoteID); err != nil {
			return err
		}
		return refreshCommenterCount(tx, comment.AuthorID)
	})
}

func (r *CommentRepository) FindByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Preload("Author").First(&comment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByNote pages through top-level comments, replies preloaded oldest
// first.
func (r *CommentRepository) ListByNote(noteID string, page, limit int) ([]model.Comment, int64, error) {
	query := r.db.Model(&model.Comment{}).
		Where("note_id = ? AND parent_id IS NULL", noteID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Preload("Author").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Preload("Author")
		}).
		Order("created_at DESC").
		Offset(util.Offset(page, limit)).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// Delete removes the comment, its replies and their votes, then settles the
// note counters and every affected commenter's own counter.
func (r *CommentRepository) Delete(comment *model.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ids := []string{comment.ID}
		commenters := map[uint]struct{}{comment.AuthorID: {}}

		var replies []model.Comment
		if err := tx.Select("id", "author_id").Where("parent_id = ?", comment.ID).Find(&replies).Error; err != nil {
			return err
		}
		for _, reply := range replies {
			ids = append(ids, reply.ID)
			commenters[reply.AuthorID] = struct{}{}
		}

		if err := tx.Where("id IN ?", ids).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().
			Where("target_type = ? AND target_id IN ?", model.VoteTargetComment, ids).
			Delete(&model.Vote{}).Error; err != nil {
			return err
		}

		if err := settleNoteComments(tx, comment.NoteID); err != nil {
			return err
		}
		for userID := range commenters {
			if err := refreshCommenterCount(tx, userID); err != nil {
				return err
			}
		}
		return nil
	})
}

// settleNoteComments recounts a note's comments and refreshes its score.
func settleNoteComments(tx *gorm.DB, noteID string) error {
	var note model.CommunityNote
	if err := tx.Select("id", "upvotes", "downvotes", "save_count").
		First(&note, "id = ?", noteID).Error; err != nil {
		return err
	}

	var count int64
	if err := tx.Model(&model.Comment{}).Where("note_id = ?", noteID).Count(&count).Error; err != nil {
		return err
	}

	score := util.NoteScore(note.Upvotes, note.Downvotes, note.SaveCount, int(count))
	return tx.Model(&model.CommunityNote{}).Where("id = ?", noteID).
		Updates(map[string]interface{}{
			"comment_count": count,
			"score":         score,
		}).Error
}

// refreshCommenterCount recounts the comments a user has written and
// recomputes their reputation. Comments pay the commenter, not the note
// author.
func refreshCommenterCount(tx *gorm.DB, userID uint) error {
	var made int64
	if err := tx.Model(&model.Comment{}).Where("author_id = ?", userID).Count(&made).Error; err != nil {
		return err
	}
	if err := tx.Model(&model.User{}).Where("id = ?", userID).
		Update("comments_made", made).Error; err != nil {
		return err
	}
	return RecomputeReputation(tx, userID)
}
