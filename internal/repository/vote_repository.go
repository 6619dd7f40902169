package repository

import (
	"errors"
	"fmt"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"gorm.io/gorm"
)

// Vote toggle outcomes.
const (
	VoteAdded   = "added"
	VoteRemoved = "removed"
	VoteChanged = "changed"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Find(userID uint, targetType, targetID string) (*model.Vote, error) {
	var vote model.Vote
	err := r.db.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// VoteResult is the state of the target after a toggle.
type VoteResult struct {
	Action    string `json:"action"`
	VoteType  string `json:"voteType,omitempty"`
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
}

// Toggle records, flips or withdraws a vote and settles every derived counter
// in one transaction. Same vote again removes it; the opposite vote replaces
// it. Counters are recounted from the ledger rather than incremented, so two
// racing toggles can never leave a stale total behind.
func (r *VoteRepository) Toggle(userID uint, targetType, targetID, voteType string) (*VoteResult, error) {
	result := &VoteResult{}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Vote
		err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := model.Vote{
				UserID:     userID,
				TargetType: targetType,
				TargetID:   targetID,
				VoteType:   voteType,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			result.Action = VoteAdded
			result.VoteType = voteType
		case err != nil:
			return err
		case existing.VoteType == voteType:
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
			result.Action = VoteRemoved
		default:
			if err := tx.Model(&existing).Update("vote_type", voteType).Error; err != nil {
				return err
			}
			result.Action = VoteChanged
			result.VoteType = voteType
		}

		up, down, err := recountVotes(tx, targetType, targetID)
		if err != nil {
			return err
		}
		result.Upvotes = up
		result.Downvotes = down

		return applyVoteCounters(tx, targetType, targetID, up, down)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Remove withdraws the caller's vote outright. Returns a not-found error when
// no vote exists, so the client can tell a no-op from a withdrawal.
func (r *VoteRepository) Remove(userID uint, targetType, targetID string) (*VoteResult, error) {
	result := &VoteResult{Action: VoteRemoved}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Vote
		err := tx.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFound("No vote to remove")
		}
		if err != nil {
			return err
		}

		if err := tx.Unscoped().Delete(&existing).Error; err != nil {
			return err
		}

		up, down, err := recountVotes(tx, targetType, targetID)
		if err != nil {
			return err
		}
		result.Upvotes = up
		result.Downvotes = down

		return applyVoteCounters(tx, targetType, targetID, up, down)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func recountVotes(tx *gorm.DB, targetType, targetID string) (up, down int, err error) {
	type tally struct {
		VoteType string
		Total    int
	}
	var tallies []tally
	err = tx.Model(&model.Vote{}).
		Select("vote_type, COUNT(*) AS total").
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Group("vote_type").
		Scan(&tallies).Error
	if err != nil {
		return 0, 0, err
	}
	for _, t := range tallies {
		switch t.VoteType {
		case model.VoteUp:
			up = t.Total
		case model.VoteDown:
			down = t.Total
		}
	}
	return up, down, nil
}

// applyVoteCounters pushes fresh tallies into the target row, and for notes
// and comments also refreshes the author's received counters and reputation.
func applyVoteCounters(tx *gorm.DB, targetType, targetID string, up, down int) error {
	switch targetType {
	case model.VoteTargetNote:
		var note model.CommunityNote
		if err := tx.Select("id", "author_id", "save_count", "comment_count").
			First(&note, "id = ?", targetID).Error; err != nil {
			return err
		}
		score := util.NoteScore(up, down, note.SaveCount, note.CommentCount)
		if err := tx.Model(&model.CommunityNote{}).Where("id = ?", targetID).
			Updates(map[string]interface{}{
				"upvotes":   up,
				"downvotes": down,
				"score":     score,
			}).Error; err != nil {
			return err
		}
		return refreshAuthorVoteCounters(tx, note.AuthorID, model.VoteTargetNote,
			tx.Model(&model.CommunityNote{}).Select("id").Where("author_id = ?", note.AuthorID))

	case model.VoteTargetComment:
		// Comment votes rank replies only; they feed neither note score nor
		// the author's reputation.
		return tx.Model(&model.Comment{}).Where("id = ?", targetID).
			Updates(map[string]interface{}{
				"upvotes":   up,
				"downvotes": down,
			}).Error

	case model.VoteTargetRequest:
		return tx.Model(&model.MaterialRequest{}).Where("id = ?", targetID).
			Updates(map[string]interface{}{
				"upvotes":   up,
				"downvotes": down,
				"priority":  up - down,
			}).Error

	default:
		return fmt.Errorf("unknown vote target type %q", targetType)
	}
}

// refreshAuthorVoteCounters recounts votes received across all of an author's
// notes, then recomputes reputation from the stored counters.
func refreshAuthorVoteCounters(tx *gorm.DB, authorID uint, targetType string, ownedIDs *gorm.DB) error {
	var up, down int64
	if err := tx.Model(&model.Vote{}).
		Where("target_type = ? AND vote_type = ? AND target_id IN (?)", targetType, model.VoteUp, ownedIDs).
		Count(&up).Error; err != nil {
		return err
	}
	if err := tx.Model(&model.Vote{}).
		Where("target_type = ? AND vote_type = ? AND target_id IN (?)", targetType, model.VoteDown, ownedIDs).
		Count(&down).Error; err != nil {
		return err
	}

	if err := tx.Model(&model.User{}).Where("id = ?", authorID).
		Updates(map[string]interface{}{
			"upvotes_received":   up,
			"downvotes_received": down,
		}).Error; err != nil {
		return err
	}
	return RecomputeReputation(tx, authorID)
}

// RecomputeReputation derives the reputation column from the stored
// contribution counters in a single UPDATE.
func RecomputeReputation(tx *gorm.DB, userID uint) error {
	return tx.Model(&model.User{}).Where("id = ?", userID).
		Update("reputation", gorm.Expr(
			"upvotes_received * ? + saves_received * ? + comments_made * ? + quiz_correct * ? - downvotes_received * ?",
			util.UpvoteWeight, util.SaveWeight, util.CommentWeight, util.QuizCorrectWeight, util.DownvoteWeight,
		)).Error
}
