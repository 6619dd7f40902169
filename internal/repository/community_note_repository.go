package repository

import (
	"errors"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Community note sort orders.
const (
	SortTop    = "top"
	SortNewest = "newest"
)

type CommunityNoteRepository struct {
	db *gorm.DB
}

func NewCommunityNoteRepository(db *gorm.DB) *CommunityNoteRepository {
	return &CommunityNoteRepository{db: db}
}

func (r *CommunityNoteRepository) Create(note *model.CommunityNote) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(note).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Course{}).Where("id = ?", note.CourseID).
			Update("community_note_count", gorm.Expr("community_note_count + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).Where("id = ?", note.AuthorID).
			Update("notes_created", gorm.Expr("notes_created + 1")).Error
	})
}

func (r *CommunityNoteRepository) Update(note *model.CommunityNote) error {
	return r.db.Save(note).Error
}

func (r *CommunityNoteRepository) FindByID(id string) (*model.CommunityNote, error) {
	var note model.CommunityNote
	err := r.db.Preload("Course").Preload("Author").First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *CommunityNoteRepository) ListByCourse(courseID, topic, sort string, page, limit int) ([]model.CommunityNote, int64, error) {
	query := r.db.Model(&model.CommunityNote{}).
		Where("course_id = ? AND is_hidden = ?", courseID, false)

	if topic != "" {
		query = query.Where("topic = ?", topic)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Pinned notes lead regardless of sort.
	order := "is_pinned DESC, score DESC, created_at DESC"
	if sort == SortNewest {
		order = "is_pinned DESC, created_at DESC"
	}

	var notes []model.CommunityNote
	err := query.Preload("Author").
		Order(order).
		Offset(util.Offset(page, limit)).
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (r *CommunityNoteRepository) ListByAuthor(authorID uint, page, limit int) ([]model.CommunityNote, int64, error) {
	query := r.db.Model(&model.CommunityNote{}).Where("author_id = ?", authorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notes []model.CommunityNote
	err := query.Preload("Course").
		Order("created_at DESC").
		Offset(util.Offset(page, limit)).
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// Delete removes the note and its votes, comments and saves, then settles the
// course counter. The author's received counters and each commenter's own
// counter are refreshed so deleted content stops paying reputation.
func (r *CommunityNoteRepository) Delete(note *model.CommunityNote) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var commenterIDs []uint
		if err := tx.Model(&model.Comment{}).Where("note_id = ?", note.ID).
			Distinct("author_id").Pluck("author_id", &commenterIDs).Error; err != nil {
			return err
		}

		if err := tx.Delete(note).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().
			Where("target_type = ? AND target_id = ?", model.VoteTargetNote, note.ID).
			Delete(&model.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", note.ID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		for _, userID := range commenterIDs {
			if err := refreshCommenterCount(tx, userID); err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("note_id = ?", note.ID).Delete(&model.SavedNote{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Course{}).Where("id = ?", note.CourseID).
			Update("community_note_count", gorm.Expr("GREATEST(community_note_count - 1, 0)")).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.User{}).Where("id = ?", note.AuthorID).
			Update("notes_created", gorm.Expr("GREATEST(notes_created - 1, 0)")).Error; err != nil {
			return err
		}
		return refreshAuthorContribution(tx, note.AuthorID)
	})
}

// ToggleSave bookmarks the note for the user, or removes the bookmark if it
// already exists. Note save count, score and the author's counters settle in
// the same transaction.
func (r *CommunityNoteRepository) ToggleSave(userID uint, noteID string) (saved bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.SavedNote
		findErr := tx.Where("user_id = ? AND note_id = ?", userID, noteID).First(&existing).Error

		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.SavedNote{UserID: userID, NoteID: noteID}).Error; err != nil {
				return err
			}
			saved = true
		case findErr != nil:
			return findErr
		default:
			if err := tx.Unscoped().Delete(&existing).Error; err != nil {
				return err
			}
			saved = false
		}

		var note model.CommunityNote
		if err := tx.Select("id", "author_id", "upvotes", "downvotes", "comment_count").
			First(&note, "id = ?", noteID).Error; err != nil {
			return err
		}

		var saveCount int64
		if err := tx.Model(&model.SavedNote{}).Where("note_id = ?", noteID).Count(&saveCount).Error; err != nil {
			return err
		}

		score := util.NoteScore(note.Upvotes, note.Downvotes, int(saveCount), note.CommentCount)
		if err := tx.Model(&model.CommunityNote{}).Where("id = ?", noteID).
			Updates(map[string]interface{}{
				"save_count": saveCount,
				"score":      score,
			}).Error; err != nil {
			return err
		}

		return refreshAuthorSaves(tx, note.AuthorID)
	})
	return saved, err
}

func (r *CommunityNoteRepository) IsSaved(userID uint, noteID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.SavedNote{}).
		Where("user_id = ? AND note_id = ?", userID, noteID).
		Count(&count).Error
	return count > 0, err
}

func (r *CommunityNoteRepository) ListSaved(userID uint, page, limit int) ([]model.CommunityNote, int64, error) {
	base := r.db.Model(&model.CommunityNote{}).
		Joins("JOIN saved_notes ON saved_notes.note_id = community_notes.id AND saved_notes.deleted_at IS NULL").
		Where("saved_notes.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notes []model.CommunityNote
	err := base.Preload("Course").Preload("Author").
		Order("saved_notes.created_at DESC").
		Offset(util.Offset(page, limit)).
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

func (r *CommunityNoteRepository) IncrementDownloads(id string) error {
	return r.db.Model(&model.CommunityNote{}).Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1")).Error
}

func (r *CommunityNoteRepository) IncrementViews(id string) error {
	return r.db.Model(&model.CommunityNote{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

// Report bumps the note's report counter and hides the note once the count
// reaches the threshold. Returns the new count and whether the note is now
// hidden.
func (r *CommunityNoteRepository) Report(id string) (count int, hidden bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var note model.CommunityNote
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "report_count", "is_hidden").
			First(&note, "id = ?", id).Error; err != nil {
			return err
		}

		count = note.ReportCount + 1
		hidden = note.IsHidden || count >= model.ReportThreshold

		return tx.Model(&model.CommunityNote{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"report_count": count,
				"is_hidden":    hidden,
			}).Error
	})
	return count, hidden, err
}

func (r *CommunityNoteRepository) SetPinned(id string, pinned bool) error {
	return r.db.Model(&model.CommunityNote{}).Where("id = ?", id).
		Update("is_pinned", pinned).Error
}

// SetHidden is the moderator override: clearing it also resets the report
// counter so the note does not immediately re-hide.
func (r *CommunityNoteRepository) SetHidden(id string, hidden bool) error {
	fields := map[string]interface{}{"is_hidden": hidden}
	if !hidden {
		fields["report_count"] = 0
	}
	return r.db.Model(&model.CommunityNote{}).Where("id = ?", id).Updates(fields).Error
}

func (r *CommunityNoteRepository) Search(q string, limit int) ([]model.CommunityNote, error) {
	like := "%" + q + "%"
	var notes []model.CommunityNote
	err := r.db.Preload("Course").Preload("Author").
		Where("is_hidden = ?", false).
		Where("title LIKE ? OR topic LIKE ? OR description LIKE ?", like, like, like).
		Order("score DESC").
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// refreshAuthorSaves recounts saves across the author's live notes and
// refreshes reputation.
func refreshAuthorSaves(tx *gorm.DB, authorID uint) error {
	var saves int64
	err := tx.Model(&model.SavedNote{}).
		Where("note_id IN (?)", tx.Model(&model.CommunityNote{}).Select("id").Where("author_id = ?", authorID)).
		Count(&saves).Error
	if err != nil {
		return err
	}

	if err := tx.Model(&model.User{}).Where("id = ?", authorID).
		Update("saves_received", saves).Error; err != nil {
		return err
	}
	return RecomputeReputation(tx, authorID)
}

// refreshAuthorContribution recounts the author's received counters. Used
// after note deletes, where votes and saves move at once. Comments pay their
// writers, so commenter counters are refreshed separately.
func refreshAuthorContribution(tx *gorm.DB, authorID uint) error {
	owned := tx.Model(&model.CommunityNote{}).Select("id").Where("author_id = ?", authorID)

	if err := refreshAuthorVoteCounters(tx, authorID, model.VoteTargetNote, owned); err != nil {
		return err
	}
	return refreshAuthorSaves(tx, authorID)
}
