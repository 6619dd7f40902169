package service

import (
	"context"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/util"
)

type CreateCommentInput struct {
	Body     string  `json:"body" binding:"required,min=1,max=2000"`
	ParentID *string `json:"parentId"`
}

type CommentService struct {
	comments    *repository.CommentRepository
	notes       *repository.CommunityNoteRepository
	leaderboard LeaderboardInvalidator
}

func NewCommentService(comments *repository.CommentRepository, notes *repository.CommunityNoteRepository, leaderboard LeaderboardInvalidator) *CommentService {
	return &CommentService{comments: comments, notes: notes, leaderboard: leaderboard}
}

// Create adds a comment or a reply. Replies attach to the parent's note and
// cannot nest further than one level.
func (s *CommentService) Create(authorID uint, noteID string, input CreateCommentInput) (*model.Comment, error) {
	note, err := s.notes.FindByID(noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, util.NotFound("Note not found")
	}

	if input.ParentID != nil {
		parent, err := s.comments.FindByID(*input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.NoteID != noteID {
			return nil, util.BadRequest("Parent comment not found on this note")
		}
		if parent.ParentID != nil {
			return nil, util.BadRequest("Replies cannot be nested")
		}
	}

	comment := &model.Comment{
		NoteID:   noteID,
		AuthorID: authorID,
		Body:     input.Body,
		ParentID: input.ParentID,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	s.invalidateLeaderboard()
	return s.comments.FindByID(comment.ID)
}

func (s *CommentService) ListByNote(noteID string, page, limit int) ([]model.Comment, *util.Pagination, error) {
	note, err := s.notes.FindByID(noteID)
	if err != nil {
		return nil, nil, err
	}
	if note == nil {
		return nil, nil, util.NotFound("Note not found")
	}

	comments, total, err := s.comments.ListByNote(noteID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return comments, util.NewPagination(page, limit, total), nil
}

// Delete removes a comment. Authors delete their own; reps and admins can
// moderate.
func (s *CommentService) Delete(id string, actorID uint, actorRole string) error {
	comment, err := s.comments.FindByID(id)
	if err != nil {
		return err
	}
	if comment == nil {
		return util.NotFound("Comment not found")
	}
	if comment.AuthorID != actorID && actorRole != model.RoleRep && actorRole != model.RoleAdmin {
		return util.Forbidden("You can only delete your own comments")
	}
	if err := s.comments.Delete(comment); err != nil {
		return err
	}
	s.invalidateLeaderboard()
	return nil
}

func (s *CommentService) invalidateLeaderboard() {
	if s.leaderboard != nil {
		s.leaderboard.Invalidate(context.Background())
	}
}
