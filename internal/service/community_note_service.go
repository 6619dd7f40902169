package service

import (
	"context"
	"time"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/util"
	"studyhive_backend/pkg/logger"

	"go.uber.org/zap"
)

type CreateCommunityNoteInput struct {
	CourseID    string `json:"courseId" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Topic       string `json:"topic" binding:"omitempty,max=255"`
	FileKey     string `json:"fileKey" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required,min=1"`
}

type CommunityNoteService struct {
	notes       *repository.CommunityNoteRepository
	courses     *repository.CourseRepository
	storage     *StorageService
	leaderboard LeaderboardInvalidator
}

func NewCommunityNoteService(notes *repository.CommunityNoteRepository, courses *repository.CourseRepository, storage *StorageService, leaderboard LeaderboardInvalidator) *CommunityNoteService {
	return &CommunityNoteService{notes: notes, courses: courses, storage: storage, leaderboard: leaderboard}
}

func (s *CommunityNoteService) Create(ctx context.Context, authorID uint, input CreateCommunityNoteInput) (*model.CommunityNote, error) {
	course, err := s.courses.FindByID(input.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.NotFound("Course not found")
	}

	uploaded, err := s.storage.Exists(ctx, input.FileKey)
	if err != nil {
		return nil, err
	}
	if !uploaded {
		return nil, util.BadRequest("File has not been uploaded yet")
	}

	note := &model.CommunityNote{
		CourseID:    input.CourseID,
		Title:       input.Title,
		Description: input.Description,
		Topic:       input.Topic,
		FileKey:     input.FileKey,
		FileName:    input.FileName,
		FileSize:    input.FileSize,
		AuthorID:    authorID,
	}
	if err := s.notes.Create(note); err != nil {
		return nil, err
	}
	return s.notes.FindByID(note.ID)
}

func (s *CommunityNoteService) Get(id string) (*model.CommunityNote, error) {
	note, err := s.notes.FindByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, util.NotFound("Note not found")
	}
	return note, nil
}

// View is Get for the detail page: hidden notes stay visible to their author
// and moderators only, and the view counter ticks.
func (s *CommunityNoteService) View(id string, viewerID uint, viewerRole string) (*model.CommunityNote, error) {
	note, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if note.IsHidden && note.AuthorID != viewerID &&
		viewerRole != model.RoleRep && viewerRole != model.RoleAdmin {
		return nil, util.NotFound("Note not found")
	}

	if err := s.notes.IncrementViews(id); err != nil {
		logger.Log.Warn("Failed to count note view", zap.String("noteId", id), zap.Error(err))
	}
	return note, nil
}

type UpdateCommunityNoteInput struct {
	Title       string `json:"title" binding:"omitempty,max=255"`
	Description string `json:"description"`
	Topic       string `json:"topic" binding:"omitempty,max=255"`
}

// Update edits the note's metadata. Authors only; the file itself is
// immutable, delete and re-upload to replace it.
func (s *CommunityNoteService) Update(id string, actorID uint, input UpdateCommunityNoteInput) (*model.CommunityNote, error) {
	note, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if note.AuthorID != actorID {
		return nil, util.Forbidden("You can only edit your own notes")
	}

	if input.Title != "" {
		note.Title = input.Title
	}
	if input.Description != "" {
		note.Description = input.Description
	}
	if input.Topic != "" {
		note.Topic = input.Topic
	}
	now := time.Now()
	note.EditedAt = &now

	if err := s.notes.Update(note); err != nil {
		return nil, err
	}
	return s.notes.FindByID(id)
}

// Report flags the note for moderation. Authors cannot report their own note.
func (s *CommunityNoteService) Report(id string, reporterID uint) (hidden bool, err error) {
	note, err := s.Get(id)
	if err != nil {
		return false, err
	}
	if note.AuthorID == reporterID {
		return false, util.BadRequest("You cannot report your own note")
	}

	_, hidden, err = s.notes.Report(id)
	return hidden, err
}

// SetPinned pins or unpins the note in its course listing. Rep and admin only.
func (s *CommunityNoteService) SetPinned(id string, pinned bool) (*model.CommunityNote, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	if err := s.notes.SetPinned(id, pinned); err != nil {
		return nil, err
	}
	return s.notes.FindByID(id)
}

// SetHidden is the moderator override for hidden notes.
func (s *CommunityNoteService) SetHidden(id string, hidden bool) (*model.CommunityNote, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	if err := s.notes.SetHidden(id, hidden); err != nil {
		return nil, err
	}
	return s.notes.FindByID(id)
}

func (s *CommunityNoteService) ListByCourse(courseID, topic, sort string, page, limit int) ([]model.CommunityNote, *util.Pagination, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, nil, err
	}
	if course == nil {
		return nil, nil, util.NotFound("Course not found")
	}

	notes, total, err := s.notes.ListByCourse(courseID, topic, sort, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return notes, util.NewPagination(page, limit, total), nil
}

// ToggleSave bookmarks or unbookmarks the note for the user.
func (s *CommunityNoteService) ToggleSave(userID uint, noteID string) (bool, error) {
	if _, err := s.Get(noteID); err != nil {
		return false, err
	}
	saved, err := s.notes.ToggleSave(userID, noteID)
	if err != nil {
		return false, err
	}
	s.invalidateLeaderboard()
	return saved, nil
}

func (s *CommunityNoteService) IsSaved(userID uint, noteID string) (bool, error) {
	return s.notes.IsSaved(userID, noteID)
}

func (s *CommunityNoteService) DownloadURL(ctx context.Context, id string) (string, error) {
	note, err := s.Get(id)
	if err != nil {
		return "", err
	}

	url, err := s.storage.PresignDownload(ctx, note.FileKey, note.FileName)
	if err != nil {
		return "", err
	}
	if err := s.notes.IncrementDownloads(id); err != nil {
		return "", err
	}
	return url, nil
}

// Delete removes the note. Authors can delete their own; reps and admins can
// delete anything.
func (s *CommunityNoteService) Delete(ctx context.Context, id string, actorID uint, actorRole string) error {
	note, err := s.Get(id)
	if err != nil {
		return err
	}
	if note.AuthorID != actorID && actorRole != model.RoleRep && actorRole != model.RoleAdmin {
		return util.Forbidden("You can only delete your own notes")
	}

	if err := s.notes.Delete(note); err != nil {
		return err
	}
	s.invalidateLeaderboard()
	_ = s.storage.Remove(ctx, note.FileKey)
	return nil
}

func (s *CommunityNoteService) invalidateLeaderboard() {
	if s.leaderboard != nil {
		s.leaderboard.Invalidate(context.Background())
	}
}
