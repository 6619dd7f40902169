package service

import (
	"context"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/util"
)

type CreateOfficialNoteInput struct {
	CourseID    string `json:"courseId" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Topic       string `json:"topic" binding:"omitempty,max=255"`
	FileKey     string `json:"fileKey" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required,min=1"`
}

type OfficialNoteService struct {
	notes   *repository.OfficialNoteRepository
	courses *repository.CourseRepository
	storage *StorageService
}

func NewOfficialNoteService(notes *repository.OfficialNoteRepository, courses *repository.CourseRepository, storage *StorageService) *OfficialNoteService {
	return &OfficialNoteService{notes: notes, courses: courses, storage: storage}
}

func (s *OfficialNoteService) Create(ctx context.Context, uploaderID uint, input CreateOfficialNoteInput) (*model.OfficialNote, error) {
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

	note := &model.OfficialNote{
		CourseID:     input.CourseID,
		Title:        input.Title,
		Description:  input.Description,
		Topic:        input.Topic,
		FileKey:      input.FileKey,
		FileName:     input.FileName,
		FileSize:     input.FileSize,
		UploadedByID: uploaderID,
	}
	if err := s.notes.Create(note); err != nil {
		return nil, err
	}
	return s.notes.FindByID(note.ID)
}

func (s *OfficialNoteService) Get(id string) (*model.OfficialNote, error) {
	note, err := s.notes.FindByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, util.NotFound("Official note not found")
	}
	return note, nil
}

func (s *OfficialNoteService) ListByCourse(courseID, topic string, page, limit int) ([]model.OfficialNote, *util.Pagination, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, nil, err
	}
	if course == nil {
		return nil, nil, util.NotFound("Course not found")
	}

	items, total, err := s.notes.ListByCourse(courseID, topic, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return items, util.NewPagination(page, limit, total), nil
}

func (s *OfficialNoteService) DownloadURL(ctx context.Context, id string) (string, error) {
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

func (s *OfficialNoteService) Delete(ctx context.Context, id string) error {
	note, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.notes.Delete(note); err != nil {
		return err
	}
	_ = s.storage.Remove(ctx, note.FileKey)
	return nil
}
