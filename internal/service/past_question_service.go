package service

import (
	"context"
	"time"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/util"
)

type CreatePastQuestionInput struct {
	CourseID string `json:"courseId" binding:"required"`
	Title    string `json:"title" binding:"required,max=255"`
	Year     int    `json:"year" binding:"required,min=1990"`
	Semester string `json:"semester" binding:"omitempty,oneof=first second"`
	FileKey  string `json:"fileKey" binding:"required"`
	FileName string `json:"fileName" binding:"required"`
	FileSize int64  `json:"fileSize" binding:"required,min=1"`
}

type PastQuestionService struct {
	pastQuestions *repository.PastQuestionRepository
	courses       *repository.CourseRepository
	storage       *StorageService
}

func NewPastQuestionService(pastQuestions *repository.PastQuestionRepository, courses *repository.CourseRepository, storage *StorageService) *PastQuestionService {
	return &PastQuestionService{pastQuestions: pastQuestions, courses: courses, storage: storage}
}

func (s *PastQuestionService) Create(ctx context.Context, uploaderID uint, input CreatePastQuestionInput) (*model.PastQuestion, error) {
	course, err := s.courses.FindByID(input.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.NotFound("Course not found")
	}

	if input.Year > time.Now().Year() {
		return nil, util.BadRequest("Exam year cannot be in the future")
	}

	uploaded, err := s.storage.Exists(ctx, input.FileKey)
	if err != nil {
		return nil, err
	}
	if !uploaded {
		return nil, util.BadRequest("File has not been uploaded yet")
	}

	pq := &model.PastQuestion{
		CourseID:     input.CourseID,
		Title:        input.Title,
		Year:         input.Year,
		Semester:     input.Semester,
		FileKey:      input.FileKey,
		FileName:     input.FileName,
		FileSize:     input.FileSize,
		UploadedByID: uploaderID,
	}
	if err := s.pastQuestions.Create(pq); err != nil {
		return nil, err
	}
	return s.pastQuestions.FindByID(pq.ID)
}

func (s *PastQuestionService) Get(id string) (*model.PastQuestion, error) {
	pq, err := s.pastQuestions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if pq == nil {
		return nil, util.NotFound("Past question not found")
	}
	return pq, nil
}

func (s *PastQuestionService) ListByCourse(courseID string, year int, semester string, page, limit int) ([]model.PastQuestion, *util.Pagination, error) {
	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, nil, err
	}
	if course == nil {
		return nil, nil, util.NotFound("Course not found")
	}

	items, total, err := s.pastQuestions.ListByCourse(courseID, year, semester, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return items, util.NewPagination(page, limit, total), nil
}

// DownloadURL presigns a download and counts it.
func (s *PastQuestionService) DownloadURL(ctx context.Context, id string) (string, error) {
	pq, err := s.Get(id)
	if err != nil {
		return "", err
	}

	url, err := s.storage.PresignDownload(ctx, pq.FileKey, pq.FileName)
	if err != nil {
		return "", err
	}
	if err := s.pastQuestions.IncrementDownloads(id); err != nil {
		return "", err
	}
	return url, nil
}

func (s *PastQuestionService) Delete(ctx context.Context, id string) error {
	pq, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.pastQuestions.Delete(pq); err != nil {
		return err
	}
	// Best effort; an orphaned object is not worth failing the delete over.
	_ = s.storage.Remove(ctx, pq.FileKey)
	return nil
}
