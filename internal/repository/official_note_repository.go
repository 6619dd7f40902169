package repository

import (
	"errors"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"gorm.io/gorm"
)

type OfficialNoteRepository struct {
	db *gorm.DB
}

func NewOfficialNoteRepository(db *gorm.DB) *OfficialNoteRepository {
	return &OfficialNoteRepository{db: db}
}

func (r *OfficialNoteRepository) Create(note *model.OfficialNote) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(note).Error; err != nil {
			return err
		}
		return tx.Model(&model.Course{}).Where("id = ?", note.CourseID).
			Update("official_note_count", gorm.Expr("official_note_count + 1")).Error
	})
}

func (r *OfficialNoteRepository) FindByID(id string) (*model.OfficialNote, error) {
	var note model.OfficialNote
	err := r.db.Preload("Course").Preload("UploadedBy").First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *OfficialNoteRepository) ListByCourse(courseID, topic string, page, limit int) ([]model.OfficialNote, int64, error) {
	query := r.db.Model(&model.OfficialNote{}).Where("course_id = ?", courseID)

	if topic != "" {
		query = query.Where("topic = ?", topic)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.OfficialNote
	err := query.Preload("UploadedBy").
		Order("created_at DESC").
		Offset(util.Offset(page, limit)).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *OfficialNoteRepository) Delete(note *model.OfficialNote) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(note).Error; err != nil {
			return err
		}
		return tx.Model(&model.Course{}).Where("id = ?", note.CourseID).
			Update("official_note_count", gorm.Expr("GREATEST(official_note_count - 1, 0)")).Error
	})
}

func (r *OfficialNoteRepository) IncrementDownloads(id string) error {
	return r.db.Model(&model.OfficialNote{}).Where("id = ?", id).
		Update("download_count", gorm.Expr("download_count + 1")).Error
}

func (r *OfficialNoteRepository) Search(q string, limit int) ([]model.OfficialNote, error) {
	like := "%" + q + "%"
	var items []model.OfficialNote
	err := r.db.Preload("Course").
		Where("title LIKE ? OR topic LIKE ? OR description LIKE ?", like, like, like).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
