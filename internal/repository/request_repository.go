package repository

import (
	"errors"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestFilter narrows request listings. Zero values mean "no filter".
type RequestFilter struct {
	CourseID string
	Status   string
	Type     string
}

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(req *model.MaterialRequest) error {
	return r.db.Create(req).Error
}

func (r *RequestRepository) Update(req *model.MaterialRequest) error {
	return r.db.Save(req).Error
}

func (r *RequestRepository) FindByID(id string) (*model.MaterialRequest, error) {
	var req model.MaterialRequest
	err := r.db.Preload("Course").Preload("Requester").First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// List pages requests most-wanted first.
func (r *RequestRepository) List(filter RequestFilter, page, limit int) ([]model.MaterialRequest, int64, error) {
	query := r.db.Model(&model.MaterialRequest{})

	if filter.CourseID != "" {
		query = query.Where("course_id = ?", filter.CourseID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []model.MaterialRequest
	err := query.Preload("Course").Preload("Requester").
		Order("priority DESC, created_at ASC").
		Offset(util.Offset(page, limit)).
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func (r *RequestRepository) ListByRequester(requesterID uint, page, limit int) ([]model.MaterialRequest, int64, error) {
	query := r.db.Model(&model.MaterialRequest{}).Where("requester_id = ?", requesterID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []model.MaterialRequest
	err := query.Preload("Course").
		Order("created_at DESC").
		Offset(util.Offset(page, limit)).
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// Transition moves a request to a new status, refusing to leave a terminal
// state. The row is locked so two moderators cannot race the same request
// past the guard.
func (r *RequestRepository) Transition(id, status string, fields map[string]interface{}) (*model.MaterialRequest, error) {
	var req model.MaterialRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&req, "id = ?", id).Error; err != nil {
			return err
		}
		if req.IsTerminal() {
			return util.BadRequest("Request is already fulfilled or rejected")
		}

		updates := map[string]interface{}{"status": status}
		for k, v := range fields {
			updates[k] = v
		}
		if err := tx.Model(&req).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Preload("Course").Preload("Requester").First(&req, "id = ?", id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFound("Request not found")
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// RequestStats is the per-status breakdown of the request queue.
type RequestStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Fulfilled  int64 `json:"fulfilled"`
	Rejected   int64 `json:"rejected"`
}

func (r *RequestRepository) Stats(courseID string) (*RequestStats, error) {
	query := r.db.Model(&model.MaterialRequest{})
	if courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}

	type tally struct {
		Status string
		Total  int64
	}
	var tallies []tally
	if err := query.Select("status, COUNT(*) AS total").Group("status").Scan(&tallies).Error; err != nil {
		return nil, err
	}

	stats := &RequestStats{}
	for _, t := range tallies {
		stats.Total += t.Total
		switch t.Status {
		case model.RequestStatusPending:
			stats.Pending = t.Total
		case model.RequestStatusInProgress:
			stats.InProgress = t.Total
		case model.RequestStatusFulfilled:
			stats.Fulfilled = t.Total
		case model.RequestStatusRejected:
			stats.Rejected = t.Total
		}
	}
	return stats, nil
}

func (r *RequestRepository) Delete(req *model.MaterialRequest) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(req).Error; err != nil {
			return err
		}
		return tx.Unscoped().
			Where("target_type = ? AND target_id = ?", model.VoteTargetRequest, req.ID).
			Delete(&model.Vote{}).Error
	})
}
