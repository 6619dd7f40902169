package service

import (
	"encoding/json"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/repository"
	"studyhive_backend/internal/util"
)

type CreateRequestInput struct {
	CourseID        string          `json:"courseId" binding:"required"`
	Type            string          `json:"type" binding:"required,oneof=past-question note quiz other"`
	Title           string          `json:"title" binding:"required,max=255"`
	Description     string          `json:"description"`
	SpecificDetails json.RawMessage `json:"specificDetails"`
}

type FulfillRequestInput struct {
	ResolvedNoteID string `json:"resolvedNoteId"`
	ResolutionNote string `json:"resolutionNote"`
}

type RejectRequestInput struct {
	ResolutionNote string `json:"resolutionNote" binding:"required"`
}

type RequestService struct {
	requests *repository.RequestRepository
	courses  *repository.CourseRepository
}

func NewRequestService(requests *repository.RequestRepository, courses *repository.CourseRepository) *RequestService {
	return &RequestService{requests: requests, courses: courses}
}

func (s *RequestService) Create(requesterID uint, input CreateRequestInput) (*model.MaterialRequest, error) {
	course, err := s.courses.FindByID(input.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.NotFound("Course not found")
	}

	req := &model.MaterialRequest{
		CourseID:        input.CourseID,
		RequesterID:     requesterID,
		Type:            input.Type,
		Title:           input.Title,
		Description:     input.Description,
		SpecificDetails: input.SpecificDetails,
		Status:          model.RequestStatusPending,
	}
	if err := s.requests.Create(req); err != nil {
		return nil, err
	}
	return s.requests.FindByID(req.ID)
}

func (s *RequestService) Get(id string) (*model.MaterialRequest, error) {
	req, err := s.requests.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, util.NotFound("Request not found")
	}
	return req, nil
}

func (s *RequestService) List(filter repository.RequestFilter, page, limit int) ([]model.MaterialRequest, *util.Pagination, error) {
	requests, total, err := s.requests.List(filter, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return requests, util.NewPagination(page, limit, total), nil
}

func (s *RequestService) ListMine(requesterID uint, page, limit int) ([]model.MaterialRequest, *util.Pagination, error) {
	requests, total, err := s.requests.ListByRequester(requesterID, page, limit)
	if err != nil {
		return nil, nil, err
	}
	return requests, util.NewPagination(page, limit, total), nil
}

type UpdateRequestInput struct {
	Title           string          `json:"title" binding:"omitempty,max=255"`
	Description     string          `json:"description"`
	SpecificDetails json.RawMessage `json:"specificDetails"`
}

// Update edits a request. Only the requester may edit, and only while the
// request is still pending.
func (s *RequestService) Update(id string, actorID uint, input UpdateRequestInput) (*model.MaterialRequest, error) {
	req, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if req.RequesterID != actorID {
		return nil, util.Forbidden("You can only edit your own requests")
	}
	if req.Status != model.RequestStatusPending {
		return nil, util.Conflict("Only pending requests can be edited")
	}

	if input.Title != "" {
		req.Title = input.Title
	}
	if input.Description != "" {
		req.Description = input.Description
	}
	if len(input.SpecificDetails) > 0 {
		req.SpecificDetails = input.SpecificDetails
	}

	if err := s.requests.Update(req); err != nil {
		return nil, err
	}
	return s.requests.FindByID(id)
}

// Stats summarizes the request queue by status.
func (s *RequestService) Stats(courseID string) (*repository.RequestStats, error) {
	if courseID != "" {
		course, err := s.courses.FindByID(courseID)
		if err != nil {
			return nil, err
		}
		if course == nil {
			return nil, util.NotFound("Course not found")
		}
	}
	return s.requests.Stats(courseID)
}

// Claim moves a pending request to in-progress so other moderators know it is
// being worked on.
func (s *RequestService) Claim(id string, resolverID uint) (*model.MaterialRequest, error) {
	req, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if req.Status != model.RequestStatusPending {
		if req.IsTerminal() {
			return nil, util.BadRequest("Request is already fulfilled or rejected")
		}
		return nil, util.BadRequest("Request is already being worked on")
	}

	return s.requests.Transition(id, model.RequestStatusInProgress, map[string]interface{}{
		"resolver_id": resolverID,
	})
}

func (s *RequestService) Fulfill(id string, resolverID uint, input FulfillRequestInput) (*model.MaterialRequest, error) {
	fields := map[string]interface{}{
		"resolver_id":     resolverID,
		"resolution_note": input.ResolutionNote,
	}
	if input.ResolvedNoteID != "" {
		fields["resolved_note_id"] = input.ResolvedNoteID
	}
	return s.requests.Transition(id, model.RequestStatusFulfilled, fields)
}

func (s *RequestService) Reject(id string, resolverID uint, input RejectRequestInput) (*model.MaterialRequest, error) {
	return s.requests.Transition(id, model.RequestStatusRejected, map[string]interface{}{
		"resolver_id":     resolverID,
		"resolution_note": input.ResolutionNote,
	})
}

// Delete removes a request. Requesters can withdraw their own pending
// requests; admins can remove any.
func (s *RequestService) Delete(id string, actorID uint, actorRole string) error {
	req, err := s.Get(id)
	if err != nil {
		return err
	}
	if actorRole != model.RoleAdmin {
		if req.RequesterID != actorID {
			return util.Forbidden("You can only withdraw your own requests")
		}
		if req.Status != model.RequestStatusPending {
			return util.Conflict("Only pending requests can be withdrawn")
		}
	}
	return s.requests.Delete(req)
}
