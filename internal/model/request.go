package model

import (
	"encoding/json"

	"gorm.io/gorm"
)

const (
	RequestStatusPending    = "pending"
	RequestStatusInProgress = "in-progress"
	RequestStatusFulfilled  = "fulfilled"
	RequestStatusRejected   = "rejected"
)

const (
	RequestTypePastQuestion = "past-question"
	RequestTypeNote         = "note"
	RequestTypeQuiz         = "quiz"
	RequestTypeOther        = "other"
)

// MaterialRequest is a student's ask for material that isn't on the platform
// yet. Fulfilled and rejected are terminal states.
type MaterialRequest struct {
	UUIDBase
	CourseID string  `gorm:"type:varchar(36);index;not null" json:"courseId"`
	Course   *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`

	RequesterID uint  `gorm:"index;not null" json:"requesterId"`
	Requester   *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`

	Type        string `gorm:"size:20;not null" json:"type"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// SpecificDetails holds type-dependent fields (year for past questions,
	// topic for notes) without a column per variant.
	SpecificDetails json.RawMessage `gorm:"type:json" json:"specificDetails,omitempty"`

	Status string `gorm:"size:20;default:pending;index" json:"status"`

	Upvotes   int `gorm:"default:0" json:"upvotes"`
	Downvotes int `gorm:"default:0" json:"downvotes"`
	Priority  int `gorm:"default:0;index" json:"priority"`

	// ResolvedNoteID points at the material that fulfilled the request.
	ResolvedNoteID *string `gorm:"type:varchar(36)" json:"resolvedNoteId,omitempty"`
	ResolverID     *uint   `json:"resolverId,omitempty"`
	ResolutionNote string  `gorm:"type:text" json:"resolutionNote,omitempty"`
}

func (MaterialRequest) TableName() string {
	return "material_requests"
}

// BeforeSave keeps priority derived from the vote counters no matter which
// code path wrote them.
func (r *MaterialRequest) BeforeSave(tx *gorm.DB) error {
	r.Priority = r.Upvotes - r.Downvotes
	return nil
}

func (r *MaterialRequest) IsTerminal() bool {
	return r.Status == RequestStatusFulfilled || r.Status == RequestStatusRejected
}
