package repository

import (
	"net/http"
	"testing"

	"studyhive_backend/internal/model"
	"studyhive_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionRefusesTerminalRequests(t *testing.T) {
	db := newTestDB(t)
	requester := seedUser(t, db, "requester")
	resolver := seedUser(t, db, "resolver")
	course := seedCourse(t, db, "GST101")

	req := &model.MaterialRequest{
		CourseID:    course.ID,
		RequesterID: requester.ID,
		Type:        model.RequestTypePastQuestion,
		Title:       "2023 exam paper",
		Status:      model.RequestStatusPending,
	}
	require.NoError(t, db.Create(req).Error)

	requests := NewRequestRepository(db)

	fulfilled, err := requests.Transition(req.ID, model.RequestStatusFulfilled, map[string]interface{}{
		"resolver_id": resolver.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusFulfilled, fulfilled.Status)

	// A fulfilled request cannot move again.
	_, err = requests.Transition(req.ID, model.RequestStatusRejected, nil)
	var apiErr *util.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Request is already fulfilled or rejected", apiErr.Message)
}

func TestTransitionUnknownRequest(t *testing.T) {
	db := newTestDB(t)

	_, err := NewRequestRepository(db).Transition("missing-id", model.RequestStatusFulfilled, nil)
	var apiErr *util.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
