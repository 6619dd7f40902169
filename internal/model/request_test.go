package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialRequestIsTerminal(t *testing.T) {
	cases := map[string]bool{
		RequestStatusPending:    false,
		RequestStatusInProgress: false,
		RequestStatusFulfilled:  true,
		RequestStatusRejected:   true,
	}
	for status, terminal := range cases {
		req := MaterialRequest{Status: status}
		assert.Equal(t, terminal, req.IsTerminal(), "status %s", status)
	}
}

func TestMaterialRequestPriorityDerivedOnSave(t *testing.T) {
	req := MaterialRequest{Upvotes: 7, Downvotes: 2, Priority: 999}
	err := req.BeforeSave(nil)
	assert.NoError(t, err)
	assert.Equal(t, 5, req.Priority)

	req = MaterialRequest{Upvotes: 1, Downvotes: 4}
	_ = req.BeforeSave(nil)
	assert.Equal(t, -3, req.Priority)
}
