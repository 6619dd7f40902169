package service

import (
	"testing"

	"studyhive_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Target-type validation happens before any repository is touched, so a
// zero-value service is enough for these paths.
func TestRemoveVoteRejectsUnknownTarget(t *testing.T) {
	s := &VoteService{}

	_, err := s.Remove(1, "poll", "some-id")
	require.Error(t, err)
	apiErr, ok := err.(*util.ApiError)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestCastVoteRejectsUnknownTarget(t *testing.T) {
	s := &VoteService{}

	_, err := s.Cast(1, "poll", "some-id", "upvote")
	require.Error(t, err)
	apiErr, ok := err.(*util.ApiError)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
}
