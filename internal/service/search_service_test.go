package service

import (
	"testing"

	"studyhive_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Validation happens before any repository is touched, so a zero-value
// service is enough for these paths.
func TestSearchRejectsShortQuery(t *testing.T) {
	s := &SearchService{}

	for _, q := range []string{"", "a", "  a  "} {
		_, err := s.Search(q, SearchAll)
		require.Error(t, err, "query %q", q)
		apiErr, ok := err.(*util.ApiError)
		require.True(t, ok)
		assert.Equal(t, 400, apiErr.StatusCode)
	}
}

func TestSearchRejectsUnknownScope(t *testing.T) {
	s := &SearchService{}

	_, err := s.Search("calculus", "podcasts")
	require.Error(t, err)
	apiErr, ok := err.(*util.ApiError)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
}
