package apperr_test

import (
	"fmt"
	"testing"

	"github.com/hugh/nextsaas/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestCategories(t *testing.T) {
	bad := apperr.BadRequest("Project not found.")
	assert.True(t, apperr.IsBadRequest(bad))
	assert.False(t, apperr.IsUnauthorized(bad))
	assert.Equal(t, "Project not found.", bad.Error())

	wrapped := fmt.Errorf("deleting project: %w", apperr.Unauthorized(""))
	assert.True(t, apperr.IsUnauthorized(wrapped))
	assert.Equal(t, "deleting project: Unauthorized.", wrapped.Error())

	assert.False(t, apperr.IsBadRequest(fmt.Errorf("boom")))
}
