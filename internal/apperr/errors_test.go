package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrappedKindsMatchWithErrorsIs(t *testing.T) {
	err := NotFound("user with id %d is not found", 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.Contains(t, err.Error(), "user with id 42")

	assert.True(t, errors.Is(Forbidden("only owner can update its items"), ErrForbidden))
	assert.True(t, errors.Is(InvalidArgument("unknown state: %s", "WRONG"), ErrInvalidArgument))
	assert.True(t, errors.Is(InvalidInterval("end must be after start"), ErrInvalidInterval))
	assert.True(t, errors.Is(InvalidState("item is unavailable"), ErrInvalidState))
	assert.True(t, errors.Is(Conflict("email already in use"), ErrConflict))
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("sqlite disk I/O error")
	err := Internal(cause)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
	assert.NotContains(t, err.Error(), "sqlite")

	assert.NoError(t, Internal(nil))
}
