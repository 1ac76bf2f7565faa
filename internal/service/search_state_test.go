package service

import (
	"errors"
	"testing"

	"shareit/internal/apperr"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchState(t *testing.T) {
	cases := map[string]string{
		"":          models.SearchStateAll,
		"ALL":       models.SearchStateAll,
		"all":       models.SearchStateAll,
		" current ": models.SearchStateCurrent,
		"PAST":      models.SearchStatePast,
		"Future":    models.SearchStateFuture,
		"waiting":   models.SearchStateWaiting,
		"REJECTED":  models.SearchStateRejected,
	}

	for raw, want := range cases {
		got, err := ParseSearchState(raw)
		require.NoError(t, err, "input %q", raw)
		assert.Equal(t, want, got, "input %q", raw)
	}

	for _, raw := range []string{"SOMEDAY", "approved", "42"} {
		_, err := ParseSearchState(raw)
		assert.True(t, errors.Is(err, apperr.ErrInvalidArgument), "input %q", raw)
	}
}
