package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("purchase: %w", Conflict("User already owns course(s): 3", 3))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, Is(err, KindConflict))

	var ae *Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, []uint{3}, ae.IDs)
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindUnexpected, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindUnexpected))
}

func TestUnexpectedKeepsTypedErrors(t *testing.T) {
	nf := NotFound("missing")
	assert.Same(t, nf, Unexpected(nf))

	raw := errors.New("db down")
	wrapped := Unexpected(raw)
	assert.Equal(t, KindUnexpected, wrapped.Kind)
	assert.ErrorIs(t, wrapped, raw)
}

func TestStatus(t *testing.T) {
	cases := map[Kind]int{
		KindInput:      http.StatusBadRequest,
		KindNotFound:   http.StatusNotFound,
		KindConflict:   http.StatusConflict,
		KindAuth:       http.StatusUnauthorized,
		KindUnexpected: http.StatusInternalServerError,
	}
	for k, want := range cases {
		assert.Equal(t, want, k.Status(), k.String())
	}
}

func TestAuthMessageIsFixed(t *testing.T) {
	assert.Equal(t, InvalidCredentials, Auth().Error())
	assert.Equal(t, "1, 2, 10", JoinIDs([]uint{1, 2, 10}))
}
