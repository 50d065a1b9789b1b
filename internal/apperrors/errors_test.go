// internal/apperrors/errors_test.go
package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindToHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{BadRequest("bad"), http.StatusBadRequest},
		{Unauthenticated("who"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.err))
	}
}

func TestMessageHidesUnclassifiedErrors(t *testing.T) {
	assert.Equal(t, "internal server error", Message(errors.New("sql: secret detail")))
	assert.Equal(t, "internal server error", Message(Internal(errors.New("driver exploded"))))
	assert.Equal(t, "user not found", Message(NotFound("user not found")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(KindBadRequest, "validation failed", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, KindBadRequest, KindOf(err))
	assert.True(t, IsKind(err, KindBadRequest))
	assert.False(t, IsKind(err, KindConflict))
}

func TestNewf(t *testing.T) {
	err := Newf(KindNotFound, "user with id %d not found", 7)
	assert.Equal(t, "user with id 7 not found", Message(err))
	assert.Equal(t, KindNotFound, KindOf(err))
}
