package dErrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCodeThroughWrapping(t *testing.T) {
	base := New(CodeNotFound, "province with id 7 not found")
	wrapped := fmt.Errorf("lookup failed: %w", base)

	assert.True(t, HasCode(wrapped, CodeNotFound))
	assert.False(t, HasCode(wrapped, CodeBadRequest))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "query failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, "query failed", MessageOf(err))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeInternal:     http.StatusInternalServerError,
		Code("unknown"):  http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}

func TestMessageOfUncoded(t *testing.T) {
	assert.Equal(t, "internal error", MessageOf(errors.New("driver: bad connection")))
}
