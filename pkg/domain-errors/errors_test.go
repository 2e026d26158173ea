package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	err := New(CodeNotFound, "nope")
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeBadRequest))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, HasCode(wrapped, CodeNotFound))
}

func TestWrap_KeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Wrap(cause, CodeInternal, "Something went wrong")

	assert.Equal(t, "Something went wrong", Message(err))
	assert.ErrorIs(t, err, cause)
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeBadRequest))
	assert.Equal(t, http.StatusNotFound, ToHTTPStatus(CodeNotFound))
	assert.Equal(t, http.StatusConflict, ToHTTPStatus(CodeConflict))
	// Both retryable server-side kinds collapse to 500 on the wire.
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(CodeInternal))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(CodeUnavailable))
}

func TestGetCode_DefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, GetCode(errors.New("unclassified")))
	assert.Equal(t, "internal error", Message(errors.New("unclassified")))
}
