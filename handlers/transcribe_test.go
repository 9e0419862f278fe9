package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultipartErrorStatus(t *testing.T) {
	// only an over-limit body is 413
	assert.Equal(t, http.StatusRequestEntityTooLarge, multipartErrorStatus(&http.MaxBytesError{Limit: 10}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, multipartErrorStatus(fmt.Errorf("reading form: %w", &http.MaxBytesError{Limit: 10})))

	// anything else is a malformed request
	assert.Equal(t, http.StatusBadRequest, multipartErrorStatus(errors.New("multipart: NextPart: EOF")))
}
