package webvision_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/webvision"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns the code of an application error", func(t *testing.T) {
		t.Parallel()

		err := webvision.Errorf(webvision.ENOTFOUND, "Website not found")

		assert.Equal(t, webvision.ENOTFOUND, webvision.ErrorCode(err))
	})

	t.Run("returns EINTERNAL for non-application errors", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, webvision.EINTERNAL, webvision.ErrorCode(errors.New("boom")))
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", webvision.ErrorCode(nil))
	})

	t.Run("unwraps wrapped application errors", func(t *testing.T) {
		t.Parallel()

		inner := webvision.Errorf(webvision.EINVALID, "bad input")
		wrapped := fmt.Errorf("normalizing url: %w", inner)

		assert.Equal(t, webvision.EINVALID, webvision.ErrorCode(wrapped))
		assert.Equal(t, "bad input", webvision.ErrorMessage(wrapped))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns the message of an application error", func(t *testing.T) {
		t.Parallel()

		err := webvision.Errorf(webvision.EINVALID, "URL is required")

		assert.Equal(t, "URL is required", webvision.ErrorMessage(err))
	})

	t.Run("returns a generic message for non-application errors", func(t *testing.T) {
		t.Parallel()

		msg := webvision.ErrorMessage(errors.New("sql: connection reset"))

		assert.Equal(t, "Internal error.", msg)
		assert.NotContains(t, msg, "sql")
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", webvision.ErrorMessage(nil))
	})
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	err := webvision.Errorf(webvision.EFORBIDDEN, "website blocked access")

	assert.Contains(t, err.Error(), webvision.EFORBIDDEN)
	assert.Contains(t, err.Error(), "website blocked access")
}
