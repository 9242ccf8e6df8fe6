package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct code", func(t *testing.T) {
		err := New(CodeNotReady, "nothing to preserve")
		assert.True(t, HasCode(err, CodeNotReady))
		assert.False(t, HasCode(err, CodeInvalidState))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("bulk preserve: %w", New(CodeInvalidState, "tag not active"))
		assert.True(t, HasCode(err, CodeInvalidState))
	})

	t.Run("outermost code wins", func(t *testing.T) {
		inner := New(CodeNotFound, "tag not found")
		err := Wrap(inner, CodeInternal, "failed to load tag")
		assert.True(t, HasCode(err, CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(err))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(stderrors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(stderrors.New("boom")))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection reset")

	assert.Nil(t, Wrap(nil, CodeInternal, "ignored"))

	err := Wrap(cause, CodeInternal, "failed to save tag")
	assert.Equal(t, "failed to save tag: connection reset", err.Error())
	assert.True(t, Is(err, cause))
}
