package script

import (
	"testing"

	domainError "github.com/omega/animator/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle(t *testing.T) {
	s := New("draw a circle", "from manim import *", "gemini")
	require.NotEmpty(t, s.ID)
	assert.Equal(t, StatusPending, s.Status)

	require.NoError(t, s.TransitionTo(StatusExecuting))
	require.NoError(t, s.TransitionTo(StatusDebugging))
	require.NoError(t, s.TransitionTo(StatusExecuting))
	require.NoError(t, s.MarkSuccessful("fixed", "videos/a/720p30/A.mp4", "http://x/media/videos/a/720p30/A.mp4", 2))

	assert.Equal(t, StatusSuccessful, s.Status)
	assert.Equal(t, "fixed", s.Content)
	assert.Equal(t, 2, s.Attempts)
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	for _, terminal := range []Status{StatusSuccessful, StatusFailed} {
		s := &Script{Status: terminal}
		for _, next := range []Status{StatusPending, StatusExecuting, StatusDebugging, StatusSuccessful, StatusFailed} {
			err := s.TransitionTo(next)
			assert.ErrorIs(t, err, domainError.ErrInvalidStatusTransition, "%s -> %s", terminal, next)
		}
	}
}

func TestPendingCannotSkipToSuccess(t *testing.T) {
	s := &Script{Status: StatusPending}
	assert.ErrorIs(t, s.TransitionTo(StatusSuccessful), domainError.ErrInvalidStatusTransition)
	assert.ErrorIs(t, s.TransitionTo(StatusDebugging), domainError.ErrInvalidStatusTransition)
}

func TestReset(t *testing.T) {
	s := &Script{Status: StatusFailed, ErrorMessage: "boom", Attempts: 3}
	require.NoError(t, s.Reset())
	assert.Equal(t, StatusPending, s.Status)
	assert.Empty(t, s.ErrorMessage)
	assert.Zero(t, s.Attempts)

	busy := &Script{Status: StatusDebugging}
	assert.ErrorIs(t, busy.Reset(), domainError.ErrScriptBusy)
}
