package script

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	domainError "github.com/omega/animator/internal/domain/error"
)

// Script is a generated animation script and the state of its latest
// top-level execution request.
type Script struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	Prompt       string
	Content      string
	Provider     string
	SceneClass   string
	Status       Status
	OutputPath   string
	OutputURL    string
	ErrorMessage string
	Attempts     int
}

type ScriptPatch struct {
	Content      *string
	SceneClass   *string
	Status       *Status
	OutputPath   *string
	OutputURL    *string
	ErrorMessage *string
	Attempts     *int
}

func New(prompt, content, provider string) *Script {
	return &Script{
		ID:       uuid.NewString(),
		Prompt:   prompt,
		Content:  content,
		Provider: provider,
		Status:   StatusPending,
	}
}

// TransitionTo moves the script to next, rejecting moves the lifecycle does
// not allow.
func (s *Script) TransitionTo(next Status) error {
	if !s.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", domainError.ErrInvalidStatusTransition, s.Status, next)
	}
	s.Status = next
	return nil
}

// Reset prepares a finished script for a new top-level execution request.
func (s *Script) Reset() error {
	if s.Status.IsActive() {
		return domainError.ErrScriptBusy
	}
	s.Status = StatusPending
	s.OutputPath = ""
	s.OutputURL = ""
	s.ErrorMessage = ""
	s.Attempts = 0
	return nil
}

func (s *Script) MarkSuccessful(content, outputPath, outputURL string, attempts int) error {
	if err := s.TransitionTo(StatusSuccessful); err != nil {
		return err
	}
	s.Content = content
	s.OutputPath = outputPath
	s.OutputURL = outputURL
	s.ErrorMessage = ""
	s.Attempts = attempts
	return nil
}

func (s *Script) MarkFailed(reason string, attempts int) error {
	if err := s.TransitionTo(StatusFailed); err != nil {
		return err
	}
	s.ErrorMessage = reason
	s.Attempts = attempts
	return nil
}

// ResultPatch holds every field a finished run writes.
func (s *Script) ResultPatch() *ScriptPatch {
	return &ScriptPatch{
		Content:      &s.Content,
		SceneClass:   &s.SceneClass,
		Status:       &s.Status,
		OutputPath:   &s.OutputPath,
		OutputURL:    &s.OutputURL,
		ErrorMessage: &s.ErrorMessage,
		Attempts:     &s.Attempts,
	}
}
