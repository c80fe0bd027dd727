package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidInput    = errors.New("invalid input")
)

var (
	ErrAlreadyVoted = fmt.Errorf("you have already voted for this feedback: %w", ErrConflict)
	ErrVoteNotFound = fmt.Errorf("vote %w", ErrNotFound)
	ErrNotOwner     = fmt.Errorf("%w: feedback belongs to another company", ErrForbidden)
)

// NotFoundError names the missing resource, so callers can tell
// "this item does not exist" apart from other not-found cases.
type NotFoundError struct {
	Resource string
	Key      string
	Value    string
}

func (e NotFoundError) Error() string {
	key := e.Key
	if key == "" {
		key = "ID"
	}
	return fmt.Sprintf("%s with %s %s not found", e.Resource, key, e.Value)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func FeedbackNotFound(id string) NotFoundError {
	return NotFoundError{Resource: "Feedback", Value: id}
}
