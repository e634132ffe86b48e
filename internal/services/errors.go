package services

import (
	"errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Quiz catalog errors
	ErrQuizNotFound = errors.New("quiz not found")
	ErrQuizEmpty    = errors.New("quiz has no questions")
	ErrStoreRead    = errors.New("failed to read from result store")

	// Session errors
	ErrSessionNotFound    = errors.New("quiz session not found")
	ErrSessionNotOwned    = errors.New("quiz session belongs to another user")
	ErrSessionFinished    = errors.New("quiz session already finished")
	ErrSessionNotFinished = errors.New("quiz session still in progress")
	ErrInvalidOption      = errors.New("selected option does not exist")

	// Submission errors
	ErrNotAuthenticated = errors.New("no resolvable user identity")
	ErrStoreWrite       = errors.New("failed to write score to result store")
)

// IsNotFound checks if error represents a "not found" condition. An empty
// quiz is treated the same as a missing one: neither can start a session.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrQuizEmpty) ||
		errors.Is(err, ErrSessionNotFound)
}

// IsUnauthorized checks if error represents an identity failure.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}

// IsForbidden checks if error represents an ownership violation.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrSessionNotOwned)
}

// IsConflict checks if error represents an invalid state transition.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSessionFinished) ||
		errors.Is(err, ErrSessionNotFinished)
}

// IsStoreFailure checks if error represents an external store rejection.
func IsStoreFailure(err error) bool {
	return errors.Is(err, ErrStoreWrite) || errors.Is(err, ErrStoreRead)
}
