package errors

import "errors"

// Shared application errors. Services wrap these with fmt.Errorf("%w: ...")
// and handlers map them onto HTTP status codes in one place.
var (
	// ErrNotFound is returned when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned for missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks permission for an action.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is returned for malformed or incomplete input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned for resource state conflicts.
	ErrConflict = errors.New("resource state conflict")

	// ErrQuizInactive is returned when answers are submitted for a quiz
	// that is no longer being served.
	ErrQuizInactive = errors.New("quiz is no longer active")

	// ErrAlreadyCompleted is returned when a user who already has a
	// completion record tries to fetch or retake the active quiz.
	ErrAlreadyCompleted = errors.New("quiz already completed")

	// ErrNoActiveQuiz is returned when no quiz exists to serve at all.
	ErrNoActiveQuiz = errors.New("no active quiz found")
)
