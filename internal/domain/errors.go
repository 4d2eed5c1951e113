package domain

import "errors"

// ErrNotFound is returned when a booking, tour, or time period looked up by
// id does not exist where existence is required.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when an action payload fails business rule
// validation (e.g. zero travelers, travel date in the past, duplicate email).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrAuthenticationFailed is returned when the Auth collaborator rejects a
// credential pair.
var ErrAuthenticationFailed = errors.New("authentication failed")

// ErrNotAuthenticated is returned by actions that require a session when
// none is active.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrPersistence wraps failures of the local key-value store. Hydration paths
// log it and carry on; user-initiated actions return it.
var ErrPersistence = errors.New("persistence error")
