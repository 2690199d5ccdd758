// Package repository contains data access logic separated from HTTP
// handlers. This file defines error values that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as handlers to distinguish between different failure scenarios
// and map them to HTTP status codes.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete a ticket type that already has issued tickets. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrEventNotFound is returned when an event cannot be found.
var ErrEventNotFound = errors.New("event not found")

// ErrTicketTypeNotFound is returned when a ticket type cannot be
// found within the scope it was requested in.
var ErrTicketTypeNotFound = errors.New("ticket type not found")

// ErrAlreadyRegistered is returned when a user attempts to join an
// event they already have an active registration for.
var ErrAlreadyRegistered = errors.New("already registered")
