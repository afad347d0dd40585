// Package repository implements the persistence layer over MySQL.  Sentinel
// errors defined here let handlers distinguish failure scenarios without
// inspecting driver errors: ErrNotFound maps to HTTP 404, ErrDuplicateRegID
// tells the create path to regenerate the registration code and retry.
package repository

import "errors"

// ErrNotFound is returned when a registration or admin lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicateRegID is returned when an insert violates the unique index on
// registrations.registration_id.  Statistically rare (32^8 code space), but
// the store surfaces it so the caller can retry with a fresh code instead of
// failing the submission.
var ErrDuplicateRegID = errors.New("duplicate registration id")
