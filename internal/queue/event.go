// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into an audit log.
package queue

// Queue names used for registration lifecycle events.
const (
	CreatedQueue  = "registration.created"
	VerifiedQueue = "registration.verified"
)

// RegistrationCreatedEvent is published after a submission is persisted.
// It carries enough information for downstream consumers to log or notify
// without querying the primary database.
type RegistrationCreatedEvent struct {
	ID             uint64  `json:"id"`
	RegistrationID string  `json:"registration_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	EventID        string  `json:"event_id"`
	EventName      string  `json:"event_name"`
	Kind           string  `json:"kind"`
	TeamSize       int     `json:"team_size"`
	Amount         float64 `json:"amount"`
	CreatedAt      string  `json:"created_at"`
}

// RegistrationVerifiedEvent is published whenever an admin flips the
// verification flag, in either direction.
type RegistrationVerifiedEvent struct {
	ID             uint64 `json:"id"`
	RegistrationID string `json:"registration_id"`
	EventName      string `json:"event_name"`
	Verified       bool   `json:"verified"`
	ChangedAt      string `json:"changed_at"`
}
