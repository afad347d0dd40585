package model

import "time"

// Participation kinds stored on a registration.  The kind is decided once at
// submission time from the event name and never recomputed afterwards, so a
// later rename of the event cannot change how an existing ticket renders.
const (
	KindStandard = "STANDARD"
	KindEsports  = "ESPORTS"
)

// Registration records one participant's (or team's) enrollment for a fest
// event, together with the payment evidence supplied at submission and the
// admin verification state that gates ticket issuance.
//
// Fields:
//  ID                – primary key identifier.
//  RegistrationID    – human-facing code ("C25-" + 8-char suffix), unique,
//                      assigned exactly once at creation.
//  Name, Contact, Email, College, RollNumber – primary participant identity.
//  EventID, EventName – event registered for (free-form; the event catalog
//                      is not validated here).
//  Kind              – participation kind (STANDARD or ESPORTS).
//  TransactionDate   – when the payment evidence was submitted.
//  TransactionAmount – declared payment amount (0 when absent).
//  UTR               – 12-digit payment transaction reference.
//  PaymentPhone      – 10-digit phone used for payment.
//  PaymentProof      – URL of the uploaded proof image (nullable).
//  GameID            – primary participant's game id (nullable, esports).
//  TeamMembers       – team roster in submission order; empty for solo.
//  Verified          – payment verification flag, false at creation.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Registration struct {
	ID                uint64       `json:"id"`
	RegistrationID    string       `json:"registrationId"`
	Name              string       `json:"name"`
	Contact           string       `json:"contact"`
	Email             string       `json:"email"`
	College           string       `json:"college"`
	RollNumber        string       `json:"rollNumber"`
	EventID           string       `json:"eventId"`
	EventName         string       `json:"eventName"`
	Kind              string       `json:"kind"`
	TransactionDate   time.Time    `json:"transactionDate"`
	TransactionAmount float64      `json:"transactionAmount"`
	UTR               string       `json:"utr"`
	PaymentPhone      string       `json:"paymentPhone"`
	PaymentProof      *string      `json:"paymentProof"`
	GameID            *string      `json:"gameId"`
	TeamMembers       []TeamMember `json:"teamMembers"`
	Verified          bool         `json:"verified"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// TeamMember is one entry of a registration's team roster.  Members are
// stored and returned in the order they appeared in the submission.
type TeamMember struct {
	Name       string  `json:"name"`
	Contact    string  `json:"contact"`
	Email      string  `json:"email"`
	RollNumber string  `json:"rollNumber"`
	GameID     *string `json:"gameId,omitempty"`
}

// IsEsports reports whether the registration was classified as an esports
// participation at submission time.
func (r *Registration) IsEsports() bool { return r.Kind == KindEsports }
