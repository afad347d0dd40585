// Package validate checks and normalizes incoming registration submissions
// before they reach the store.  Parsing is a pure function: nothing is
// persisted or uploaded here, and the first failing rule wins.
package validate

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cache2k25/registration-backend/internal/model"
)

// Validation failures returned by Parse.  Handlers surface the message of
// these errors verbatim with a 400 status.
var (
	ErrInvalidUTR         = errors.New("invalid UTR number (must be 12 digits)")
	ErrInvalidPhone       = errors.New("invalid phone number (must be 10 digits)")
	ErrMemberFieldMissing = errors.New("all team member fields are required")
	ErrMemberGameID       = errors.New("invalid game ID format for team member")
	ErrGameID             = errors.New("invalid game ID format")
	ErrInvalidPayload     = errors.New("invalid payload")
)

var (
	utrRe    = regexp.MustCompile(`^\d{12}$`)
	phoneRe  = regexp.MustCompile(`^\d{10}$`)
	gameIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// Submission carries the raw form fields of a registration request.
// TeamMembers is the wire representation: a JSON array of member objects,
// or empty for solo participation.  Amount arrives as the free-form "price"
// field and is coerced during parsing.
type Submission struct {
	Name         string
	Contact      string
	Email        string
	College      string
	RollNumber   string
	EventID      string
	EventName    string
	Amount       string
	UTR          string
	PaymentPhone string
	GameID       string
	TeamMembers  string
}

type wireMember struct {
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	Email      string `json:"email"`
	RollNumber string `json:"rollNumber"`
	GameID     string `json:"gameId"`
}

// Parse validates a raw submission and, on success, returns a normalized
// registration ready for the store: amount coerced to a number (0 when
// absent or non-numeric), transaction date set to now, and the
// participation kind classified from the event name.  Rules are applied in
// a fixed order and short-circuit on the first violation:
//
//  1. UTR must be exactly 12 digits.
//  2. Payment phone must be exactly 10 digits.
//  3. Team members, when supplied, must parse as JSON and every member
//     needs a non-empty name, contact, email and roll number; a member's
//     optional game id must match [A-Za-z0-9_-]+.  One bad member rejects
//     the whole batch.
//  4. The primary participant's optional game id must match the same
//     pattern.
func Parse(raw Submission) (model.Registration, error) {
	if !utrRe.MatchString(raw.UTR) {
		return model.Registration{}, ErrInvalidUTR
	}
	if !phoneRe.MatchString(raw.PaymentPhone) {
		return model.Registration{}, ErrInvalidPhone
	}

	var members []model.TeamMember
	if raw.TeamMembers != "" {
		var wire []wireMember
		if err := json.Unmarshal([]byte(raw.TeamMembers), &wire); err != nil {
			return model.Registration{}, ErrInvalidPayload
		}
		members = make([]model.TeamMember, 0, len(wire))
		for _, m := range wire {
			if m.Name == "" || m.Contact == "" || m.Email == "" || m.RollNumber == "" {
				return model.Registration{}, ErrMemberFieldMissing
			}
			if m.GameID != "" && !gameIDRe.MatchString(m.GameID) {
				return model.Registration{}, ErrMemberGameID
			}
			member := model.TeamMember{
				Name:       m.Name,
				Contact:    m.Contact,
				Email:      m.Email,
				RollNumber: m.RollNumber,
			}
			if m.GameID != "" {
				gid := m.GameID
				member.GameID = &gid
			}
			members = append(members, member)
		}
	}

	if raw.GameID != "" && !gameIDRe.MatchString(raw.GameID) {
		return model.Registration{}, ErrGameID
	}

	reg := model.Registration{
		Name:              raw.Name,
		Contact:           raw.Contact,
		Email:             raw.Email,
		College:           raw.College,
		RollNumber:        raw.RollNumber,
		EventID:           raw.EventID,
		EventName:         raw.EventName,
		Kind:              Classify(raw.EventName),
		TransactionDate:   time.Now().UTC(),
		TransactionAmount: parseAmount(raw.Amount),
		UTR:               raw.UTR,
		PaymentPhone:      raw.PaymentPhone,
		TeamMembers:       members,
		Verified:          false,
	}
	if raw.GameID != "" {
		gid := raw.GameID
		reg.GameID = &gid
	}
	return reg, nil
}

// Classify maps an event name to a participation kind.  The check is a
// case-sensitive substring test: any event whose name contains "Esports"
// counts as an esports participation.  Deliberately coarse; the result is
// stored on the registration so later renames cannot reclassify it.
func Classify(eventName string) string {
	if strings.Contains(eventName, "Esports") {
		return model.KindEsports
	}
	return model.KindStandard
}

// parseAmount coerces the free-form price field.  Anything that does not
// parse as a number becomes 0, matching how absent amounts are recorded.
func parseAmount(s string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return n
}
