package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cache2k25/registration-backend/internal/model"
	"github.com/cache2k25/registration-backend/internal/queue"
	"github.com/cache2k25/registration-backend/internal/regid"
	"github.com/cache2k25/registration-backend/internal/repository"
	"github.com/cache2k25/registration-backend/internal/validate"
)

// maxCreateAttempts bounds the regenerate-and-retry loop used when a
// generated registration code collides with an existing one.
const maxCreateAttempts = 3

type submitResp struct {
	ID             uint64 `json:"id"`
	RegistrationID string `json:"registrationId"`
}

// Submit handles the public registration form.  The multipart body carries
// the participant fields, an optional paymentProof image and an optional
// teamMembers JSON array.  Validation failures return 400 with a specific
// message; upload and storage failures return a generic 500 with the detail
// kept in the server log.
func (h *RegistrationHandler) Submit(c echo.Context) error {
	raw := validate.Submission{
		Name:         c.FormValue("name"),
		Contact:      c.FormValue("contact"),
		Email:        c.FormValue("email"),
		College:      c.FormValue("college"),
		RollNumber:   c.FormValue("rollNumber"),
		EventID:      c.FormValue("eventId"),
		EventName:    c.FormValue("eventName"),
		Amount:       c.FormValue("price"),
		UTR:          c.FormValue("utr"),
		PaymentPhone: c.FormValue("paymentPhone"),
		GameID:       c.FormValue("gameId"),
		TeamMembers:  c.FormValue("teamMembers"),
	}

	reg, err := validate.Parse(raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	if url, err := h.uploadProof(c); err != nil {
		log.Printf("submit: proof upload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to store payment proof"})
	} else if url != "" {
		reg.PaymentProof = &url
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// A code collision is possible in theory; regenerate instead of
	// bouncing the submitter.
	for attempt := 1; ; attempt++ {
		reg.RegistrationID = regid.Generate()
		err = h.Store.Create(ctx, &reg)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicateRegID) || attempt == maxCreateAttempts {
			log.Printf("submit: create failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "failed to save registration"})
		}
	}

	h.publishCreated(c.Request().Context(), &reg)

	return c.JSON(http.StatusOK, submitResp{ID: reg.ID, RegistrationID: reg.RegistrationID})
}

// uploadProof streams the optional proof image to object storage and
// returns its URL.  No file or no configured uploader yields "" without
// error; the proof is optional.
func (h *RegistrationHandler) uploadProof(c echo.Context) (string, error) {
	if h.Uploader == nil {
		return "", nil
	}
	fh, err := c.FormFile("paymentProof")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()
	return h.Uploader.Upload(ctx, fh.Filename, src, fh.Size, fh.Header.Get("Content-Type"))
}

func (h *RegistrationHandler) publishCreated(ctx context.Context, reg *model.Registration) {
	if h.Events == nil {
		return
	}
	_ = h.Events.RegistrationCreated(ctx, queue.RegistrationCreatedEvent{
		ID:             reg.ID,
		RegistrationID: reg.RegistrationID,
		Name:           reg.Name,
		Email:          reg.Email,
		EventID:        reg.EventID,
		EventName:      reg.EventName,
		Kind:           reg.Kind,
		TeamSize:       len(reg.TeamMembers),
		Amount:         reg.TransactionAmount,
		CreatedAt:      reg.CreatedAt.UTC().Format(time.RFC3339),
	})
}
