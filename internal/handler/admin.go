package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cache2k25/registration-backend/internal/queue"
	"github.com/cache2k25/registration-backend/internal/repository"
)

type verifyReq struct {
	Verified bool `json:"verified"`
}

// SetVerified flips the verification flag of one registration.  The
// operation is idempotent in both directions: re-sending the current value
// succeeds and changes nothing.
func (h *RegistrationHandler) SetVerified(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Registration not found"})
	}
	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reg, err := h.Store.SetVerified(ctx, id, req.Verified)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Registration not found"})
		}
		log.Printf("verify: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	// The cached admin listing now lies; drop it.
	if h.Cache != nil {
		h.Cache.Bust(c.Request().Context())
	}
	if h.Events != nil {
		_ = h.Events.RegistrationVerified(c.Request().Context(), queue.RegistrationVerifiedEvent{
			ID:             reg.ID,
			RegistrationID: reg.RegistrationID,
			EventName:      reg.EventName,
			Verified:       reg.Verified,
			ChangedAt:      time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, reg)
}

// ListAll returns every registration, newest first, for the admin
// dashboard.
func (h *RegistrationHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	regs, err := h.Store.ListAll(ctx)
	if err != nil {
		log.Printf("list: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, regs)
}
