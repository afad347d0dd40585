package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cache2k25/registration-backend/internal/repository"
	"github.com/cache2k25/registration-backend/internal/ticket"
)

// Ticket renders and downloads the PDF ticket of a verified registration.
// Requesting a ticket for an unverified registration is a 400; rendering
// failures surface as a generic 500 with the compiler detail in the log.
func (h *RegistrationHandler) Ticket(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Registration not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	reg, err := h.Store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Registration not found"})
		}
		log.Printf("ticket: lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	// Rendering shells out to a TeX toolchain; give it more room than a
	// DB call but keep it bounded.
	renderCtx, cancelRender := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancelRender()
	pdf, err := ticket.Generate(renderCtx, reg, h.Renderer)
	if err != nil {
		if errors.Is(err, ticket.ErrNotVerified) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Registration not verified"})
		}
		log.Printf("ticket: render failed for %s: %v", reg.RegistrationID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to generate ticket"})
	}

	c.Response().Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=ticket-%s.pdf", reg.RegistrationID))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
