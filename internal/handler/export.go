package handler

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cache2k25/registration-backend/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export downloads the full registration listing as a spreadsheet.  Every
// registration is included regardless of verification state.
func (h *RegistrationHandler) Export(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	regs, err := h.Store.ListAll(ctx)
	if err != nil {
		log.Printf("export: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to export registrations"})
	}

	wb, err := export.Workbook(regs)
	if err != nil {
		log.Printf("export: workbook build failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to export registrations"})
	}
	defer wb.Close()

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		log.Printf("export: workbook write failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to export registrations"})
	}

	c.Response().Header().Set("Content-Disposition", "attachment; filename=registrations.xlsx")
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
