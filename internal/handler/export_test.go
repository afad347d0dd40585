package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cache2k25/registration-backend/internal/export"
)

func TestExport_EmptyStoreHeaderOnly(t *testing.T) {
	h := NewRegistrationHandler(newMemStore(), nil, nil, nil, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/registrations/admin/export", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Export(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "attachment; filename=registrations.xlsx", rec.Header().Get("Content-Disposition"))

	wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1, "header row only")
}

func TestExport_IncludesUnverified(t *testing.T) {
	store := newMemStore()
	h := NewRegistrationHandler(store, nil, nil, nil, nil)
	seedRegistration(t, store) // unverified

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/registrations/admin/export", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Export(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "C25-SEEDAAAA", rows[1][0])
	assert.Equal(t, "No", rows[1][13])
}
