package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cache2k25/registration-backend/internal/model"
)

func patchVerify(h *RegistrationHandler, id, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/registrations/"+id+"/verify", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	_ = h.SetVerified(c)
	return rec
}

func seedRegistration(t *testing.T, store *memStore) *model.Registration {
	t.Helper()
	reg := &model.Registration{
		RegistrationID: "C25-SEEDAAAA",
		Name:           "Asha Rao",
		EventName:      "Code Sprint",
		Kind:           model.KindStandard,
		UTR:            "123456789012",
		PaymentPhone:   "9876543210",
	}
	require.NoError(t, store.Create(t.Context(), reg))
	return reg
}

func TestSetVerified_Idempotent(t *testing.T) {
	store := newMemStore()
	events := &memEvents{}
	h := NewRegistrationHandler(store, nil, nil, events, nil)
	reg := seedRegistration(t, store)

	for i := 0; i < 2; i++ {
		rec := patchVerify(h, "1", `{"verified":true}`)
		require.Equal(t, http.StatusOK, rec.Code, "attempt %d", i+1)

		var got model.Registration
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.True(t, got.Verified)
		assert.Equal(t, reg.RegistrationID, got.RegistrationID)
	}

	stored, err := store.Get(t.Context(), reg.ID)
	require.NoError(t, err)
	assert.True(t, stored.Verified)
	assert.Len(t, events.verified, 2, "each call publishes the resulting state")
}

func TestSetVerified_Unverify(t *testing.T) {
	store := newMemStore()
	h := NewRegistrationHandler(store, nil, nil, nil, nil)
	reg := seedRegistration(t, store)

	require.Equal(t, http.StatusOK, patchVerify(h, "1", `{"verified":true}`).Code)
	require.Equal(t, http.StatusOK, patchVerify(h, "1", `{"verified":false}`).Code)

	stored, err := store.Get(t.Context(), reg.ID)
	require.NoError(t, err)
	assert.False(t, stored.Verified)
}

func TestSetVerified_NotFound(t *testing.T) {
	h := NewRegistrationHandler(newMemStore(), nil, nil, nil, nil)

	rec := patchVerify(h, "42", `{"verified":true}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")

	rec = patchVerify(h, "not-a-number", `{"verified":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAll_NewestFirst(t *testing.T) {
	store := newMemStore()
	h := NewRegistrationHandler(store, nil, nil, nil, nil)
	seedRegistration(t, store)
	second := &model.Registration{RegistrationID: "C25-SEEDBBBB", Name: "Vikram Shah"}
	require.NoError(t, store.Create(t.Context(), second))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/registrations/admin", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListAll(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []model.Registration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "C25-SEEDBBBB", got[0].RegistrationID)
	assert.Equal(t, "C25-SEEDAAAA", got[1].RegistrationID)
}
