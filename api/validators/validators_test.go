package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
)

type sampleBody struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Note   *string `json:"note"`
}

func decodeBody(t *testing.T, raw string) (sampleBody, error) {
	t.Helper()
	var dest sampleBody
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
	err := DecodeJSONBody(httptest.NewRecorder(), req, &dest)
	return dest, err
}

func details(t *testing.T, err error) map[string][]string {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	out, ok := typed.Details().(map[string][]string)
	require.True(t, ok)
	return out
}

func TestDecodeJSONBodyIgnoresUnknownFields(t *testing.T) {
	dest, err := decodeBody(t, `{"name":"A","extra":true}`)
	require.NoError(t, err)
	assert.Equal(t, "A", dest.Name)
}

func TestDecodeJSONBodyAllowsEmptyBody(t *testing.T) {
	dest, err := decodeBody(t, ``)
	require.NoError(t, err)
	assert.Empty(t, dest.Name)
}

func TestDecodeJSONBodyAttributesTypeErrors(t *testing.T) {
	_, err := decodeBody(t, `{"note": 5}`)
	assert.Equal(t, []string{"The note field must be a string."}, details(t, err)["note"])

	_, err = decodeBody(t, `{"amount": "lots"}`)
	assert.Equal(t, []string{"The amount field must be a number."}, details(t, err)["amount"])
}

type PartyFields struct {
	Party *string `json:"party_name"`
}

type sampleEmbedded struct {
	Number string `json:"order_number"`
	PartyFields
}

func TestDecodeJSONBodyStripsEmbeddedPath(t *testing.T) {
	var dest sampleEmbedded
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"party_name": 12}`))
	err := DecodeJSONBody(httptest.NewRecorder(), req, &dest)
	fields := details(t, err)
	assert.Equal(t, []string{"The party name field must be a string."}, fields["party_name"])
	assert.Len(t, fields, 1)
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	_, err := decodeBody(t, `{"name":`)
	assert.Contains(t, details(t, err), "body")
}

func TestParseIDParam(t *testing.T) {
	parse := func(raw string) (uint64, error) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", raw)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		return ParseIDParam(req, "id", "Order not found.")
	}

	id, err := parse("42")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	for _, raw := range []string{"abc", "0", "-3", ""} {
		_, err := parse(raw)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, raw)
		assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
		assert.Equal(t, "Order not found.", typed.Message())
	}
}

func TestParseBearer(t *testing.T) {
	token, err := ParseBearer("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	token, err = ParseBearer("bearer   xyz ")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	for _, raw := range []string{"", "Bearer ", "Basic abc", "abc"} {
		_, err := ParseBearer(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}
