package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message json.RawMessage `json:"message"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, map[string]string{"hello": "world"}, "Done.")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	body := decode(t, w)
	assert.True(t, body.Success)
	assert.JSONEq(t, `{"hello":"world"}`, string(body.Data))
	assert.JSONEq(t, `"Done."`, string(body.Message))
}

func TestWriteErrorValidationPutsFieldsInMessage(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "The given data was invalid.").
		WithDetails(map[string][]string{"order_number": {"The order number has already been taken."}})
	WriteError(context.Background(), nil, w, err)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.False(t, body.Success)
	assert.JSONEq(t, `null`, string(body.Data))
	assert.JSONEq(t, `{"order_number":["The order number has already been taken."]}`, string(body.Message))
}

func TestWriteErrorStatusAndMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"forbidden", pkgerrors.New(pkgerrors.CodeForbidden, "Unauthorized access. Only admin can confirm the order."), http.StatusForbidden, "Unauthorized access. Only admin can confirm the order."},
		{"not found", pkgerrors.New(pkgerrors.CodeNotFound, "Order not found."), http.StatusNotFound, "Order not found."},
		{"unauthorized", pkgerrors.New(pkgerrors.CodeUnauthorized, ""), http.StatusUnauthorized, "Token is required or invalid"},
		{"internal hidden", pkgerrors.New(pkgerrors.CodeInternal, "sql: connection refused"), http.StatusInternalServerError, "Internal server error."},
		{"internal public", pkgerrors.New(pkgerrors.CodeInternal, "Failed to delete the order.").Public(), http.StatusInternalServerError, "Failed to delete the order."},
		{"untyped", errors.New("boom"), http.StatusInternalServerError, "Internal server error."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(context.Background(), nil, w, tc.err)
			assert.Equal(t, tc.status, w.Code)
			var message string
			require.NoError(t, json.Unmarshal(decode(t, w).Message, &message))
			assert.Equal(t, tc.message, message)
		})
	}
}
