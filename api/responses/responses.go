package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
	"github.com/angelmondragon/orderdesk-backend/pkg/logger"
	"github.com/angelmondragon/orderdesk-backend/pkg/types"
)

// WriteSuccess writes a 200 envelope carrying data and message.
func WriteSuccess(w http.ResponseWriter, data any, message string) {
	WriteSuccessStatus(w, http.StatusOK, data, message)
}

func WriteSuccessStatus(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, types.Envelope{Success: true, Data: data, Message: message})
}

// WriteError maps err onto its HTTP status. Validation failures put the
// field -> messages map in message; internal errors never leak their text.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	var message any = meta.PublicMessage
	if typed.Exposed() && typed.Message() != "" {
		message = typed.Message()
	}
	if meta.DetailsAllowed {
		if details, ok := typed.Details().(map[string][]string); ok && len(details) > 0 {
			message = details
		}
	}

	if logg != nil {
		fields := pkgerrors.Dump(err).Fields()
		fields["status"] = meta.HTTPStatus
		ctx = logg.WithFields(ctx, fields)
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Debug(ctx, "request.rejected")
		}
	}

	writeJSON(w, meta.HTTPStatus, types.Envelope{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
