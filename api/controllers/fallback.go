package controllers

import (
	"net/http"

	"github.com/angelmondragon/orderdesk-backend/api/middleware"
	"github.com/angelmondragon/orderdesk-backend/api/responses"
	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
	"github.com/angelmondragon/orderdesk-backend/pkg/logger"
)

const MsgRouteNotFound = "The requested URL was not found on the server."

// NotFound answers every unmatched route.
func NotFound(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, MsgRouteNotFound))
	}
}

func MethodNotAllowed(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeMethodNotAllowed, ""))
	}
}

// LoginRequired is the target unauthenticated browsers are sent to.
func LoginRequired(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, middleware.MsgTokenInvalid))
	}
}
