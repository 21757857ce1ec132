package middleware

import (
	"context"
	"net/http"

	"github.com/angelmondragon/orderdesk-backend/api/responses"
	"github.com/angelmondragon/orderdesk-backend/api/validators"
	"github.com/angelmondragon/orderdesk-backend/internal/policy"
	pkgAuth "github.com/angelmondragon/orderdesk-backend/pkg/auth"
	"github.com/angelmondragon/orderdesk-backend/pkg/auth/session"
	"github.com/angelmondragon/orderdesk-backend/pkg/config"
	"github.com/angelmondragon/orderdesk-backend/pkg/db"
	"github.com/angelmondragon/orderdesk-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
	"github.com/angelmondragon/orderdesk-backend/pkg/logger"
)

// MsgTokenInvalid is returned for every authentication failure.
const MsgTokenInvalid = "Token is required or invalid"

// UserLoader resolves the user behind a token.
type UserLoader interface {
	FindByID(ctx context.Context, id uint64) (*models.User, error)
}

// Auth validates a bearer token, checks its session is still open, and seeds
// the request context with the current user row as a policy.Actor.
func Auth(cfg config.JWTConfig, sessions session.Checker, users UserLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			reject := func(err error) {
				responses.WriteError(ctx, logg, w, err)
			}

			token, err := validators.ParseBearer(r.Header.Get("Authorization"))
			if err != nil {
				reject(pkgerrors.New(pkgerrors.CodeUnauthorized, MsgTokenInvalid))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				reject(pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, MsgTokenInvalid))
				return
			}

			ok, err := sessions.HasSession(ctx, claims.ID)
			if err != nil {
				reject(pkgerrors.Wrap(pkgerrors.CodeDependency, err, "validate session"))
				return
			}
			if !ok {
				reject(pkgerrors.New(pkgerrors.CodeUnauthorized, MsgTokenInvalid))
				return
			}

			user, err := users.FindByID(ctx, claims.UserID)
			if err != nil {
				if db.IsNotFound(err) {
					reject(pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, MsgTokenInvalid))
					return
				}
				reject(pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load token user"))
				return
			}

			actor := policy.Actor{ID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin}
			ctx = WithActor(ctx, actor)
			ctx = WithAccessID(ctx, claims.ID)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":  user.ID,
					"is_admin": user.IsAdmin,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
