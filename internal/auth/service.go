package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/orderdesk-backend/internal/users"
	pkgAuth "github.com/angelmondragon/orderdesk-backend/pkg/auth"
	"github.com/angelmondragon/orderdesk-backend/pkg/auth/session"
	"github.com/angelmondragon/orderdesk-backend/pkg/config"
	"github.com/angelmondragon/orderdesk-backend/pkg/db"
	"github.com/angelmondragon/orderdesk-backend/pkg/db/models"
	"github.com/angelmondragon/orderdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
	"github.com/angelmondragon/orderdesk-backend/pkg/logger"
	"github.com/angelmondragon/orderdesk-backend/pkg/security"
	"github.com/angelmondragon/orderdesk-backend/pkg/validation"
)

const (
	MsgInvalidCredentials = "Invalid username or password."
	MsgLoggedIn           = "User logged in successfully."
	MsgLoggedOut          = "Logged out successfully."
)

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, accessID string) error
}

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}

type sessionManager interface {
	Open(ctx context.Context, accessID string, userID uint64) error
	Revoke(ctx context.Context, accessID string) error
}

type loginRecorder interface {
	IncLogin(outcome string)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Metrics        loginRecorder
	Logger         *logger.Logger
	Now            func() time.Time
}

type service struct {
	users       userRepository
	sessions    sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	metrics     loginRecorder
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:       params.UserRepo,
		sessions:    params.SessionManager,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		metrics:     params.Metrics,
		logg:        params.Logger,
		now:         now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validation.Struct(req).Err(); err != nil {
		s.record("invalid_input")
		return nil, err
	}

	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	s.upgradeHash(ctx, user, req.Password)

	accessID := session.NewAccessID()
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now(), pkgAuth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     enums.RoleFor(user.IsAdmin),
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	if err := s.sessions.Open(ctx, accessID, user.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}

	s.record("success")
	return &LoginResponse{Token: token, User: users.FromModel(user)}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "Token is required or invalid")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// authenticate answers unknown usernames and wrong passwords identically.
func (s *service) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if db.IsNotFound(err) {
			s.record("invalid_credentials")
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgInvalidCredentials)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	ok, err := security.VerifyPassword(password, user.Password)
	if err != nil || !ok {
		s.record("invalid_credentials")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, MsgInvalidCredentials)
	}
	return user, nil
}

// upgradeHash re-hashes legacy bcrypt passwords after a successful login.
func (s *service) upgradeHash(ctx context.Context, user *models.User, password string) {
	if !security.NeedsRehash(user.Password) {
		return
	}
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err == nil {
		user.Password = hash
		err = s.users.Save(ctx, user)
	}
	if err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(s.logg.WithUserID(ctx, user.ID), "error", err.Error()), "password rehash failed")
	}
}

func (s *service) record(outcome string) {
	if s.metrics != nil {
		s.metrics.IncLogin(outcome)
	}
}
