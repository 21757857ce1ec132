package auth

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk-backend/internal/users"
	"github.com/angelmondragon/orderdesk-backend/pkg/config"
	"github.com/angelmondragon/orderdesk-backend/pkg/db"
	"github.com/angelmondragon/orderdesk-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
	"github.com/angelmondragon/orderdesk-backend/pkg/security"
	"github.com/angelmondragon/orderdesk-backend/pkg/validation"
)

// AdminRegisterRequest holds the bootstrap admin account created from the CLI.
type AdminRegisterRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Username string  `json:"username" validate:"required,min=3,max=255"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password string  `json:"password" validate:"required,min=6"`
}

// AdminRegisterService creates admin users outside the HTTP surface.
type AdminRegisterService interface {
	Register(ctx context.Context, req AdminRegisterRequest) (*users.UserDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AdminRegisterServiceParams names the dependencies for the admin register flow.
type AdminRegisterServiceParams struct {
	DB             txRunner
	PasswordConfig config.PasswordConfig
}

type adminRegisterService struct {
	db          txRunner
	passwordCfg config.PasswordConfig
}

func NewAdminRegisterService(params AdminRegisterServiceParams) (AdminRegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &adminRegisterService{db: params.DB, passwordCfg: params.PasswordConfig}, nil
}

func (s *adminRegisterService) Register(ctx context.Context, req AdminRegisterRequest) (*users.UserDTO, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.Email = validation.Clean(req.Email)
	errs := validation.Struct(req)

	var created *users.UserDTO
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)
		if req.Username != "" && !errs.Has("username") {
			taken, err := repo.ValueTaken(ctx, "username", req.Username, 0)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
			}
			if taken {
				errs.Add("username", validation.TakenMessage("username"))
			}
		}
		if err := errs.Err(); err != nil {
			return err
		}

		hash, err := security.HashPassword(req.Password, s.passwordCfg)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user := &models.User{
			Name:     req.Name,
			Username: req.Username,
			Email:    req.Email,
			Password: hash,
			IsAdmin:  true,
		}
		if err := repo.Create(ctx, user); err != nil {
			if db.IsUniqueViolation(err, "username") {
				return validation.Unique("username").Err()
			}
			if db.IsUniqueViolation(err, "email") {
				return validation.Unique("email").Err()
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin")
		}
		created = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
