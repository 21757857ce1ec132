package users

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/orderdesk-backend/internal/policy"
	"github.com/angelmondragon/orderdesk-backend/pkg/config"
	"github.com/angelmondragon/orderdesk-backend/pkg/db"
	"github.com/angelmondragon/orderdesk-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderdesk-backend/pkg/errors"
	"github.com/angelmondragon/orderdesk-backend/pkg/security"
	"github.com/angelmondragon/orderdesk-backend/pkg/validation"
)

const MsgNotFound = "User not found."

// Service implements the user endpoints on behalf of an explicit actor.
type Service interface {
	List(ctx context.Context, actor policy.Actor) (*ListResult, error)
	Get(ctx context.Context, actor policy.Actor, id uint64) (*UserDTO, error)
	Create(ctx context.Context, actor policy.Actor, req CreateUserRequest) (*UserDTO, error)
	Update(ctx context.Context, actor policy.Actor, id uint64, req UpdateUserRequest) (*UserDTO, error)
	Delete(ctx context.Context, actor policy.Actor, id uint64) error
}

type txRunner interface {
	DB() *gorm.DB
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams bundles the dependencies of the users service.
type ServiceParams struct {
	DB             txRunner
	PasswordConfig config.PasswordConfig
}

type service struct {
	db          txRunner
	passwordCfg config.PasswordConfig
}

func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &service{db: params.DB, passwordCfg: params.PasswordConfig}, nil
}

func (s *service) List(ctx context.Context, actor policy.Actor) (*ListResult, error) {
	if err := policy.For(actor).CanListUsers(); err != nil {
		return nil, err
	}
	rows, err := NewRepository(s.db.DB()).List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	return &ListResult{TotalRecords: len(rows), Users: FromModels(rows)}, nil
}

func (s *service) Get(ctx context.Context, actor policy.Actor, id uint64) (*UserDTO, error) {
	if err := policy.For(actor).CanViewUser(id); err != nil {
		return nil, err
	}
	user, err := findUser(ctx, NewRepository(s.db.DB()), id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) Create(ctx context.Context, actor policy.Actor, req CreateUserRequest) (*UserDTO, error) {
	if err := policy.For(actor).CanCreateUsers(); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Username = strings.TrimSpace(req.Username)
	req.Phone = validation.Clean(req.Phone)
	req.Designation = validation.Clean(req.Designation)
	req.Email = validation.Clean(req.Email)
	errs := validation.Struct(req)

	var created *models.User
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		values := map[string]*string{"username": &req.Username, "email": req.Email, "phone": req.Phone}
		if err := collectTaken(ctx, repo, values, 0, errs); err != nil {
			return err
		}
		if err := errs.Err(); err != nil {
			return err
		}

		hash, err := security.HashPassword(req.Password, s.passwordCfg)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user := &models.User{
			Name:        req.Name,
			Phone:       req.Phone,
			Username:    req.Username,
			Designation: req.Designation,
			Email:       req.Email,
			Password:    hash,
		}
		if err := repo.Create(ctx, user); err != nil {
			return translateWriteError(err, "create user")
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, actor policy.Actor, id uint64, req UpdateUserRequest) (*UserDTO, error) {
	if err := policy.For(actor).CanUpdateUser(id); err != nil {
		return nil, err
	}

	req.Name = validation.Clean(req.Name)
	req.Phone = validation.Clean(req.Phone)
	req.Username = validation.Clean(req.Username)
	req.Designation = validation.Clean(req.Designation)
	req.Email = validation.Clean(req.Email)
	if req.Password != nil && *req.Password == "" {
		req.Password = nil
	}

	var updated *models.User
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		user, err := findUser(ctx, repo, id)
		if err != nil {
			return err
		}

		errs := validation.Struct(req)
		values := map[string]*string{"username": req.Username, "email": req.Email, "phone": req.Phone}
		if err := collectTaken(ctx, repo, values, id, errs); err != nil {
			return err
		}
		if err := errs.Err(); err != nil {
			return err
		}

		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.touched("phone", req.Phone != nil) {
			user.Phone = req.Phone
		}
		if req.Username != nil {
			user.Username = *req.Username
		}
		if req.touched("designation", req.Designation != nil) {
			user.Designation = req.Designation
		}
		if req.touched("email", req.Email != nil) {
			user.Email = req.Email
		}
		if req.Password != nil {
			hash, err := security.HashPassword(*req.Password, s.passwordCfg)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
			}
			user.Password = hash
		}

		if err := repo.Save(ctx, user); err != nil {
			return translateWriteError(err, "update user")
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, actor policy.Actor, id uint64) error {
	if err := policy.For(actor).CanDeleteUser(id); err != nil {
		return err
	}
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		user, err := findUser(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := policy.CanDeleteUserRecord(actor, user.ID, user.IsAdmin); err != nil {
			return err
		}
		affected, err := repo.Delete(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, MsgNotFound)
		}
		return nil
	})
}

func findUser(ctx context.Context, repo *Repository, id uint64) (*models.User, error) {
	user, err := repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, MsgNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return user, nil
}

// collectTaken adds a "has already been taken" message for every non-empty value
// that another row already holds.
func collectTaken(ctx context.Context, repo *Repository, values map[string]*string, excludeID uint64, errs validation.FieldErrors) error {
	for _, column := range uniqueColumns {
		value := values[column]
		if value == nil || *value == "" {
			continue
		}
		taken, err := repo.ValueTaken(ctx, column, *value, excludeID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check unique "+column)
		}
		if taken {
			errs.Add(column, validation.TakenMessage(column))
		}
	}
	return nil
}

// translateWriteError reports a unique-index race as the same field error the pre-check produces.
func translateWriteError(err error, action string) error {
	for _, column := range uniqueColumns {
		if db.IsUniqueViolation(err, column) {
			return validation.Unique(column).Err()
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, action)
}
