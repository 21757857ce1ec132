package users

import (
	"encoding/json"
	"time"

	"github.com/angelmondragon/orderdesk-backend/pkg/db/models"
)

// UserDTO is the transport shape of a user; the password hash never leaves the service.
type UserDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Phone       *string   `json:"phone"`
	Username    string    `json:"username"`
	Designation *string   `json:"designation"`
	Email       *string   `json:"email"`
	IsAdmin     bool      `json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListResult is the payload of the user index.
type ListResult struct {
	TotalRecords int       `json:"totalRecords"`
	Users        []UserDTO `json:"users"`
}

// CreateUserRequest is the body of POST /api/user.
type CreateUserRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Phone       *string `json:"phone" validate:"omitempty,max=255"`
	Username    string  `json:"username" validate:"required,min=3,max=255"`
	Designation *string `json:"designation" validate:"omitempty,max=255"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	Password    string  `json:"password" validate:"required,min=6"`
}

// UpdateUserRequest is the body of PUT /api/user/{id}. Name, username and
// password are left unchanged when absent, null or blank. Phone, designation
// and email are cleared when present as null or blank.
type UpdateUserRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Phone       *string `json:"phone" validate:"omitempty,max=255"`
	Username    *string `json:"username" validate:"omitempty,min=3,max=255"`
	Designation *string `json:"designation" validate:"omitempty,max=255"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
	Password    *string `json:"password" validate:"omitempty,min=6"`

	present map[string]bool
}

func (r *UpdateUserRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateUserRequest
	var body plain
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*r = UpdateUserRequest(body)
	r.present = make(map[string]bool, len(keys))
	for key := range keys {
		r.present[key] = true
	}
	return nil
}

// touched reports whether a nullable column should be written. Requests
// built in code rather than decoded treat every non-nil field as present.
func (r UpdateUserRequest) touched(field string, set bool) bool {
	if r.present == nil {
		return set
	}
	return r.present[field]
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID,
		Name:        u.Name,
		Phone:       u.Phone,
		Username:    u.Username,
		Designation: u.Designation,
		Email:       u.Email,
		IsAdmin:     u.IsAdmin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func FromModels(rows []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
