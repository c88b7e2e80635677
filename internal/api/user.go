// File: internal/api/user.go
package api

import (
	"encoding/json"
	"time"

	"user-management/internal/model"
)

// OptionalString is a JSON string field that remembers whether its key was
// present. A key present with null has Present set and a nil Value.
type OptionalString struct {
	Present bool
	Value   *string
}

// Some returns a present field holding s.
func Some(s string) OptionalString { return OptionalString{Present: true, Value: &s} }

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Present = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// String returns the value, or "" when it is null or absent.
func (o OptionalString) String() string {
	if o.Value == nil {
		return ""
	}
	return *o.Value
}

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name     OptionalString `json:"name" swaggertype:"string" example:"John Doe"`
	Email    OptionalString `json:"email" swaggertype:"string" example:"john@example.com"`
	Password OptionalString `json:"password" swaggertype:"string" example:"password123"`
}

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name  OptionalString `json:"name" swaggertype:"string" example:"John Doe"`
	Email OptionalString `json:"email" swaggertype:"string" example:"john@example.com"`
}

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    OptionalString `json:"email" swaggertype:"string" example:"john@example.com"`
	Password OptionalString `json:"password" swaggertype:"string" example:"password123"`
}

// swagger:model api.UserResponse
type UserResponse struct {
	ID        int       `json:"id" example:"1"`
	Name      string    `json:"name" example:"John Doe"`
	Email     string    `json:"email" example:"john@example.com"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserListResponse never returns nil so empty lists encode as [].
func NewUserListResponse(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
