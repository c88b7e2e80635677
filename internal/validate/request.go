package validate

import (
	"user-management/internal/api"
)

// NewUser is a fully validated account-creation payload.
type NewUser struct {
	Name     string
	Email    string
	Password string
}

// UserChanges carries the validated fields of an update; nil means unchanged.
type UserChanges struct {
	Name  *string
	Email *string
}

// Empty reports whether no field is set.
func (c UserChanges) Empty() bool { return c.Name == nil && c.Email == nil }

// Credentials is a login attempt. Password is kept verbatim.
type Credentials struct {
	Email    string
	Password string
}

// CreateUser requires the name, email and password keys and validates each.
// A key present with null fails like an empty value.
func CreateUser(req *api.CreateUserRequest) (NewUser, error) {
	if req == nil {
		return NewUser{}, fail("Request data must be a JSON object")
	}
	switch {
	case !req.Name.Present:
		return NewUser{}, fail("Missing required field: name")
	case !req.Email.Present:
		return NewUser{}, fail("Missing required field: email")
	case !req.Password.Present:
		return NewUser{}, fail("Missing required field: password")
	}
	name, err := Name(req.Name.String())
	if err != nil {
		return NewUser{}, err
	}
	email, err := Email(req.Email.String())
	if err != nil {
		return NewUser{}, err
	}
	password, err := Password(req.Password.String())
	if err != nil {
		return NewUser{}, err
	}
	return NewUser{Name: name, Email: email, Password: password}, nil
}

// UpdateUser validates whichever of name and email are present, null
// included, and fails when neither is.
func UpdateUser(req *api.UpdateUserRequest) (UserChanges, error) {
	if req == nil {
		return UserChanges{}, fail("Request data must be a JSON object")
	}
	var out UserChanges
	if req.Name.Present {
		name, err := Name(req.Name.String())
		if err != nil {
			return UserChanges{}, err
		}
		out.Name = &name
	}
	if req.Email.Present {
		email, err := Email(req.Email.String())
		if err != nil {
			return UserChanges{}, err
		}
		out.Email = &email
	}
	if out.Empty() {
		return UserChanges{}, fail("At least one field (name or email) must be provided for update")
	}
	return out, nil
}

// Login requires both keys but only validates the email; the password is
// passed through so a login is never rejected on password-format grounds.
// A null password is treated as empty and simply fails to match.
func Login(req *api.LoginRequest) (Credentials, error) {
	if req == nil {
		return Credentials{}, fail("Request data must be a JSON object")
	}
	if !req.Email.Present {
		return Credentials{}, fail("Email is required for login")
	}
	if !req.Password.Present {
		return Credentials{}, fail("Password is required for login")
	}
	email, err := Email(req.Email.String())
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Email: email, Password: req.Password.String()}, nil
}
