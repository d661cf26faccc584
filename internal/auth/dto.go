package auth

import (
	"net/mail"

	"github.com/frahmantamala/document-management/internal"
)

// RegisterDTO is the transport shape for registration requests. A caller may
// suggest a role_id but the service decides the actual assignment.
type RegisterDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   *int64 `json:"role_id,omitempty"`
}

func (d RegisterDTO) Validate() error {
	errs := internal.NewValidationError()

	if d.Username == "" {
		errs.Add("username", "The username field is required.")
	} else if len(d.Username) > 255 {
		errs.Add("username", "The username may not be greater than 255 characters.")
	}

	if d.Email == "" {
		errs.Add("email", "The email field is required.")
	} else if _, err := mail.ParseAddress(d.Email); err != nil {
		errs.Add("email", "The email must be a valid email address.")
	} else if len(d.Email) > 255 {
		errs.Add("email", "The email may not be greater than 255 characters.")
	}

	if d.Password == "" {
		errs.Add("password", "The password field is required.")
	} else if len(d.Password) < 6 {
		errs.Add("password", "The password must be at least 6 characters.")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	errs := internal.NewValidationError()

	if d.Username == "" {
		errs.Add("username", "The username field is required.")
	}
	if d.Password == "" {
		errs.Add("password", "The password field is required.")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
