package user

import (
	"net/mail"

	"github.com/frahmantamala/document-management/internal"
)

// EditProfileDTO updates only the fields the caller provided; empty fields
// keep their current value.
type EditProfileDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d EditProfileDTO) Validate() error {
	errs := internal.NewValidationError()

	if d.Username != "" && len(d.Username) > 255 {
		errs.Add("username", "The username may not be greater than 255 characters.")
	}

	if d.Email != "" {
		if _, err := mail.ParseAddress(d.Email); err != nil {
			errs.Add("email", "The email must be a valid email address.")
		} else if len(d.Email) > 255 {
			errs.Add("email", "The email may not be greater than 255 characters.")
		}
	}

	if d.Password != "" && len(d.Password) < 6 {
		errs.Add("password", "The password must be at least 6 characters.")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

type AssignRoleDTO struct {
	RoleID *int64 `json:"role_id"`
}

func (d AssignRoleDTO) Validate() error {
	errs := internal.NewValidationError()

	if d.RoleID == nil {
		errs.Add("role_id", "The role id field is required.")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
