package role

import (
	"github.com/frahmantamala/document-management/internal"
)

type RoleDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d RoleDTO) Validate() error {
	errs := internal.NewValidationError()

	if d.Name == "" {
		errs.Add("name", "The name field is required.")
	} else if len(d.Name) > 255 {
		errs.Add("name", "The name may not be greater than 255 characters.")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
