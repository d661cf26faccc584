package permission

import (
	"github.com/frahmantamala/document-management/internal"
)

type PermissionDTO struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

func (d PermissionDTO) Validate() error {
	errs := internal.NewValidationError()

	if d.Label == "" {
		errs.Add("label", "The label field is required.")
	} else if len(d.Label) > 255 {
		errs.Add("label", "The label may not be greater than 255 characters.")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
