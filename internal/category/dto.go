package category

import (
	"github.com/frahmantamala/document-management/internal"
)

// CategoryDTO carries the writable fields for create and update. Any owner id
// supplied by the caller is ignored; ownership always comes from the
// authenticated principal.
type CategoryDTO struct {
	Name string `json:"name"`
}

func (d CategoryDTO) Validate() error {
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
