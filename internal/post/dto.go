package post

import (
	"github.com/frahmantamala/document-management/internal"
)

type CreatePostDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (d CreatePostDTO) Validate() error {
	errs := internal.NewValidationError()

	if d.Title == "" {
		errs.Add("title", "The title field is required.")
	} else if len(d.Title) > 255 {
		errs.Add("title", "The title may not be greater than 255 characters.")
	}

	if d.Description == "" {
		errs.Add("description", "The description field is required.")
	} else if len(d.Description) > 255 {
		errs.Add("description", "The description may not be greater than 255 characters.")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
