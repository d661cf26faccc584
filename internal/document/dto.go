package document

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/frahmantamala/document-management/internal"
)

// MaxUploadSize caps uploads at 10 MiB, matching the multipart form limit.
const MaxUploadSize = 10 << 20

// UploadDTO carries a multipart document upload. Title and format are derived
// from the filename; the owner always comes from the authenticated principal.
type UploadDTO struct {
	FileName   string
	Size       int64
	Contents   io.Reader
	CategoryID *int64
}

// Extension returns the lowercased filename extension without the dot.
func (d UploadDTO) Extension() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(d.FileName), "."))
}

func (d UploadDTO) Validate() error {
	errs := internal.NewValidationError()

	if d.Contents == nil || d.FileName == "" {
		errs.Add("path_url", "The path url field is required.")
	} else if d.Size > MaxUploadSize {
		errs.Add("path_url", "The path url may not be greater than 10240 kilobytes.")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// UpdateDocumentDTO carries the writable fields for update.
type UpdateDocumentDTO struct {
	Title      string `json:"title"`
	CategoryID *int64 `json:"category_id"`
}

func (d UpdateDocumentDTO) Validate() error {
	errs := internal.NewValidationError()

	if d.Title == "" {
		errs.Add("title", "The title field is required.")
	} else if len(d.Title) > 255 {
		errs.Add("title", "The title may not be greater than 255 characters.")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
