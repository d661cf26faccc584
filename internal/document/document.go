package document

import (
	"strings"
	"time"

	documentDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/document"
)

// AllowedExtensions is the upload allow-list. Anything else is rejected with
// a 400 before a blob or a row is written.
var AllowedExtensions = []string{"pdf", "docx", "xlsx", "pptx", "txt", "png", "jpg", "jpeg", "mp4"}

func ExtensionAllowed(ext string) bool {
	ext = strings.ToLower(ext)
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Document is owner-scoped the same way categories are. The optional category
// reference must belong to the same owner.
type Document struct {
	ID         int64        `json:"id"`
	Title      string       `json:"title"`
	Format     string       `json:"format"`
	PathURL    string       `json:"path_url"`
	CategoryID *int64       `json:"-"`
	Category   *CategoryRef `json:"category"`
	UserID     int64        `json:"user_id"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// CategoryRef is the shape a document's category is rendered as in listings.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func FromDataModel(d *documentDatamodel.Document) *Document {
	return &Document{
		ID:         d.ID,
		Title:      d.Title,
		Format:     d.Format,
		PathURL:    d.PathURL,
		CategoryID: d.CategoryID,
		UserID:     d.UserID,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func ToDataModel(d *Document) *documentDatamodel.Document {
	return &documentDatamodel.Document{
		ID:         d.ID,
		Title:      d.Title,
		Format:     d.Format,
		PathURL:    d.PathURL,
		CategoryID: d.CategoryID,
		UserID:     d.UserID,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// TitleFromFileName strips the extension from an uploaded filename; only this
// display title and the format survive from the client-supplied name.
func TitleFromFileName(fileName, ext string) string {
	suffix := "." + ext
	if len(fileName) > len(suffix) && strings.EqualFold(fileName[len(fileName)-len(suffix):], suffix) {
		return fileName[:len(fileName)-len(suffix)]
	}
	return fileName
}
