package post

import (
	"time"

	postDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/post"
)

// Post is a global resource: no ownership scoping, visible to every
// authenticated user. Deletion is a soft flag, not a row removal.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsDeleted   bool      `json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewPost(title, description string) *Post {
	now := time.Now()
	return &Post{
		Title:       title,
		Description: description,
		IsDeleted:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func ToDataModel(p *Post) *postDatamodel.Post {
	return &postDatamodel.Post{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		IsDeleted:   p.IsDeleted,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromDataModel(p *postDatamodel.Post) *Post {
	return &Post{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		IsDeleted:   p.IsDeleted,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromDataModelSlice(posts []*postDatamodel.Post) []*Post {
	result := make([]*Post, len(posts))
	for i, p := range posts {
		result[i] = FromDataModel(p)
	}
	return result
}
