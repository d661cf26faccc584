package permission

import (
	"time"

	userDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/user"
)

// Permission is a named capability. Authorization matches on the label
// string, so labels are unique identifiers, not just display text.
type Permission struct {
	ID          int64     `json:"id"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromDataModel(p *userDatamodel.Permission) *Permission {
	return &Permission{
		ID:          p.ID,
		Label:       p.Label,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromDataModelSlice(permissions []*userDatamodel.Permission) []*Permission {
	result := make([]*Permission, len(permissions))
	for i, p := range permissions {
		result[i] = FromDataModel(p)
	}
	return result
}
