package role

import (
	"time"

	userDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/user"
)

// Role is a named bucket users point at. Its name doubles as the
// authorization key: the Admin bootstrap role bypasses permission checks.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromDataModel(r *userDatamodel.Role) *Role {
	return &Role{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func FromDataModelSlice(roles []*userDatamodel.Role) []*Role {
	result := make([]*Role, len(roles))
	for i, r := range roles {
		result[i] = FromDataModel(r)
	}
	return result
}
