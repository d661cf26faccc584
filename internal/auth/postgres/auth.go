package postgres

import (
	"time"

	"github.com/frahmantamala/document-management/internal/auth"
	userDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) RoleExists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.Role{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CreateUserWithBootstrap runs the whole registration write inside one
// transaction. The Admin/User role pair is created when missing, and the
// unique-constrained names keep that idempotent against roles already seeded
// by migrations. The very first user to register gets Admin; everyone after
// gets User, regardless of how the roles came to exist.
func (r *Repository) CreateUserWithBootstrap(u *userDatamodel.User) (string, error) {
	var roleName string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var userCount int64
		if err := tx.Model(&userDatamodel.User{}).Count(&userCount).Error; err != nil {
			return err
		}

		now := time.Now()
		adminRole := userDatamodel.Role{Name: auth.AdminRoleName, Description: "Administrator role", CreatedAt: now, UpdatedAt: now}
		if err := tx.Where(userDatamodel.Role{Name: auth.AdminRoleName}).FirstOrCreate(&adminRole).Error; err != nil {
			return err
		}
		userRole := userDatamodel.Role{Name: auth.UserRoleName, Description: "Regular user role", CreatedAt: now, UpdatedAt: now}
		if err := tx.Where(userDatamodel.Role{Name: auth.UserRoleName}).FirstOrCreate(&userRole).Error; err != nil {
			return err
		}

		role := userRole
		if userCount == 0 {
			role = adminRole
		}

		u.RoleID = &role.ID
		roleName = role.Name

		return tx.Create(u).Error
	})
	if err != nil {
		return "", err
	}

	return roleName, nil
}

func (r *Repository) GetUserByUsername(username string) (*userDatamodel.User, error) {
	var record userDatamodel.User
	if err := r.db.Where("username = ?", username).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// GetUserWithAccess loads the principal with its role name and direct
// permission grants, the two attributes the authorization gate consults.
func (r *Repository) GetUserWithAccess(userID int64) (*auth.User, error) {
	var record userDatamodel.User
	if err := r.db.Where("id = ?", userID).First(&record).Error; err != nil {
		return nil, err
	}

	principal := &auth.User{
		ID:       record.ID,
		Username: record.Username,
		Email:    record.Email,
		RoleID:   record.RoleID,
	}

	if record.RoleID != nil {
		var role userDatamodel.Role
		if err := r.db.Where("id = ?", *record.RoleID).First(&role).Error; err == nil {
			principal.RoleName = role.Name
		}
	}

	rows, err := r.db.Model(&userDatamodel.Permission{}).
		Select("permissions.label").
		Joins("JOIN permission_user ON permission_user.permission_id = permissions.id").
		Where("permission_user.user_id = ?", userID).
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		principal.Permissions = append(principal.Permissions, label)
	}

	return principal, nil
}

func (r *Repository) StoreAccessToken(t *userDatamodel.AccessToken) error {
	return r.db.Create(t).Error
}

func (r *Repository) AccessTokenExists(tokenHash string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.AccessToken{}).
		Where("token_hash = ? AND expires_at > ?", tokenHash, time.Now()).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) DeleteAccessToken(tokenHash string) error {
	return r.db.Where("token_hash = ?", tokenHash).Delete(&userDatamodel.AccessToken{}).Error
}
