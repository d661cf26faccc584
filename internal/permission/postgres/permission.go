package postgres

import (
	"time"

	userDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/user"
	"github.com/frahmantamala/document-management/internal/permission"
	"gorm.io/gorm"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.RepositoryAPI {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) GetAll() ([]*userDatamodel.Permission, error) {
	var permissions []*userDatamodel.Permission
	err := r.db.Order("id ASC").Find(&permissions).Error
	return permissions, err
}

func (r *PermissionRepository) GetByID(id int64) (*userDatamodel.Permission, error) {
	var rec userDatamodel.Permission
	err := r.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *PermissionRepository) GetByLabel(label string) (*userDatamodel.Permission, error) {
	var rec userDatamodel.Permission
	err := r.db.Where("label = ?", label).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *PermissionRepository) Create(rec *userDatamodel.Permission) error {
	return r.db.Create(rec).Error
}

func (r *PermissionRepository) Update(rec *userDatamodel.Permission) error {
	return r.db.Save(rec).Error
}

func (r *PermissionRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&userDatamodel.Permission{}).Error
}

func (r *PermissionRepository) UserExists(userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *PermissionRepository) GetAssignedToUser(userID int64) ([]*userDatamodel.Permission, error) {
	var permissions []*userDatamodel.Permission
	err := r.db.
		Joins("JOIN permission_user ON permission_user.permission_id = permissions.id").
		Where("permission_user.user_id = ?", userID).
		Find(&permissions).Error
	return permissions, err
}

func (r *PermissionRepository) Assign(userID, permissionID int64) error {
	grant := userDatamodel.PermissionUser{
		UserID:       userID,
		PermissionID: permissionID,
		CreatedAt:    time.Now(),
	}
	return r.db.
		Where(userDatamodel.PermissionUser{UserID: userID, PermissionID: permissionID}).
		FirstOrCreate(&grant).Error
}

func (r *PermissionRepository) Revoke(userID, permissionID int64) error {
	return r.db.
		Where("user_id = ? AND permission_id = ?", userID, permissionID).
		Delete(&userDatamodel.PermissionUser{}).Error
}
