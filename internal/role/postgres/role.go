package postgres

import (
	userDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/user"
	"github.com/frahmantamala/document-management/internal/role"
	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetAll() ([]*userDatamodel.Role, error) {
	var roles []*userDatamodel.Role
	err := r.db.Order("id ASC").Find(&roles).Error
	return roles, err
}

func (r *RoleRepository) GetByID(id int64) (*userDatamodel.Role, error) {
	var rec userDatamodel.Role
	err := r.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RoleRepository) GetByName(name string) (*userDatamodel.Role, error) {
	var rec userDatamodel.Role
	err := r.db.Where("name = ?", name).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RoleRepository) Create(rec *userDatamodel.Role) error {
	return r.db.Create(rec).Error
}

func (r *RoleRepository) Update(rec *userDatamodel.Role) error {
	return r.db.Save(rec).Error
}

func (r *RoleRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&userDatamodel.Role{}).Error
}
