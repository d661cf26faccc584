package postgres

import (
	categoryDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/category"
	documentDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/document"
	"github.com/frahmantamala/document-management/internal/document"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) document.RepositoryAPI {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) GetAllByUser(userID int64) ([]*documentDatamodel.Document, error) {
	var docs []*documentDatamodel.Document
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) GetByIDForUser(id, userID int64) (*documentDatamodel.Document, error) {
	var doc documentDatamodel.Document
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&doc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) Create(d *documentDatamodel.Document) error {
	return r.db.Create(d).Error
}

func (r *DocumentRepository) Update(d *documentDatamodel.Document) error {
	return r.db.Save(d).Error
}

func (r *DocumentRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&documentDatamodel.Document{}).Error
}

func (r *DocumentRepository) GetCategoryNames(ids []int64) (map[int64]string, error) {
	var categories []*categoryDatamodel.Category
	if err := r.db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}

	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}
