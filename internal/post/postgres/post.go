package postgres

import (
	postDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/post"
	"github.com/frahmantamala/document-management/internal/post"
	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) post.RepositoryAPI {
	return &PostRepository{db: db}
}

func (r *PostRepository) GetAllActive() ([]*postDatamodel.Post, error) {
	var posts []*postDatamodel.Post
	err := r.db.Where("is_deleted = ?", false).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *PostRepository) GetByID(id int64) (*postDatamodel.Post, error) {
	var p postDatamodel.Post
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) Create(p *postDatamodel.Post) error {
	return r.db.Create(p).Error
}

func (r *PostRepository) MarkDeleted(id int64) error {
	return r.db.Model(&postDatamodel.Post{}).Where("id = ?", id).Update("is_deleted", true).Error
}
