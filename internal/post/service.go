package post

import (
	"log/slog"

	"github.com/frahmantamala/document-management/internal"
	postDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/post"
)

var ErrPostNotFound = internal.NewNotFoundError("Post not found")

type RepositoryAPI interface {
	GetAllActive() ([]*postDatamodel.Post, error)
	GetByID(id int64) (*postDatamodel.Post, error)
	Create(p *postDatamodel.Post) error
	MarkDeleted(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(dto CreatePostDTO) (*Post, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record := ToDataModel(NewPost(dto.Title, dto.Description))
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create post", "error", err)
		return nil, err
	}

	s.logger.Info("post created", "post_id", record.ID)
	return FromDataModel(record), nil
}

// GetAll lists posts that have not been soft-deleted. Posts are global, so
// no owner filter applies.
func (s *Service) GetAll() ([]*Post, error) {
	records, err := s.repo.GetAllActive()
	if err != nil {
		s.logger.Error("failed to list posts", "error", err)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}

// Delete flips the soft-delete flag; the row stays in place.
func (s *Service) Delete(id int64) error {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrPostNotFound
	}

	if err := s.repo.MarkDeleted(id); err != nil {
		s.logger.Error("failed to delete post", "error", err, "post_id", id)
		return err
	}

	s.logger.Info("post soft-deleted", "post_id", id)
	return nil
}
