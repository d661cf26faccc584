package category

import (
	"log/slog"

	"github.com/frahmantamala/document-management/internal"
	categoryDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/category"
)

var ErrCategoryNotFound = internal.NewNotFoundError("Category not found")

type RepositoryAPI interface {
	GetAllByUser(userID int64) ([]*categoryDatamodel.Category, error)
	// GetByIDForUser returns nil (no error) when the row is absent or owned
	// by someone else; callers cannot tell the two apart.
	GetByIDForUser(id, userID int64) (*categoryDatamodel.Category, error)
	GetByName(name string) (*categoryDatamodel.Category, error)
	Create(c *categoryDatamodel.Category) error
	Update(c *categoryDatamodel.Category) error
	Delete(id int64) error
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

// Create stores a category owned by userID. The owner is taken from the
// authenticated principal unconditionally.
func (s *Service) Create(userID int64, dto CategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		errs := internal.NewValidationError()
		errs.Add("name", "The name has already been taken.")
		return nil, errs
	}

	cat := NewCategory(dto.Name, userID)
	record := ToDataModel(cat)
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create category", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("category created", "category_id", record.ID, "user_id", userID)
	return FromDataModel(record), nil
}

// GetAllForUser lists only the requesting principal's categories.
func (s *Service) GetAllForUser(userID int64) ([]*Category, error) {
	records, err := s.repo.GetAllByUser(userID)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err, "user_id", userID)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) Update(id, userID int64, dto CategoryDTO) (*Category, error) {
	record, err := s.repo.GetByIDForUser(id, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrCategoryNotFound
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		errs := internal.NewValidationError()
		errs.Add("name", "The name has already been taken.")
		return nil, errs
	}

	cat := FromDataModel(record)
	cat.Rename(dto.Name)

	updated := ToDataModel(cat)
	if err := s.repo.Update(updated); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, err
	}

	return FromDataModel(updated), nil
}

func (s *Service) Delete(id, userID int64) error {
	record, err := s.repo.GetByIDForUser(id, userID)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrCategoryNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return err
	}

	s.logger.Info("category deleted", "category_id", id, "user_id", userID)
	return nil
}
