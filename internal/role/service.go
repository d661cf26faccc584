package role

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/document-management/internal"
	userDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/user"
)

var ErrRoleNotFound = internal.NewNotFoundError("Role not found")

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.Role, error)
	GetByID(id int64) (*userDatamodel.Role, error)
	GetByName(name string) (*userDatamodel.Role, error)
	Create(r *userDatamodel.Role) error
	Update(r *userDatamodel.Role) error
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

func (s *Service) Create(dto RoleDTO) (*Role, error) {
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

	now := time.Now()
	record := &userDatamodel.Role{
		Name:        dto.Name,
		Description: dto.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create role", "error", err)
		return nil, err
	}

	s.logger.Info("role created", "role_id", record.ID, "name", record.Name)
	return FromDataModel(record), nil
}

func (s *Service) GetAll() ([]*Role, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list roles", "error", err)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) Update(id int64, dto RoleDTO) (*Role, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRoleNotFound
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

	record.Name = dto.Name
	record.Description = dto.Description
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update role", "error", err, "role_id", id)
		return nil, err
	}

	return FromDataModel(record), nil
}

func (s *Service) Delete(id int64) error {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrRoleNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete role", "error", err, "role_id", id)
		return err
	}

	s.logger.Info("role deleted", "role_id", id)
	return nil
}
