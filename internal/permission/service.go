package permission

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/document-management/internal"
	userDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/user"
)

var ErrPermissionNotFound = internal.NewNotFoundError("Permission not found")

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.Permission, error)
	GetByID(id int64) (*userDatamodel.Permission, error)
	GetByLabel(label string) (*userDatamodel.Permission, error)
	Create(p *userDatamodel.Permission) error
	Update(p *userDatamodel.Permission) error
	Delete(id int64) error

	UserExists(userID int64) (bool, error)
	GetAssignedToUser(userID int64) ([]*userDatamodel.Permission, error)
	Assign(userID, permissionID int64) error
	Revoke(userID, permissionID int64) error
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

func (s *Service) Create(dto PermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByLabel(dto.Label)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		errs := internal.NewValidationError()
		errs.Add("label", "The label has already been taken.")
		return nil, errs
	}

	now := time.Now()
	record := &userDatamodel.Permission{
		Label:       dto.Label,
		Description: dto.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create permission", "error", err)
		return nil, err
	}

	s.logger.Info("permission created", "permission_id", record.ID, "label", record.Label)
	return FromDataModel(record), nil
}

func (s *Service) GetAll() ([]*Permission, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list permissions", "error", err)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) Update(id int64, dto PermissionDTO) (*Permission, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrPermissionNotFound
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByLabel(dto.Label)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		errs := internal.NewValidationError()
		errs.Add("label", "The label has already been taken.")
		return nil, errs
	}

	record.Label = dto.Label
	record.Description = dto.Description
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update permission", "error", err, "permission_id", id)
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
		return ErrPermissionNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete permission", "error", err, "permission_id", id)
		return err
	}

	s.logger.Info("permission deleted", "permission_id", id)
	return nil
}

// validateGrantPair checks both sides of an assign/revoke exist, reporting
// failures as field-keyed validation errors.
func (s *Service) validateGrantPair(userID, permissionID int64) error {
	errs := internal.NewValidationError()

	userOK, err := s.repo.UserExists(userID)
	if err != nil {
		return err
	}
	if !userOK {
		errs.Add("user_id", "The selected user id is invalid.")
	}

	perm, err := s.repo.GetByID(permissionID)
	if err != nil {
		return err
	}
	if perm == nil {
		errs.Add("permission_id", "The selected permission id is invalid.")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// AssignToUser attaches a direct grant to the user.
func (s *Service) AssignToUser(userID, permissionID int64) error {
	if err := s.validateGrantPair(userID, permissionID); err != nil {
		return err
	}

	if err := s.repo.Assign(userID, permissionID); err != nil {
		s.logger.Error("failed to assign permission", "error", err, "user_id", userID, "permission_id", permissionID)
		return err
	}

	s.logger.Info("permission assigned", "user_id", userID, "permission_id", permissionID)
	return nil
}

func (s *Service) GetAssignedToUser(userID int64) ([]*Permission, error) {
	userOK, err := s.repo.UserExists(userID)
	if err != nil {
		return nil, err
	}
	if !userOK {
		errs := internal.NewValidationError()
		errs.Add("user_id", "The selected user id is invalid.")
		return nil, errs
	}

	records, err := s.repo.GetAssignedToUser(userID)
	if err != nil {
		s.logger.Error("failed to list user permissions", "error", err, "user_id", userID)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) RevokeFromUser(userID, permissionID int64) error {
	if err := s.validateGrantPair(userID, permissionID); err != nil {
		return err
	}

	if err := s.repo.Revoke(userID, permissionID); err != nil {
		s.logger.Error("failed to revoke permission", "error", err, "user_id", userID, "permission_id", permissionID)
		return err
	}

	s.logger.Info("permission revoked", "user_id", userID, "permission_id", permissionID)
	return nil
}
