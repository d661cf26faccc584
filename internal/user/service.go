package user

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/document-management/internal"
	userDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/user"
)

var ErrUserNotFound = internal.NewNotFoundError("User not found")

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	UsernameExistsExcept(username string, excludeID int64) (bool, error)
	EmailExistsExcept(email string, excludeID int64) (bool, error)
	RoleExists(id int64) (bool, error)
	Update(u *userDatamodel.User) error
	Delete(id int64) error
}

type Service struct {
	repo       RepositoryAPI
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo RepositoryAPI, logger *slog.Logger, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

func (s *Service) GetAll() ([]*User, error) {
	records, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to fetch user", "error", err, "user_id", id)
		return nil, err
	}
	if record == nil {
		return nil, ErrUserNotFound
	}
	return FromDataModel(record), nil
}

// EditProfile applies the provided fields to the calling user's own record.
// Empty fields keep their current value.
func (s *Service) EditProfile(userID int64, dto EditProfileDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrUserNotFound
	}

	errs := internal.NewValidationError()
	if dto.Username != "" && dto.Username != record.Username {
		taken, err := s.repo.UsernameExistsExcept(dto.Username, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("username", "The username has already been taken.")
		}
	}
	if dto.Email != "" && dto.Email != record.Email {
		taken, err := s.repo.EmailExistsExcept(dto.Email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("email", "The email has already been taken.")
		}
	}
	if errs.HasErrors() {
		return nil, errs
	}

	if dto.Username != "" {
		record.Username = dto.Username
	}
	if dto.Email != "" {
		record.Email = dto.Email
	}
	if dto.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
		if err != nil {
			s.logger.Error("failed to hash password", "error", err)
			return nil, err
		}
		record.PasswordHash = string(hash)
	}

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", userID)
	return FromDataModel(record), nil
}

// AssignRole replaces the target user's role. The role id always comes from
// the request body, never from the authenticated principal.
func (s *Service) AssignRole(userID int64, dto AssignRoleDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	exists, err := s.repo.RoleExists(*dto.RoleID)
	if err != nil {
		return err
	}
	if !exists {
		errs := internal.NewValidationError()
		errs.Add("role_id", "The selected role id is invalid.")
		return errs
	}

	record, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrUserNotFound
	}

	record.RoleID = dto.RoleID
	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to assign role", "error", err, "user_id", userID, "role_id", *dto.RoleID)
		return err
	}

	s.logger.Info("role assigned", "user_id", userID, "role_id", *dto.RoleID)
	return nil
}

func (s *Service) Delete(id int64) error {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrUserNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
