package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/frahmantamala/document-management/internal"
	userDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/user"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	UsernameExists(username string) (bool, error)
	EmailExists(email string) (bool, error)
	RoleExists(id int64) (bool, error)
	// CreateUserWithBootstrap inserts the user inside a single transaction,
	// creating the Admin/User bootstrap roles first when none exist. It
	// returns the name of the role the user ended up with.
	CreateUserWithBootstrap(u *userDatamodel.User) (string, error)
	GetUserByUsername(username string) (*userDatamodel.User, error)
	GetUserWithAccess(userID int64) (*User, error)
	StoreAccessToken(t *userDatamodel.AccessToken) error
	AccessTokenExists(tokenHash string) (bool, error)
	DeleteAccessToken(tokenHash string) error
}

type Service struct {
	repo       RepositoryAPI
	tokenGen   TokenGeneratorAPI
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, logger *slog.Logger, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokenGen:   tokenGen,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// LoginResult is what a successful authentication hands back to transport.
type LoginResult struct {
	User        *User
	AccessToken string
	TokenType   string
}

// Register validates the payload, hashes the password and creates the user.
// The first-ever registration bootstraps the Admin/User roles and assigns
// Admin; every later one gets the User role regardless of any requested role.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	errs := internal.NewValidationError()

	taken, err := s.repo.UsernameExists(dto.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		errs.Add("username", "The username has already been taken.")
	}

	taken, err = s.repo.EmailExists(dto.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		errs.Add("email", "The email has already been taken.")
	}

	if dto.RoleID != nil {
		exists, err := s.repo.RoleExists(*dto.RoleID)
		if err != nil {
			return nil, err
		}
		if !exists {
			errs.Add("role_id", "The selected role id is invalid.")
		}
	}

	if errs.HasErrors() {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	record := &userDatamodel.User{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	roleName, err := s.repo.CreateUserWithBootstrap(record)
	if err != nil {
		s.logger.Error("failed to register user", "error", err, "username", dto.Username)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", record.ID, "username", record.Username, "role", roleName)

	return &User{
		ID:       record.ID,
		Username: record.Username,
		Email:    record.Email,
		RoleID:   record.RoleID,
		RoleName: roleName,
	}, nil
}

// Authenticate verifies credentials, mints a bearer token and records its
// digest so logout can revoke it.
func (s *Service) Authenticate(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetUserByUsername(dto.Username)
	if err != nil {
		s.logger.Warn("login failed: user lookup", "username", dto.Username, "error", err)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenGen.GenerateAccessToken(record.ID, record.Username)
	if err != nil {
		return nil, err
	}

	if err := s.repo.StoreAccessToken(&userDatamodel.AccessToken{
		UserID:    record.ID,
		TokenHash: HashToken(token),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}

	principal, err := s.repo.GetUserWithAccess(record.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", record.ID, "username", record.Username)

	return &LoginResult{
		User:        principal,
		AccessToken: token,
		TokenType:   "Bearer",
	}, nil
}

// AuthenticateToken resolves a presented bearer token to a principal. A token
// fails when the signature is invalid, it has expired, or it was revoked by
// logout.
func (s *Service) AuthenticateToken(token string) (*User, error) {
	claims, err := s.tokenGen.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	active, err := s.repo.AccessTokenExists(HashToken(token))
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrTokenRevoked
	}

	return s.repo.GetUserWithAccess(claims.UserID)
}

// Logout revokes the presented token. The same token yields 401 afterwards.
func (s *Service) Logout(token string) error {
	if _, err := s.tokenGen.ValidateToken(token); err != nil {
		return err
	}
	return s.repo.DeleteAccessToken(HashToken(token))
}

// HashToken is the digest under which issued tokens are stored; the raw token
// never touches the database.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
