package user

import (
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"cashbox/internal"
)

// Service is the user directory: listing, admin CRUD and the lookups the
// auth layer needs.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List() ([]*User, error) {
	users, err := s.repo.ReadAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) GetByID(id string) (*User, error) {
	users, err := s.repo.ReadAll()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

// FindByUsername returns the first record matching the login key, or a
// not-found error. Used by the auth service.
func (s *Service) FindByUsername(username string) (*User, error) {
	users, err := s.repo.ReadAll()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

// Create adds a directory record. The username must be unique; the incoming
// password is bcrypt-hashed before it reaches storage.
func (s *Service) Create(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err, "username", dto.Username)
		return nil, err
	}

	if taken, err := s.usernameTaken(dto.Username, ""); err != nil {
		return nil, err
	} else if taken {
		s.logger.Warn("username already taken", "username", dto.Username)
		return nil, internal.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u := &User{
		ID:           uuid.NewString(),
		Name:         dto.Name,
		Username:     dto.Username,
		PasswordHash: string(hash),
		Role:         dto.Role,
		Email:        dto.Email,
	}

	if err := s.repo.Insert(u); err != nil {
		s.logger.Error("failed to insert user", "error", err, "username", dto.Username)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

// Update replaces the mutable fields of the matching record. The id itself
// is immutable.
func (s *Service) Update(id string, dto UpdateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err, "user_id", id)
		return nil, err
	}

	u, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if taken, err := s.usernameTaken(dto.Username, id); err != nil {
		return nil, err
	} else if taken {
		s.logger.Warn("username already taken", "username", dto.Username)
		return nil, internal.ErrUsernameTaken
	}

	u.Name = dto.Name
	u.Username = dto.Username
	u.Role = dto.Role
	u.Email = dto.Email

	if dto.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user updated", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// Delete removes a record. Deleting the acting user's own record is
// refused; historical transactions keep their denormalized creator name.
func (s *Service) Delete(id string, actingUser *User) error {
	if actingUser == nil {
		return internal.NewValidationError("acting user is required", internal.ErrCodeMissingActor)
	}
	if id == actingUser.ID {
		s.logger.Warn("self-deletion refused", "user_id", id)
		return internal.ErrSelfDeletion
	}

	if _, err := s.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("user deleted", "user_id", id, "deleted_by", actingUser.ID)
	return nil
}

func (s *Service) usernameTaken(username, excludeID string) (bool, error) {
	users, err := s.repo.ReadAll()
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}
