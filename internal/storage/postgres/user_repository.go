package postgres

import (
	"errors"

	"gorm.io/gorm"

	"cashbox/internal"
	"cashbox/internal/user"
)

// UserRepository implements user.Repository against the remote PostgreSQL
// backend. Username uniqueness is backed by the DB constraint.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ReadAll() ([]*user.User, error) {
	var users []*user.User
	if err := r.db.Order("username ASC").Find(&users).Error; err != nil {
		return nil, internal.ErrBackendUnavailable.WithCause(err)
	}
	return users, nil
}

func (r *UserRepository) Insert(u *user.User) error {
	if err := r.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrUsernameTaken
		}
		return internal.ErrBackendUnavailable.WithCause(err)
	}
	return nil
}

func (r *UserRepository) Update(u *user.User) error {
	if err := r.db.Save(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrUsernameTaken
		}
		return internal.ErrBackendUnavailable.WithCause(err)
	}
	return nil
}

func (r *UserRepository) Delete(id string) error {
	if err := r.db.Delete(&user.User{}, "id = ?", id).Error; err != nil {
		return internal.ErrBackendUnavailable.WithCause(err)
	}
	return nil
}
