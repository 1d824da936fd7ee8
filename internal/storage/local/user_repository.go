package local

import (
	"cashbox/internal"
	"cashbox/internal/user"
)

// userRecord is the snapshot serialization of a directory entry. The API
// model hides the password hash from JSON, so the snapshot carries its own
// tags; serializing user.User directly would persist an empty hash and
// break local-only logins after the first snapshot rewrite.
type userRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"`
	Role         user.Role `json:"role"`
	Email        string    `json:"email"`
}

func toUserRecords(users []*user.User) []userRecord {
	records := make([]userRecord, len(users))
	for i, u := range users {
		records[i] = userRecord{
			ID:           u.ID,
			Name:         u.Name,
			Username:     u.Username,
			PasswordHash: u.PasswordHash,
			Role:         u.Role,
			Email:        u.Email,
		}
	}
	return records
}

func fromUserRecords(records []userRecord) []*user.User {
	users := make([]*user.User, len(records))
	for i, rec := range records {
		users[i] = &user.User{
			ID:           rec.ID,
			Name:         rec.Name,
			Username:     rec.Username,
			PasswordHash: rec.PasswordHash,
			Role:         rec.Role,
			Email:        rec.Email,
		}
	}
	return users
}

// UserRepository implements user.Repository over the snapshot store. A read
// that finds no snapshot writes the seed dataset through and returns it.
type UserRepository struct {
	store *Store
	seed  []*user.User
}

func NewUserRepository(store *Store, seed []*user.User) *UserRepository {
	return &UserRepository{store: store, seed: seed}
}

func (r *UserRepository) ReadAll() ([]*user.User, error) {
	var records []userRecord
	found, err := r.store.Load(UsersKey, &records)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := r.save(r.seed); err != nil {
			return nil, err
		}
		return r.seed, nil
	}
	return fromUserRecords(records), nil
}

func (r *UserRepository) Insert(u *user.User) error {
	users, err := r.ReadAll()
	if err != nil {
		return err
	}
	for _, existing := range users {
		if existing.Username == u.Username {
			return internal.ErrUsernameTaken
		}
	}
	return r.save(append(users, u))
}

func (r *UserRepository) Update(u *user.User) error {
	users, err := r.ReadAll()
	if err != nil {
		return err
	}
	for _, existing := range users {
		if existing.Username == u.Username && existing.ID != u.ID {
			return internal.ErrUsernameTaken
		}
	}
	for i, existing := range users {
		if existing.ID == u.ID {
			users[i] = u
			return r.save(users)
		}
	}
	return internal.ErrUserNotFound
}

func (r *UserRepository) Delete(id string) error {
	users, err := r.ReadAll()
	if err != nil {
		return err
	}
	kept := users[:0]
	for _, existing := range users {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	return r.save(kept)
}

// Reset overwrites the snapshot with the given list regardless of what is
// already stored. Used by the seed command with --clear.
func (r *UserRepository) Reset(users []*user.User) error {
	return r.save(users)
}

func (r *UserRepository) save(users []*user.User) error {
	return r.store.Save(UsersKey, toUserRecords(users))
}
