// Package storage composes the two persistence backends. When a remote
// backend is configured, reads prefer it and fall back to the local snapshot
// on failure; writes update the local mirror first and then the remote, so a
// remote outage never loses the entry locally. A failed remote write is
// surfaced to the caller as a typed backend failure rather than swallowed --
// the local mirror may then be ahead of the remote store, and the caller
// knows it.
package storage

import (
	"errors"
	"log/slog"

	"cashbox/internal"
	"cashbox/internal/ledger"
	"cashbox/internal/user"
)

// MirroredUserRepository implements user.Repository over a remote and a
// local backend. remote may be nil, in which case local serves alone.
type MirroredUserRepository struct {
	remote user.Repository
	local  user.Repository
	logger *slog.Logger
}

func NewMirroredUserRepository(remote, local user.Repository, logger *slog.Logger) *MirroredUserRepository {
	return &MirroredUserRepository{remote: remote, local: local, logger: logger}
}

func (m *MirroredUserRepository) ReadAll() ([]*user.User, error) {
	if m.remote != nil {
		users, err := m.remote.ReadAll()
		if err == nil {
			return users, nil
		}
		m.logger.Warn("remote user read failed, falling back to local snapshot", "error", err)
	}
	return m.local.ReadAll()
}

func (m *MirroredUserRepository) Insert(u *user.User) error {
	if err := m.local.Insert(u); err != nil {
		return err
	}
	if m.remote == nil {
		return nil
	}
	if err := m.remote.Insert(u); err != nil {
		m.logger.Error("remote user insert failed, local mirror is ahead", "error", err, "user_id", u.ID)
		return err
	}
	return nil
}

func (m *MirroredUserRepository) Update(u *user.User) error {
	if err := m.local.Update(u); err != nil {
		// An entry known only to the remote backend still shows up in
		// ReadAll, so an update on it must repair the mirror instead of
		// reporting a missing record. The remote goes first here; a record
		// neither side knows stays a not-found.
		if !errors.Is(err, internal.ErrUserNotFound) || m.remote == nil {
			return err
		}
		if err := m.remote.Update(u); err != nil {
			return err
		}
		if err := m.local.Insert(u); err != nil {
			m.logger.Error("local mirror repair failed after remote user update", "error", err, "user_id", u.ID)
		}
		return nil
	}
	if m.remote == nil {
		return nil
	}
	if err := m.remote.Update(u); err != nil {
		m.logger.Error("remote user update failed, local mirror is ahead", "error", err, "user_id", u.ID)
		return err
	}
	return nil
}

func (m *MirroredUserRepository) Delete(id string) error {
	if err := m.local.Delete(id); err != nil {
		return err
	}
	if m.remote == nil {
		return nil
	}
	if err := m.remote.Delete(id); err != nil {
		m.logger.Error("remote user delete failed, local mirror is ahead", "error", err, "user_id", id)
		return err
	}
	return nil
}

// MirroredTransactionRepository implements ledger.Repository with the same
// read-fallback / write-through-both discipline.
type MirroredTransactionRepository struct {
	remote ledger.Repository
	local  ledger.Repository
	logger *slog.Logger
}

func NewMirroredTransactionRepository(remote, local ledger.Repository, logger *slog.Logger) *MirroredTransactionRepository {
	return &MirroredTransactionRepository{remote: remote, local: local, logger: logger}
}

func (m *MirroredTransactionRepository) ReadAll() ([]*ledger.Transaction, error) {
	if m.remote != nil {
		txs, err := m.remote.ReadAll()
		if err == nil {
			return txs, nil
		}
		m.logger.Warn("remote transaction read failed, falling back to local snapshot", "error", err)
	}
	return m.local.ReadAll()
}

func (m *MirroredTransactionRepository) Insert(t *ledger.Transaction) error {
	if err := m.local.Insert(t); err != nil {
		return err
	}
	if m.remote == nil {
		return nil
	}
	if err := m.remote.Insert(t); err != nil {
		m.logger.Error("remote transaction insert failed, local mirror is ahead", "error", err, "transaction_id", t.ID)
		return err
	}
	return nil
}

func (m *MirroredTransactionRepository) Update(t *ledger.Transaction) error {
	if err := m.local.Update(t); err != nil {
		// Same mirror repair as for users: a remote-only entry is listable
		// and therefore must stay updatable.
		if !errors.Is(err, internal.ErrTransactionNotFound) || m.remote == nil {
			return err
		}
		if err := m.remote.Update(t); err != nil {
			return err
		}
		if err := m.local.Insert(t); err != nil {
			m.logger.Error("local mirror repair failed after remote transaction update", "error", err, "transaction_id", t.ID)
		}
		return nil
	}
	if m.remote == nil {
		return nil
	}
	if err := m.remote.Update(t); err != nil {
		m.logger.Error("remote transaction update failed, local mirror is ahead", "error", err, "transaction_id", t.ID)
		return err
	}
	return nil
}

func (m *MirroredTransactionRepository) Delete(id string) error {
	if err := m.local.Delete(id); err != nil {
		return err
	}
	if m.remote == nil {
		return nil
	}
	if err := m.remote.Delete(id); err != nil {
		m.logger.Error("remote transaction delete failed, local mirror is ahead", "error", err, "transaction_id", id)
		return err
	}
	return nil
}
