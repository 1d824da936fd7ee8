package postgres

import (
	"gorm.io/gorm"

	"cashbox/internal"
	"cashbox/internal/ledger"
)

// TransactionRepository implements ledger.Repository against the remote
// PostgreSQL backend. Reads come back ordered by date descending.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) ledger.Repository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ReadAll() ([]*ledger.Transaction, error) {
	var txs []*ledger.Transaction
	if err := r.db.Order("date DESC").Find(&txs).Error; err != nil {
		return nil, internal.ErrBackendUnavailable.WithCause(err)
	}
	return txs, nil
}

func (r *TransactionRepository) Insert(t *ledger.Transaction) error {
	if err := r.db.Create(t).Error; err != nil {
		return internal.ErrBackendUnavailable.WithCause(err)
	}
	return nil
}

func (r *TransactionRepository) Update(t *ledger.Transaction) error {
	if err := r.db.Save(t).Error; err != nil {
		return internal.ErrBackendUnavailable.WithCause(err)
	}
	return nil
}

func (r *TransactionRepository) Delete(id string) error {
	if err := r.db.Delete(&ledger.Transaction{}, "id = ?", id).Error; err != nil {
		return internal.ErrBackendUnavailable.WithCause(err)
	}
	return nil
}
