package local

import (
	"sort"

	"cashbox/internal"
	"cashbox/internal/ledger"
)

// TransactionRepository implements ledger.Repository over the snapshot
// store, keeping the date-descending read order of the remote backend.
type TransactionRepository struct {
	store *Store
	seed  []*ledger.Transaction
}

func NewTransactionRepository(store *Store, seed []*ledger.Transaction) *TransactionRepository {
	return &TransactionRepository{store: store, seed: seed}
}

func (r *TransactionRepository) ReadAll() ([]*ledger.Transaction, error) {
	var txs []*ledger.Transaction
	found, err := r.store.Load(TransactionsKey, &txs)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := r.store.Save(TransactionsKey, r.seed); err != nil {
			return nil, err
		}
		txs = r.seed
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
	return txs, nil
}

func (r *TransactionRepository) Insert(t *ledger.Transaction) error {
	txs, err := r.ReadAll()
	if err != nil {
		return err
	}
	return r.store.Save(TransactionsKey, append([]*ledger.Transaction{t}, txs...))
}

func (r *TransactionRepository) Update(t *ledger.Transaction) error {
	txs, err := r.ReadAll()
	if err != nil {
		return err
	}
	for i, existing := range txs {
		if existing.ID == t.ID {
			txs[i] = t
			return r.store.Save(TransactionsKey, txs)
		}
	}
	return internal.ErrTransactionNotFound
}

func (r *TransactionRepository) Delete(id string) error {
	txs, err := r.ReadAll()
	if err != nil {
		return err
	}
	kept := txs[:0]
	for _, existing := range txs {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	return r.store.Save(TransactionsKey, kept)
}

// Reset overwrites the snapshot with the given list regardless of what is
// already stored. Used by the seed command with --clear.
func (r *TransactionRepository) Reset(txs []*ledger.Transaction) error {
	return r.store.Save(TransactionsKey, txs)
}
