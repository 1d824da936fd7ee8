package ledger

import (
	"time"
)

type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Status gates whether a transaction counts toward the balance. PENDING is
// the only non-terminal state; APPROVED and REJECTED have no outgoing edges.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Transaction is a ledger entry. UserID and UserName are a denormalized
// snapshot of the creator taken at creation time; they are never updated,
// even if the user record later changes or is deleted.
type Transaction struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Amount      float64   `json:"amount" gorm:"not null"`
	Type        Type      `json:"type" gorm:"not null"`
	Category    string    `json:"category" gorm:"not null"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" gorm:"not null"`
	UserID      string    `json:"user_id" gorm:"column:user_id"`
	UserName    string    `json:"user_name" gorm:"column:user_name"`
	Status      Status    `json:"status" gorm:"not null"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) CanTransition() bool {
	return t.Status == StatusPending
}

func (t *Transaction) CountsTowardBalance() bool {
	return t.Status == StatusApproved
}

// Repository is the persistence capability the ledger needs, implemented by
// both the remote and the local snapshot backend. ReadAll returns entries
// ordered by date descending.
type Repository interface {
	ReadAll() ([]*Transaction, error)
	Insert(t *Transaction) error
	Update(t *Transaction) error
	Delete(id string) error
}
