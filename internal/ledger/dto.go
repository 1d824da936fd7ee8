package ledger

import (
	"cashbox/internal"
	"cashbox/internal/category"
)

// CreateTransactionDTO is the payload for recording a ledger entry.
type CreateTransactionDTO struct {
	Amount      float64 `json:"amount"`
	Type        Type    `json:"type"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

func (dto CreateTransactionDTO) Validate() error {
	if dto.Amount <= 0 {
		return internal.NewValidationError("amount must be a positive number", internal.ErrCodeInvalidAmount)
	}
	if dto.Type != TypeIncome && dto.Type != TypeExpense {
		return internal.NewValidationError("type must be INCOME or EXPENSE", internal.ErrCodeValidationFailed)
	}
	if !category.IsValid(dto.Category, category.Type(dto.Type)) {
		return internal.NewValidationError("category does not match the transaction type", internal.ErrCodeInvalidCategory)
	}
	return nil
}

// SetStatusDTO carries an approval decision.
type SetStatusDTO struct {
	Status Status `json:"status"`
}

func (dto SetStatusDTO) Validate() error {
	if dto.Status != StatusApproved && dto.Status != StatusRejected {
		return internal.NewValidationError("status must be APPROVED or REJECTED", internal.ErrCodeValidationFailed)
	}
	return nil
}
