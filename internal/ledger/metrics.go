package ledger

import (
	"cashbox/internal/category"
)

// Metrics are the dashboard aggregates. Only APPROVED entries move the
// totals; PendingCount counts PENDING entries of either type.
type Metrics struct {
	Balance      float64 `json:"balance"`
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	PendingCount int     `json:"pending_count"`
}

// ComputeMetrics aggregates a transaction list in a single pass. Pure
// function of its input.
func ComputeMetrics(txs []*Transaction) Metrics {
	var m Metrics
	for _, t := range txs {
		switch {
		case t.Status == StatusPending:
			m.PendingCount++
		case t.Status == StatusApproved && t.Type == TypeIncome:
			m.TotalIncome += t.Amount
		case t.Status == StatusApproved && t.Type == TypeExpense:
			m.TotalExpense += t.Amount
		}
	}
	m.Balance = m.TotalIncome - m.TotalExpense
	return m
}

// CategoryTotal is one bar of the spend-by-category chart.
type CategoryTotal struct {
	CategoryName string        `json:"category_name"`
	Amount       float64       `json:"amount"`
	Type         category.Type `json:"type"`
}

// CategoryBreakdown sums APPROVED amounts per reference category. Categories
// with no approved amount are omitted; ordering follows the reference list.
func CategoryBreakdown(txs []*Transaction, categories []category.Category) []CategoryTotal {
	var out []CategoryTotal
	for _, c := range categories {
		var sum float64
		for _, t := range txs {
			if t.Category == c.Name && t.Status == StatusApproved {
				sum += t.Amount
			}
		}
		if sum > 0 {
			out = append(out, CategoryTotal{
				CategoryName: c.Name,
				Amount:       sum,
				Type:         c.Type,
			})
		}
	}
	return out
}
