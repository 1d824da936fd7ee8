package storage

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"cashbox/internal/ledger"
	"cashbox/internal/user"
)

// SeedUsers is the development dataset written through when the local
// snapshot is empty, and pushed to the remote store by the seed command.
// The shared development password is "123".
func SeedUsers() []*user.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte("123"), bcrypt.DefaultCost)

	return []*user.User{
		{
			ID:           "1",
			Name:         "أحمد المدير",
			Username:     "admin",
			PasswordHash: string(hash),
			Role:         user.RoleAdmin,
			Email:        "admin@cashbox.com",
		},
		{
			ID:           "2",
			Name:         "سارة المحاسبة",
			Username:     "sara",
			PasswordHash: string(hash),
			Role:         user.RoleStaff,
			Email:        "sara@cashbox.com",
		},
		{
			ID:           "3",
			Name:         "محمد الموظف",
			Username:     "mohamed",
			PasswordHash: string(hash),
			Role:         user.RoleStaff,
			Email:        "mohamed@cashbox.com",
		},
	}
}

// SeedTransactions is the matching initial ledger.
func SeedTransactions() []*ledger.Transaction {
	return []*ledger.Transaction{
		{
			ID:          "t1",
			Amount:      5000,
			Type:        ledger.TypeIncome,
			Category:    "مبيعات",
			Description: "تحصيل مبيعات الأسبوع الأول",
			Date:        time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC),
			UserID:      "2",
			UserName:    "سارة المحاسبة",
			Status:      ledger.StatusApproved,
		},
		{
			ID:          "t2",
			Amount:      1200,
			Type:        ledger.TypeExpense,
			Category:    "مستلزمات مكتبية",
			Description: "شراء ورق وأحبار طابعات",
			Date:        time.Date(2024, 3, 11, 14, 30, 0, 0, time.UTC),
			UserID:      "3",
			UserName:    "محمد الموظف",
			Status:      ledger.StatusApproved,
		},
		{
			ID:          "t3",
			Amount:      2500,
			Type:        ledger.TypeExpense,
			Category:    "إيجار",
			Description: "إيجار المكتب الفرعي",
			Date:        time.Date(2024, 3, 12, 9, 15, 0, 0, time.UTC),
			UserID:      "2",
			UserName:    "سارة المحاسبة",
			Status:      ledger.StatusPending,
		},
	}
}
