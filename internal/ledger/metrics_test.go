package ledger_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"cashbox/internal/category"
	"cashbox/internal/ledger"
)

var _ = Describe("Metrics", func() {
	Describe("ComputeMetrics", func() {
		Context("with a mixed ledger", func() {
			It("should only count approved entries toward the totals", func() {
				txs := []*ledger.Transaction{
					{Amount: 5000, Type: ledger.TypeIncome, Status: ledger.StatusApproved},
					{Amount: 1200, Type: ledger.TypeExpense, Status: ledger.StatusApproved},
					{Amount: 2500, Type: ledger.TypeExpense, Status: ledger.StatusPending},
					{Amount: 9999, Type: ledger.TypeIncome, Status: ledger.StatusRejected},
				}

				m := ledger.ComputeMetrics(txs)

				Expect(m.TotalIncome).To(Equal(5000.0))
				Expect(m.TotalExpense).To(Equal(1200.0))
				Expect(m.Balance).To(Equal(3800.0))
				Expect(m.PendingCount).To(Equal(1))
			})
		})

		Context("with an empty ledger", func() {
			It("should return zero values", func() {
				m := ledger.ComputeMetrics(nil)

				Expect(m.Balance).To(BeZero())
				Expect(m.TotalIncome).To(BeZero())
				Expect(m.TotalExpense).To(BeZero())
				Expect(m.PendingCount).To(BeZero())
			})
		})

		Context("when approved spend exceeds approved income", func() {
			It("should report a negative balance", func() {
				txs := []*ledger.Transaction{
					{Amount: 100, Type: ledger.TypeIncome, Status: ledger.StatusApproved},
					{Amount: 400, Type: ledger.TypeExpense, Status: ledger.StatusApproved},
				}

				m := ledger.ComputeMetrics(txs)

				Expect(m.Balance).To(Equal(-300.0))
			})
		})

		Context("with pending entries of both types", func() {
			It("should count them all in PendingCount", func() {
				txs := []*ledger.Transaction{
					{Amount: 10, Type: ledger.TypeIncome, Status: ledger.StatusPending},
					{Amount: 20, Type: ledger.TypeExpense, Status: ledger.StatusPending},
				}

				m := ledger.ComputeMetrics(txs)

				Expect(m.PendingCount).To(Equal(2))
				Expect(m.Balance).To(BeZero())
			})
		})
	})

	Describe("CategoryBreakdown", func() {
		It("should sum approved amounts per category in reference order", func() {
			txs := []*ledger.Transaction{
				{Amount: 300, Category: "إيجار", Type: ledger.TypeExpense, Status: ledger.StatusApproved},
				{Amount: 5000, Category: "مبيعات", Type: ledger.TypeIncome, Status: ledger.StatusApproved},
				{Amount: 200, Category: "إيجار", Type: ledger.TypeExpense, Status: ledger.StatusApproved},
			}

			out := ledger.CategoryBreakdown(txs, category.All())

			Expect(out).To(HaveLen(2))
			// Reference order puts sales before rent
			Expect(out[0].CategoryName).To(Equal("مبيعات"))
			Expect(out[0].Amount).To(Equal(5000.0))
			Expect(out[0].Type).To(Equal(category.TypeIncome))
			Expect(out[1].CategoryName).To(Equal("إيجار"))
			Expect(out[1].Amount).To(Equal(500.0))
		})

		It("should omit categories with no approved amount", func() {
			txs := []*ledger.Transaction{
				{Amount: 2500, Category: "إيجار", Type: ledger.TypeExpense, Status: ledger.StatusPending},
			}

			out := ledger.CategoryBreakdown(txs, category.All())

			Expect(out).To(BeEmpty())
		})

		It("should ignore amounts outside the reference list", func() {
			txs := []*ledger.Transaction{
				{Amount: 100, Category: "unknown", Type: ledger.TypeExpense, Status: ledger.StatusApproved},
			}

			out := ledger.CategoryBreakdown(txs, category.All())

			Expect(out).To(BeEmpty())
		})
	})
})
