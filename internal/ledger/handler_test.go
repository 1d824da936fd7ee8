package ledger_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"cashbox/internal"
	"cashbox/internal/ledger"
	"cashbox/internal/user"
)

// stubLedgerService lets handler tests script the service outcome.
type stubLedgerService struct {
	listResult      []*ledger.Transaction
	listErr         error
	createResult    *ledger.Transaction
	createErr       error
	setStatusResult *ledger.Transaction
	setStatusErr    error
	metricsResult   ledger.Metrics
	breakdownResult []ledger.CategoryTotal
}

func (s *stubLedgerService) List() ([]*ledger.Transaction, error) {
	return s.listResult, s.listErr
}

func (s *stubLedgerService) Create(dto ledger.CreateTransactionDTO, actingUser *user.User) (*ledger.Transaction, error) {
	return s.createResult, s.createErr
}

func (s *stubLedgerService) SetStatus(id string, newStatus ledger.Status, actingUser *user.User) (*ledger.Transaction, error) {
	return s.setStatusResult, s.setStatusErr
}

func (s *stubLedgerService) Metrics() (ledger.Metrics, error) {
	return s.metricsResult, nil
}

func (s *stubLedgerService) Breakdown() ([]ledger.CategoryTotal, error) {
	return s.breakdownResult, nil
}

var _ = Describe("LedgerHandler", func() {
	var (
		service *stubLedgerService
		handler *ledger.Handler
		router  *chi.Mux
		staff   *user.User
	)

	withUser := func(u *user.User) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if u != nil {
					r = r.WithContext(user.NewContext(r.Context(), u))
				}
				next.ServeHTTP(w, r)
			})
		}
	}

	build := func(u *user.User) {
		router = chi.NewRouter()
		router.Use(withUser(u))
		router.Get("/transactions", handler.ListTransactions)
		router.Post("/transactions", handler.CreateTransaction)
		router.Patch("/transactions/{id}/approve", handler.ApproveTransaction)
		router.Get("/transactions/metrics", handler.GetMetrics)
	}

	BeforeEach(func() {
		service = &stubLedgerService{}
		handler = ledger.NewHandler(service)
		staff = &user.User{ID: "2", Name: "سارة", Role: user.RoleStaff}
	})

	Describe("GET /transactions", func() {
		It("should wrap the list in a transactions envelope", func() {
			service.listResult = []*ledger.Transaction{{ID: "t1"}}
			build(staff)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			var body map[string][]*ledger.Transaction
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body["transactions"]).To(HaveLen(1))
		})
	})

	Describe("POST /transactions", func() {
		It("should return 201 with the created entry", func() {
			service.createResult = &ledger.Transaction{ID: "t9", Status: ledger.StatusPending}
			build(staff)

			req := httptest.NewRequest(http.MethodPost, "/transactions",
				strings.NewReader(`{"amount":100,"type":"INCOME","category":"مبيعات"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))
		})

		It("should return 401 without a session user", func() {
			build(nil)

			req := httptest.NewRequest(http.MethodPost, "/transactions",
				strings.NewReader(`{"amount":100,"type":"INCOME","category":"مبيعات"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should return 400 for a malformed body", func() {
			build(staff)

			req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(`{`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should map a validation failure to 400", func() {
			service.createErr = internal.NewValidationError("amount must be positive", internal.ErrCodeInvalidAmount)
			build(staff)

			req := httptest.NewRequest(http.MethodPost, "/transactions",
				strings.NewReader(`{"amount":-1,"type":"INCOME","category":"مبيعات"}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("PATCH /transactions/{id}/approve", func() {
		It("should map a terminal-status refusal to 400", func() {
			service.setStatusErr = internal.ErrInvalidStatus
			build(staff)

			req := httptest.NewRequest(http.MethodPatch, "/transactions/t1/approve", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should map not found to 404", func() {
			service.setStatusErr = internal.ErrTransactionNotFound
			build(staff)

			req := httptest.NewRequest(http.MethodPatch, "/transactions/missing/approve", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("GET /transactions/metrics", func() {
		It("should return the aggregates", func() {
			service.metricsResult = ledger.Metrics{Balance: 3800, TotalIncome: 5000, TotalExpense: 1200, PendingCount: 1}
			build(staff)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/transactions/metrics", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			var m ledger.Metrics
			Expect(json.Unmarshal(rec.Body.Bytes(), &m)).To(Succeed())
			Expect(m.Balance).To(Equal(3800.0))
		})
	})
})
