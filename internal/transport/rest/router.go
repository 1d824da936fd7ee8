package rest

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi"

	"cashbox/internal/analysis"
	"cashbox/internal/auth"
	"cashbox/internal/category"
	"cashbox/internal/ledger"
	"cashbox/internal/transport/middleware"
	"cashbox/internal/transport/swagger"
	"cashbox/internal/user"
)

type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	Ledger   *ledger.Handler
	Category *category.Handler
	Analysis *analysis.Handler
}

// RegisterAllRoutes mounts the API under /api/v1. db may be nil when the
// remote backend is not configured. RequestID must run ahead of logging and
// recovery so both pick the trace-scoped logger out of the context.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Reference data needs no session
		r.Get("/categories", h.Category.GetCategories)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			pr.Route("/transactions", func(tr chi.Router) {
				tr.Get("/", h.Ledger.ListTransactions)
				tr.Post("/", h.Ledger.CreateTransaction)
				tr.Get("/metrics", h.Ledger.GetMetrics)
				tr.Get("/breakdown", h.Ledger.GetBreakdown)

				tr.Group(func(mr chi.Router) {
					mr.Use(h.Auth.RequireAdmin)
					mr.Patch("/{id}/approve", h.Ledger.ApproveTransaction)
					mr.Patch("/{id}/reject", h.Ledger.RejectTransaction)
				})
			})

			pr.Get("/analysis/report", h.Analysis.GenerateReport)

			pr.Group(func(ar chi.Router) {
				ar.Use(h.Auth.RequireAdmin)
				ar.Route("/users", func(ur chi.Router) {
					ur.Get("/", h.User.ListUsers)
					ur.Post("/", h.User.CreateUser)
					ur.Put("/{id}", h.User.UpdateUser)
					ur.Delete("/{id}", h.User.DeleteUser)
				})
			})
		})
	})
}
