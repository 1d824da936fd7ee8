package auth_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"cashbox/internal/auth"
	"cashbox/internal/user"
)

var _ = Describe("AuthHandler", func() {
	var (
		handler *auth.Handler
		admin   *user.User
		staff   *user.User
	)

	login := func(username, password string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			strings.NewReader(`{"username":"`+username+`","password":"`+password+`"}`))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)
		return rec
	}

	accessTokenFor := func(username string) string {
		rec := login(username, "123")
		Expect(rec.Code).To(Equal(http.StatusOK))
		body := rec.Body.String()
		start := strings.Index(body, `"access_token":"`) + len(`"access_token":"`)
		end := strings.Index(body[start:], `"`)
		return body[start : start+end]
	}

	BeforeEach(func() {
		admin = &user.User{ID: "1", Username: "admin", PasswordHash: hashed("123"), Role: user.RoleAdmin}
		staff = &user.User{ID: "2", Username: "sara", PasswordHash: hashed("123"), Role: user.RoleStaff}
		directory := newMockDirectory(admin, staff)
		tokenGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", time.Minute, time.Hour)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := auth.NewService(directory, tokenGen, logger)
		handler = auth.NewHandler(service)
	})

	Describe("Login", func() {
		It("should return 200 with a token pair for valid credentials", func() {
			rec := login("admin", "123")

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("access_token"))
			Expect(rec.Body.String()).To(ContainSubstring("refresh_token"))
		})

		It("should never echo the password hash", func() {
			rec := login("admin", "123")

			Expect(rec.Body.String()).ToNot(ContainSubstring("password"))
		})

		It("should return 401 for a wrong password", func() {
			rec := login("admin", "wrong")

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should return 400 for a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{`))
			rec := httptest.NewRecorder()
			handler.Login(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("AuthMiddleware", func() {
		var protected http.Handler

		BeforeEach(func() {
			protected = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				u, ok := user.FromContext(r.Context())
				Expect(ok).To(BeTrue())
				_, _ = w.Write([]byte(u.Username))
			}))
		})

		It("should load the directory record into the context", func() {
			token := accessTokenFor("sara")
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(Equal("sara"))
		})

		It("should return 401 without a bearer token", func() {
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should return 401 for a garbage token", func() {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer nonsense")
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("RequireAdmin", func() {
		var gated http.Handler

		BeforeEach(func() {
			gated = handler.AuthMiddleware(handler.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})))
		})

		It("should pass an administrator through", func() {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+accessTokenFor("admin"))
			rec := httptest.NewRecorder()

			gated.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("should return 403 for a staff member", func() {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+accessTokenFor("sara"))
			rec := httptest.NewRecorder()

			gated.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})
	})
})
