package auth_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"cashbox/internal"
	"cashbox/internal/auth"
	"cashbox/internal/user"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

// Mock directory for testing
type mockDirectory struct {
	byUsername map[string]*user.User
	byID       map[string]*user.User
}

func newMockDirectory(users ...*user.User) *mockDirectory {
	d := &mockDirectory{
		byUsername: make(map[string]*user.User),
		byID:       make(map[string]*user.User),
	}
	for _, u := range users {
		d.byUsername[u.Username] = u
		d.byID[u.ID] = u
	}
	return d
}

func (d *mockDirectory) FindByUsername(username string) (*user.User, error) {
	if u, ok := d.byUsername[username]; ok {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

func (d *mockDirectory) GetByID(id string) (*user.User, error) {
	if u, ok := d.byID[id]; ok {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

func hashed(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	Expect(err).ToNot(HaveOccurred())
	return string(hash)
}

var _ = Describe("AuthService", func() {
	var (
		service   *auth.Service
		directory *mockDirectory
		tokenGen  *auth.JWTTokenGenerator
		admin     *user.User
	)

	BeforeEach(func() {
		admin = &user.User{
			ID:           "1",
			Name:         "المدير العام",
			Username:     "admin",
			PasswordHash: hashed("123"),
			Role:         user.RoleAdmin,
		}
		directory = newMockDirectory(admin)
		tokenGen = auth.NewJWTTokenGenerator("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(directory, tokenGen, logger)
	})

	Describe("Authenticate", func() {
		Context("with valid credentials", func() {
			It("should return a token pair and the matched user", func() {
				tokens, err := service.Authenticate(auth.LoginDTO{Username: "admin", Password: "123"})

				Expect(err).ToNot(HaveOccurred())
				Expect(tokens.AccessToken).ToNot(BeEmpty())
				Expect(tokens.RefreshToken).ToNot(BeEmpty())
				Expect(tokens.RefreshToken).ToNot(Equal(tokens.AccessToken))
				Expect(tokens.User).To(Equal(admin))
			})

			It("should return an access token that validates", func() {
				tokens, err := service.Authenticate(auth.LoginDTO{Username: "admin", Password: "123"})
				Expect(err).ToNot(HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)

				Expect(err).ToNot(HaveOccurred())
				Expect(claims.UserID).To(Equal(admin.ID))
			})
		})

		Context("with a wrong password", func() {
			It("should fail with invalid credentials", func() {
				_, err := service.Authenticate(auth.LoginDTO{Username: "admin", Password: "wrong"})

				Expect(err).To(MatchError(internal.ErrInvalidCredentials))
			})
		})

		Context("with an unknown username", func() {
			It("should fail with the same error as a wrong password", func() {
				_, err := service.Authenticate(auth.LoginDTO{Username: "ghost", Password: "123"})

				Expect(err).To(MatchError(internal.ErrInvalidCredentials))
			})
		})

		Context("with missing fields", func() {
			It("should fail validation before touching the directory", func() {
				_, err := service.Authenticate(auth.LoginDTO{Username: "admin"})

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			})
		})
	})

	Describe("RefreshTokens", func() {
		It("should issue a fresh pair for a valid refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Username: "admin", Password: "123"})
			Expect(err).ToNot(HaveOccurred())

			renewed, err := service.RefreshTokens(tokens.RefreshToken)

			Expect(err).ToNot(HaveOccurred())
			Expect(renewed.AccessToken).ToNot(BeEmpty())
			Expect(renewed.RefreshToken).ToNot(BeEmpty())
			Expect(renewed.User).To(Equal(admin))
		})

		It("should reject an access token used as a refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{Username: "admin", Password: "123"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.RefreshTokens(tokens.AccessToken)

			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})

		It("should reject garbage", func() {
			_, err := service.RefreshTokens("not-a-token")

			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})

		It("should reject a token for a user no longer in the directory", func() {
			ghostGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", time.Minute, time.Minute)
			token, err := ghostGen.GenerateRefreshToken("deleted-user")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.RefreshTokens(token)

			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("should reject an expired token", func() {
			expiredGen := auth.NewJWTTokenGenerator("access-secret", "refresh-secret", -time.Minute, time.Minute)
			token, err := expiredGen.GenerateAccessToken(admin.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			Expect(err).To(MatchError(internal.ErrTokenExpired))
		})

		It("should reject a token signed with a different secret", func() {
			otherGen := auth.NewJWTTokenGenerator("other-secret", "refresh-secret", time.Minute, time.Minute)
			token, err := otherGen.GenerateAccessToken(admin.ID)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})
	})

	Describe("ResolveUser", func() {
		It("should load the directory record behind the claims", func() {
			u, err := service.ResolveUser(&auth.Claims{UserID: admin.ID})

			Expect(err).ToNot(HaveOccurred())
			Expect(u).To(Equal(admin))
		})

		It("should report an invalid token for an unknown user id", func() {
			_, err := service.ResolveUser(&auth.Claims{UserID: "ghost"})

			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})
	})
})
