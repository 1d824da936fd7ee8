package analysis_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"cashbox/internal"
	"cashbox/internal/analysis"
	"cashbox/internal/ledger"
)

func TestAnalysis(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Analysis Suite")
}

// Mock client for testing
type mockClient struct {
	report     string
	err        error
	lastPrompt string
}

func (m *mockClient) GenerateReport(ctx context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.report, nil
}

var _ = Describe("AnalysisService", func() {
	var (
		client  *mockClient
		service *analysis.Service
		txs     []*ledger.Transaction
	)

	BeforeEach(func() {
		client = &mockClient{report: "## Cash flow looks healthy"}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = analysis.NewService(client, logger)

		txs = []*ledger.Transaction{
			{
				ID:       "t1",
				Amount:   5000,
				Type:     ledger.TypeIncome,
				Category: "مبيعات",
				Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				UserID:   "1",
				UserName: "المدير العام",
				Status:   ledger.StatusApproved,
			},
		}
	})

	Describe("AnalyzeFinancials", func() {
		It("should relay the generated report", func() {
			report, err := service.AnalyzeFinancials(context.Background(), txs)

			Expect(err).ToNot(HaveOccurred())
			Expect(report).To(Equal("## Cash flow looks healthy"))
		})

		It("should send ledger figures but no user identity", func() {
			_, err := service.AnalyzeFinancials(context.Background(), txs)

			Expect(err).ToNot(HaveOccurred())
			Expect(client.lastPrompt).To(ContainSubstring("مبيعات"))
			Expect(client.lastPrompt).To(ContainSubstring("5000"))
			Expect(client.lastPrompt).ToNot(ContainSubstring("المدير العام"))
			Expect(client.lastPrompt).ToNot(ContainSubstring(`"t1"`))
		})

		It("should surface client failures as typed errors", func() {
			client.err = internal.ErrAnalysisFailed

			_, err := service.AnalyzeFinancials(context.Background(), txs)

			Expect(err).To(MatchError(internal.ErrAnalysisFailed))
		})

		Context("when no client is configured", func() {
			It("should fail with a disabled error", func() {
				logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
				disabled := analysis.NewService(nil, logger)

				Expect(disabled.Enabled()).To(BeFalse())

				_, err := disabled.AnalyzeFinancials(context.Background(), txs)

				Expect(err).To(MatchError(internal.ErrAnalysisDisabled))
			})
		})
	})
})

var _ = Describe("GeminiClient", func() {
	Context("without an API key", func() {
		It("should refuse construction with a disabled error", func() {
			_, err := analysis.NewGeminiClient(internal.AIConfig{})

			Expect(err).To(MatchError(internal.ErrAnalysisDisabled))
		})
	})

	Context("against a stub endpoint", func() {
		var server *httptest.Server

		AfterEach(func() {
			if server != nil {
				server.Close()
			}
		})

		It("should extract the first candidate's text", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Method).To(Equal(http.MethodPost))
				Expect(r.URL.Path).To(ContainSubstring(":generateContent"))
				Expect(r.URL.Query().Get("key")).To(Equal("test-key"))

				body, err := json.Marshal(map[string]any{
					"candidates": []map[string]any{
						{"content": map[string]any{"parts": []map[string]any{{"text": "generated report"}}}},
					},
				})
				Expect(err).ToNot(HaveOccurred())
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(body)
			}))

			client, err := analysis.NewGeminiClientWithBaseURL(internal.AIConfig{APIKey: "test-key"}, server.URL)
			Expect(err).ToNot(HaveOccurred())

			report, err := client.GenerateReport(context.Background(), "analyze this")

			Expect(err).ToNot(HaveOccurred())
			Expect(report).To(Equal("generated report"))
		})

		It("should fail with a typed error on a non-200 response", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
			}))

			client, err := analysis.NewGeminiClientWithBaseURL(internal.AIConfig{APIKey: "test-key"}, server.URL)
			Expect(err).ToNot(HaveOccurred())

			_, err = client.GenerateReport(context.Background(), "analyze this")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeAnalysisFailed))
		})

		It("should fail with a typed error on an empty candidate list", func() {
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = strings.NewReader(`{"candidates":[]}`).WriteTo(w)
			}))

			client, err := analysis.NewGeminiClientWithBaseURL(internal.AIConfig{APIKey: "test-key"}, server.URL)
			Expect(err).ToNot(HaveOccurred())

			_, err = client.GenerateReport(context.Background(), "analyze this")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeAnalysisFailed))
		})
	})
})
