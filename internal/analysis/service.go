package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"cashbox/internal"
	"cashbox/internal/ledger"
)

// PlaceholderReport is what the user sees when the analysis service is
// missing or fails; the failure is never surfaced as a crash.
const PlaceholderReport = "التحليل غير متاح حالياً. يرجى التحقق من إعدادات خدمة الذكاء الاصطناعي والمحاولة لاحقاً."

// entryProjection is the reduced view of a transaction sent to the service.
// Nothing user-identifying leaves the process.
type entryProjection struct {
	Type     ledger.Type   `json:"type"`
	Amount   float64       `json:"amount"`
	Category string        `json:"category"`
	Date     time.Time     `json:"date"`
	Status   ledger.Status `json:"status"`
}

const promptTemplate = `You are an expert financial advisor. Analyze the following cashbox ledger data and produce a summary report.

Data: %s

Required:
1. A concise cash-flow analysis.
2. The largest expense categories.
3. Three recommendations to improve financial management and reduce costs.
4. A quick risk assessment, if any risks exist.

Format the answer as clear, professional Markdown.`

// Service formats the ledger into a prompt and relays the generated report.
type Service struct {
	client Client
	logger *slog.Logger
}

// NewService builds the analysis service. A nil client means the feature is
// not configured; calls then fail with a typed disabled error.
func NewService(client Client, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

func (s *Service) Enabled() bool {
	return s.client != nil
}

// AnalyzeFinancials builds the reduced projection, sends the instruction
// template and returns the generated prose.
func (s *Service) AnalyzeFinancials(ctx context.Context, txs []*ledger.Transaction) (string, error) {
	if s.client == nil {
		return "", internal.ErrAnalysisDisabled
	}

	projections := make([]entryProjection, len(txs))
	for i, t := range txs {
		projections[i] = entryProjection{
			Type:     t.Type,
			Amount:   t.Amount,
			Category: t.Category,
			Date:     t.Date,
			Status:   t.Status,
		}
	}

	data, err := json.Marshal(projections)
	if err != nil {
		return "", internal.ErrAnalysisFailed.WithCause(err)
	}

	report, err := s.client.GenerateReport(ctx, fmt.Sprintf(promptTemplate, string(data)))
	if err != nil {
		s.logger.Error("financial analysis failed", "error", err, "entries", len(txs))
		return "", err
	}

	s.logger.Info("financial analysis generated", "entries", len(txs), "report_chars", len(report))
	return report, nil
}
