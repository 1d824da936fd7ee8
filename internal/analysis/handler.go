package analysis

import (
	"context"
	"net/http"

	"cashbox/internal/ledger"
	"cashbox/internal/transport"
	"cashbox/pkg/logger"
)

type ServiceAPI interface {
	Enabled() bool
	AnalyzeFinancials(ctx context.Context, txs []*ledger.Transaction) (string, error)
}

type LedgerReader interface {
	List() ([]*ledger.Transaction, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Ledger  LedgerReader
}

func NewHandler(service ServiceAPI, ledgerReader LedgerReader) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
		Ledger:      ledgerReader,
	}
}

type ReportResponse struct {
	Report    string `json:"report"`
	Generated bool   `json:"generated"`
}

// GenerateReport summarizes the current ledger. Analysis failures degrade
// to a placeholder report with a 200, never a crash.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Ledger.List()
	if err != nil {
		h.Logger.Error("GenerateReport: failed to load ledger", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	report, err := h.Service.AnalyzeFinancials(r.Context(), txs)
	if err != nil {
		h.Logger.Warn("GenerateReport: analysis unavailable", "error", err)
		h.WriteJSON(w, http.StatusOK, ReportResponse{Report: PlaceholderReport, Generated: false})
		return
	}

	h.WriteJSON(w, http.StatusOK, ReportResponse{Report: report, Generated: true})
}
