package ledger

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"cashbox/internal"
	"cashbox/internal/category"
	"cashbox/internal/user"
)

// Service owns the ledger rules: entry creation, the approval state machine
// and the dashboard aggregates.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns all ledger entries, newest first.
func (s *Service) List() ([]*Transaction, error) {
	txs, err := s.repo.ReadAll()
	if err != nil {
		s.logger.Error("failed to read ledger", "error", err)
		return nil, err
	}
	return txs, nil
}

// Create records a new entry. The initial status is derived from the acting
// user's role: administrators' entries are approved immediately, staff
// entries wait for review.
func (s *Service) Create(dto CreateTransactionDTO, actingUser *user.User) (*Transaction, error) {
	if actingUser == nil {
		return nil, internal.NewValidationError("acting user is required", internal.ErrCodeMissingActor)
	}
	if err := dto.Validate(); err != nil {
		s.logger.Error("transaction validation failed", "error", err, "user_id", actingUser.ID)
		return nil, err
	}

	status := StatusPending
	if actingUser.IsAdmin() {
		status = StatusApproved
	}

	t := &Transaction{
		ID:          uuid.NewString(),
		Amount:      dto.Amount,
		Type:        dto.Type,
		Category:    dto.Category,
		Description: dto.Description,
		Date:        time.Now().UTC(),
		UserID:      actingUser.ID,
		UserName:    actingUser.Name,
		Status:      status,
	}

	if err := s.repo.Insert(t); err != nil {
		s.logger.Error("failed to insert transaction", "error", err, "user_id", actingUser.ID)
		return nil, err
	}

	s.logger.Info("transaction created",
		"transaction_id", t.ID,
		"user_id", actingUser.ID,
		"amount", t.Amount,
		"type", t.Type,
		"status", t.Status)

	return t, nil
}

// SetStatus applies a review decision. Only administrators may transition,
// and only a PENDING entry may move; APPROVED and REJECTED are terminal.
func (s *Service) SetStatus(id string, newStatus Status, actingUser *user.User) (*Transaction, error) {
	if actingUser == nil {
		return nil, internal.NewValidationError("acting user is required", internal.ErrCodeMissingActor)
	}
	if !actingUser.IsAdmin() {
		s.logger.Warn("status change refused: not an admin",
			"transaction_id", id,
			"user_id", actingUser.ID,
			"role", actingUser.Role)
		return nil, internal.ErrAdminRequired
	}
	if newStatus != StatusApproved && newStatus != StatusRejected {
		return nil, internal.NewValidationError("status must be APPROVED or REJECTED", internal.ErrCodeValidationFailed)
	}

	t, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	if !t.CanTransition() {
		s.logger.Warn("status change refused: terminal status",
			"transaction_id", id,
			"current_status", t.Status)
		return nil, internal.ErrInvalidStatus
	}

	t.Status = newStatus
	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update transaction status", "error", err, "transaction_id", id)
		return nil, err
	}

	s.logger.Info("transaction status updated",
		"transaction_id", id,
		"status", newStatus,
		"reviewed_by", actingUser.ID)

	return t, nil
}

// Metrics computes the dashboard aggregates over the full ledger.
func (s *Service) Metrics() (Metrics, error) {
	txs, err := s.repo.ReadAll()
	if err != nil {
		s.logger.Error("failed to read ledger for metrics", "error", err)
		return Metrics{}, err
	}
	return ComputeMetrics(txs), nil
}

// Breakdown computes approved spend per reference category.
func (s *Service) Breakdown() ([]CategoryTotal, error) {
	txs, err := s.repo.ReadAll()
	if err != nil {
		s.logger.Error("failed to read ledger for breakdown", "error", err)
		return nil, err
	}
	return CategoryBreakdown(txs, category.All()), nil
}

func (s *Service) getByID(id string) (*Transaction, error) {
	txs, err := s.repo.ReadAll()
	if err != nil {
		return nil, err
	}
	for _, t := range txs {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, internal.ErrTransactionNotFound
}
