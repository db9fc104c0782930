package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
)

type transactionSource interface {
	List(ctx context.Context, token string) ([]models.Transaction, error)
	UpdateStatus(ctx context.Context, token, id string, status models.TransactionStatus) (string, error)
	TotalEarnings(ctx context.Context, token string) (models.LooseString, error)
	Recent(ctx context.Context, token string) (*models.Transaction, error)
}

// BillingService serves the transactions view.
type BillingService struct {
	repo    transactionSource
	metrics *MetricsService
	logger  *zap.Logger

	mu   sync.Mutex
	busy inflight
}

// NewBillingService constructs a BillingService.
func NewBillingService(repo transactionSource, metrics *MetricsService, logger *zap.Logger) *BillingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingService{repo: repo, metrics: metrics, logger: logger, busy: make(inflight)}
}

// Transactions returns every transaction.
func (s *BillingService) Transactions(ctx context.Context, creds Credentials) ([]models.Transaction, error) {
	return withToken(ctx, creds, s.repo.List)
}

// Busy reports whether a status update for id is outstanding in sessionID.
func (s *BillingService) Busy(sessionID, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy.has(sessionID + registryKeySep + id)
}

// UpdateStatus changes one transaction's status. A second update for the same row
// in the same session is refused while the first is outstanding.
func (s *BillingService) UpdateStatus(ctx context.Context, sessionID string, creds Credentials, id string, status models.TransactionStatus) (string, error) {
	if !status.Valid() {
		return "", appErrors.Clone(appErrors.ErrValidation, "status must be Completed, Pending or Denied")
	}
	token, err := creds.Token(ctx)
	if err != nil {
		return "", err
	}

	key := sessionID + registryKeySep + id
	s.mu.Lock()
	if !s.busy.begin(key) {
		s.mu.Unlock()
		return "", appErrors.Clone(appErrors.ErrConflict, "an update for this transaction is already in progress")
	}
	s.mu.Unlock()

	msg, err := s.repo.UpdateStatus(ctx, token, id, status)

	s.mu.Lock()
	s.busy.done(key)
	s.mu.Unlock()

	if err != nil {
		s.metrics.RecordMutation("transaction", "failed")
		rejectCredential(ctx, creds, err)
		return "", err
	}
	s.metrics.RecordMutation("transaction", "succeeded")
	return msg, nil
}

// Summary fetches total earnings and the most recent transaction concurrently.
func (s *BillingService) Summary(ctx context.Context, creds Credentials) (models.EarningsSummary, error) {
	token, err := creds.Token(ctx)
	if err != nil {
		return models.EarningsSummary{}, err
	}

	var (
		wg        sync.WaitGroup
		summary   models.EarningsSummary
		totalErr  error
		recentErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		summary.TotalEarnings, totalErr = s.repo.TotalEarnings(ctx, token)
	}()
	go func() {
		defer wg.Done()
		summary.Recent, recentErr = s.repo.Recent(ctx, token)
	}()
	wg.Wait()

	for _, err := range []error{totalErr, recentErr} {
		if err != nil {
			rejectCredential(ctx, creds, err)
			return models.EarningsSummary{}, err
		}
	}
	return summary, nil
}
