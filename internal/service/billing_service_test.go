package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	appErrors "github.com/noah-isme/phlebotomy-portal/pkg/errors"
)

type stubTransactionSource struct {
	gate      chan struct{}
	recentErr error
}

func (s *stubTransactionSource) List(context.Context, string) ([]models.Transaction, error) {
	return []models.Transaction{{ID: "t1", Status: models.TransactionPending}}, nil
}

func (s *stubTransactionSource) UpdateStatus(context.Context, string, string, models.TransactionStatus) (string, error) {
	if s.gate != nil {
		<-s.gate
	}
	return "Status updated successfully", nil
}

func (s *stubTransactionSource) TotalEarnings(context.Context, string) (models.LooseString, error) {
	return "1250.50", nil
}

func (s *stubTransactionSource) Recent(context.Context, string) (*models.Transaction, error) {
	if s.recentErr != nil {
		return nil, s.recentErr
	}
	return &models.Transaction{ID: "t9", PatientName: "Jane"}, nil
}

func TestBillingUpdateStatusRejectsConcurrentUpdateOfSameRow(t *testing.T) {
	src := &stubTransactionSource{gate: make(chan struct{})}
	svc := NewBillingService(src, nil, nil)
	creds := &stubCredentials{token: "tok"}

	done := make(chan error, 1)
	go func() {
		_, err := svc.UpdateStatus(context.Background(), "s1", creds, "t1", models.TransactionCompleted)
		done <- err
	}()
	require.Eventually(t, func() bool { return svc.Busy("s1", "t1") }, time.Second, 5*time.Millisecond)

	_, err := svc.UpdateStatus(context.Background(), "s1", creds, "t1", models.TransactionDenied)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict.Code))

	close(src.gate)
	require.NoError(t, <-done)
	assert.False(t, svc.Busy("s1", "t1"))
}

func TestBillingUpdateStatusValidatesStatus(t *testing.T) {
	svc := NewBillingService(&stubTransactionSource{}, nil, nil)
	_, err := svc.UpdateStatus(context.Background(), "s1", &stubCredentials{token: "tok"}, "t1", "Refunded")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation.Code))
}

func TestBillingSummary(t *testing.T) {
	src := &stubTransactionSource{}
	svc := NewBillingService(src, nil, nil)

	summary, err := svc.Summary(context.Background(), &stubCredentials{token: "tok"})
	require.NoError(t, err)
	assert.Equal(t, models.LooseString("1250.50"), summary.TotalEarnings)
	require.NotNil(t, summary.Recent)
	assert.Equal(t, "Jane", summary.Recent.PatientName)

	src.recentErr = appErrors.ErrUpstreamUnavailable
	_, err = svc.Summary(context.Background(), &stubCredentials{token: "tok"})
	assert.True(t, appErrors.IsRetryable(err))
}
