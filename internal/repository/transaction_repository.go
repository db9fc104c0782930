package repository

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/pkg/apiclient"
)

const (
	pathTransactions      = "/admin/get-transactions"
	pathUpdateTransaction = "/admin/update-transaction/"
	pathTotalEarning      = "/admin/get-total-earning"
	pathRecentTransaction = "/admin/get-recent-transaction"
)

// TransactionRepository reads and updates billing records.
type TransactionRepository struct {
	api Upstream
}

// NewTransactionRepository constructs the repository.
func NewTransactionRepository(api Upstream) *TransactionRepository {
	return &TransactionRepository{api: api}
}

// List returns every transaction.
func (r *TransactionRepository) List(ctx context.Context, token string) ([]models.Transaction, error) {
	var out []models.Transaction
	if _, err := r.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: pathTransactions, Token: token, Fallback: "Failed to fetch transactions"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus changes the status of one transaction.
func (r *TransactionRepository) UpdateStatus(ctx context.Context, token, id string, status models.TransactionStatus) (string, error) {
	res, err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPost,
		Path:     pathUpdateTransaction + url.PathEscape(id),
		Endpoint: "admin.update-transaction",
		Body:     map[string]models.TransactionStatus{"status": status},
		Token:    token,
		Fallback: "Failed to update transaction status",
	}, nil)
	if err != nil {
		return "", err
	}
	return messageOr(res, "Status updated successfully"), nil
}

// TotalEarnings returns the all-time earnings figure.
func (r *TransactionRepository) TotalEarnings(ctx context.Context, token string) (models.LooseString, error) {
	var out models.LooseString
	if _, err := r.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: pathTotalEarning, Token: token, Fallback: "Failed to load summary data"}, &out); err != nil {
		return "", err
	}
	if out == "" {
		out = "0"
	}
	return out, nil
}

// Recent returns the most recent transaction, or nil when there is none.
func (r *TransactionRepository) Recent(ctx context.Context, token string) (*models.Transaction, error) {
	var out []models.Transaction
	if _, err := r.api.Do(ctx, apiclient.Request{Method: http.MethodGet, Path: pathRecentTransaction, Token: token, Fallback: "Failed to load summary data"}, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}
