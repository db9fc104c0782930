package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/internal/models"
	"github.com/noah-isme/phlebotomy-portal/internal/service"
)

const transactionsRoute = "/admin/transactions"

type billingService interface {
	Transactions(ctx context.Context, creds service.Credentials) ([]models.Transaction, error)
	Summary(ctx context.Context, creds service.Credentials) (models.EarningsSummary, error)
	Busy(sessionID, id string) bool
	UpdateStatus(ctx context.Context, sessionID string, creds service.Credentials, id string, status models.TransactionStatus) (string, error)
}

// TransactionRow is one transaction with its in-flight flag.
type TransactionRow struct {
	models.Transaction
	Busy bool `json:"busy"`
}

// BillingView is the transactions page model.
type BillingView struct {
	Summary      models.EarningsSummary     `json:"summary"`
	Transactions []TransactionRow           `json:"transactions"`
	Statuses     []models.TransactionStatus `json:"statuses"`
}

// BillingHandler serves the admin transactions page.
type BillingHandler struct {
	service  billingService
	sessions sessionBinder
	logger   *zap.Logger
}

// NewBillingHandler constructs the handler.
func NewBillingHandler(service billingService, sessions sessionBinder, logger *zap.Logger) *BillingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingHandler{service: service, sessions: sessions, logger: logger}
}

// List godoc
// @Summary Transactions
// @Description Lists transactions with total earnings and the most recent payment.
// @Tags Billing
// @Produce json
// @Produce html
// @Success 200 {object} response.Envelope
// @Router /admin/transactions [get]
func (h *BillingHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	creds := credentialsFor(c, h.sessions)
	items, err := h.service.Transactions(ctx, creds)
	if err != nil {
		fail(c, err)
		return
	}
	summary, err := h.service.Summary(ctx, creds)
	if err != nil {
		if credentialFailure(err) {
			fail(c, err)
			return
		}
		h.logger.Warn("earnings summary unavailable", zap.Error(err))
	}

	view := BillingView{
		Summary:      summary,
		Transactions: make([]TransactionRow, 0, len(items)),
		Statuses:     models.TransactionStatuses,
	}
	id := sessionID(c)
	for _, item := range items {
		view.Transactions = append(view.Transactions, TransactionRow{Transaction: item, Busy: h.service.Busy(id, item.ID)})
	}
	render(c, http.StatusOK, "transactions.html", "Transactions", view, nil)
}

// UpdateStatus godoc
// @Summary Update transaction status
// @Tags Billing
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path string true "Transaction ID"
// @Param status formData string true "Completed, Pending or Denied"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/transactions/{id}/status [post]
func (h *BillingHandler) UpdateStatus(c *gin.Context) {
	var payload struct {
		Status models.TransactionStatus `json:"status" form:"status"`
	}
	if err := c.ShouldBind(&payload); err != nil {
		rejected(c, transactionsRoute, bindError(err, "invalid status payload"))
		return
	}
	msg, err := h.service.UpdateStatus(c.Request.Context(), sessionID(c), credentialsFor(c, h.sessions), c.Param("id"), payload.Status)
	if err != nil {
		rejected(c, transactionsRoute, err)
		return
	}
	if msg == "" {
		msg = "Transaction updated"
	}
	done(c, transactionsRoute, msg, nil)
}
