package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/moldshop/erp/internal/application/finance"
)

// TransactionHandler exposes the read-only ledger
type TransactionHandler struct {
	BaseHandler
	ledgerService *financeapp.LedgerService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(ledgerService *financeapp.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

// List handles GET /transactions
func (h *TransactionHandler) List(c *gin.Context) {
	var filter financeapp.TransactionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	rows, total, err := h.ledgerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := pagination(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, rows, total, page, pageSize)
}

// Summary handles GET /transactions/summary
func (h *TransactionHandler) Summary(c *gin.Context) {
	var filter financeapp.TransactionListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	summary, err := h.ledgerService.Summary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
