package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nathanyu/accounts-service/internal/domain"
	"github.com/nathanyu/accounts-service/internal/store"
	"github.com/nathanyu/accounts-service/internal/telemetry"
	"github.com/nathanyu/accounts-service/internal/transfer"
	"github.com/shopspring/decimal"
)

// Handler contains all HTTP handlers
type Handler struct {
	store       *store.AccountStore
	coordinator *transfer.Coordinator
}

// NewHandler creates a new handler
func NewHandler(store *store.AccountStore, coordinator *transfer.Coordinator) *Handler {
	return &Handler{
		store:       store,
		coordinator: coordinator,
	}
}

// CreateAccountRequest is the request body for account creation
type CreateAccountRequest struct {
	AccountID string           `json:"account_id" binding:"required"`
	Balance   *decimal.Decimal `json:"balance" binding:"required"`
}

// CreateAccount handles POST /v1/accounts
func (h *Handler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if req.Balance.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Initial balance must not be negative",
		})
		return
	}

	slog.InfoContext(c.Request.Context(), "creating account", "account", req.AccountID)

	account := domain.NewAccount(req.AccountID, *req.Balance)
	if err := h.store.Create(account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	h.updateAccountMetrics()

	c.Status(http.StatusCreated)
}

// GetAccount handles GET /v1/accounts/:account_id
func (h *Handler) GetAccount(c *gin.Context) {
	accountID := c.Param("account_id")

	account, ok := h.store.Get(accountID)
	if !ok {
		notFound := &domain.AccountNotFoundError{ID: accountID}
		c.JSON(http.StatusNotFound, gin.H{
			"error": notFound.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, account.Snapshot())
}

// TransferRequest is the request body for transfer endpoint
type TransferRequest struct {
	FromAccount string           `json:"from_account" binding:"required"`
	ToAccount   string           `json:"to_account" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
}

// TransferResponse is the response body for transfer endpoint
type TransferResponse struct {
	TransferID string `json:"transfer_id"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
}

// Transfer handles POST /v1/accounts/transfer
func (h *Handler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	transferID := uuid.Must(uuid.NewV7()).String()

	slog.InfoContext(c.Request.Context(), "performing transfer",
		"transfer_id", transferID,
		"from_account", req.FromAccount,
		"to_account", req.ToAccount,
		"amount", req.Amount.String(),
	)

	err := h.coordinator.PerformTransfer(c.Request.Context(), transferID, req.FromAccount, req.ToAccount, *req.Amount)
	if err != nil {
		var rejected *domain.TransferRejectedError
		if errors.As(err, &rejected) {
			// Validation failures are business outcomes, not system errors;
			// the joined reasons go back to the caller verbatim.
			c.JSON(http.StatusBadRequest, TransferResponse{
				TransferID: transferID,
				Success:    false,
				Message:    rejected.Error(),
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":       "failed to process transfer",
			"transfer_id": transferID,
		})
		return
	}

	c.JSON(http.StatusOK, TransferResponse{
		TransferID: transferID,
		Success:    true,
		Message:    "transfer completed",
	})
}

// updateAccountMetrics refreshes the account gauges. Transfers conserve the
// total, so only creation changes it.
func (h *Handler) updateAccountMetrics() {
	telemetry.AccountCount.Set(float64(h.store.Len()))

	total := decimal.Zero
	for _, s := range h.store.Snapshots() {
		total = total.Add(s.Balance)
	}
	telemetry.TotalBalanceGauge.Set(total.InexactFloat64())
}

// HealthResponse is the response for health check endpoint
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, h *Handler) {
	// Health check
	r.GET("/health", h.Health)

	// API v1
	v1 := r.Group("/v1/accounts")
	{
		v1.POST("", h.CreateAccount)
		v1.GET("/:account_id", h.GetAccount)
		v1.POST("/transfer", h.Transfer)
	}
}
