// internal/handler/ledger.go
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/service"

	val "finance-tracker/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Ledger is the service contract the handlers bind to HTTP.
type Ledger interface {
	GetAll(ctx context.Context, ownerID int64) (domain.LedgerSummary, error)
	GetByMonth(ctx context.Context, ownerID int64, year, month int) (domain.LedgerSummary, error)
	CreateTransaction(ctx context.Context, ownerID int64, input service.CreateTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID int64, id int) error
	ListCategories(ctx context.Context, ownerID int64) ([]domain.Category, error)
	CreateCategory(ctx context.Context, ownerID int64, name, color string) (*domain.Category, error)
	SeedDefaultCategories(ctx context.Context, ownerID int64) ([]domain.Category, error)
}

type LedgerHandler struct {
	ledger Ledger
}

func NewLedgerHandler(ledger Ledger) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// GetCategories godoc
// @Summary List the caller's categories, ordered by name
// @Success 200 {array} domain.Category
// @Router /api/v1/categories [get]
func (h *LedgerHandler) GetCategories(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	categories, err := h.ledger.ListCategories(c.Request.Context(), ownerID)
	if err != nil {
		writeError(c, err, "user_id", ownerID)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory godoc
// @Summary Create a category for the caller
// @Param request body CreateCategoryRequest true "Category data"
// @Success 201 {object} domain.Category
// @Failure 400 {object} map[string]string
// @Router /api/v1/categories [post]
func (h *LedgerHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	category, err := h.ledger.CreateCategory(c.Request.Context(), ownerID, req.Name, req.Color)
	if err != nil {
		writeError(c, err, "user_id", ownerID)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// CreateDefaultCategories godoc
// @Summary Seed the fixed default category set for the caller
// @Success 201 {array} domain.Category
// @Router /api/v1/categories/defaults [post]
func (h *LedgerHandler) CreateDefaultCategories(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	categories, err := h.ledger.SeedDefaultCategories(c.Request.Context(), ownerID)
	if err != nil {
		writeError(c, err, "user_id", ownerID)
		return
	}
	c.JSON(http.StatusCreated, categories)
}

// GetTransactions godoc
// @Summary Full ledger grouped by month, with grand total
// @Success 200 {object} domain.LedgerSummary
// @Router /api/v1/transactions [get]
func (h *LedgerHandler) GetTransactions(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	summary, err := h.ledger.GetAll(c.Request.Context(), ownerID)
	if err != nil {
		writeError(c, err, "user_id", ownerID)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetTransactionsByMonth godoc
// @Summary Ledger for one calendar month
// @Param year query int false "Target year, defaults to current"
// @Param month query int false "Target month 1-12, defaults to current"
// @Success 200 {object} domain.LedgerSummary
// @Failure 400 {object} map[string]string
// @Router /api/v1/transactions/month [get]
func (h *LedgerHandler) GetTransactionsByMonth(c *gin.Context) {
	year, ok := intQuery(c, "year")
	if !ok {
		return
	}
	month, ok := intQuery(c, "month")
	if !ok {
		return
	}

	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	summary, err := h.ledger.GetByMonth(c.Request.Context(), ownerID, year, month)
	if err != nil {
		writeError(c, err, "user_id", ownerID, "year", year, "month", month)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CreateTransaction godoc
// @Summary Record a transaction against one of the caller's categories
// @Param request body CreateTransactionRequest true "Transaction data"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /api/v1/transactions [post]
func (h *LedgerHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	transaction, err := h.ledger.CreateTransaction(c.Request.Context(), ownerID, service.CreateTransactionInput{
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeError(c, err, "user_id", ownerID, "category_id", req.CategoryID)
		return
	}
	c.JSON(http.StatusCreated, transaction)
}

// DeleteTransaction godoc
// @Summary Delete one of the caller's transactions
// @Param id path int true "Transaction id"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string
// @Router /api/v1/transactions/{id} [delete]
func (h *LedgerHandler) DeleteTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	if err := h.ledger.DeleteTransaction(c.Request.Context(), ownerID, id); err != nil {
		writeError(c, err, "user_id", ownerID, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// === DTO ===

type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,notblank"`
	Color string `json:"color"`
}

type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required,notblank"`
	Date        time.Time       `json:"date" validate:"required"`
	CategoryID  int             `json:"categoryId" validate:"required"`
}

// === helpers ===

func ownerFromContext(c *gin.Context) (int64, bool) {
	userIDVal, ok := c.Get("user_id")
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "user_id missing"})
		return 0, false
	}
	userID, ok := userIDVal.(int64)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "invalid user_id"})
		return 0, false
	}
	return userID, true
}

func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return 0, false
	}
	return v, true
}

func writeError(c *gin.Context, err error, logArgs ...any) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		slog.Error("request failed", append([]any{"error", err, "path", c.FullPath()}, logArgs...)...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func validateStruct(v any) error {
	if err := val.Validate.Struct(v); err != nil {
		var errs []string
		for _, e := range err.(validator.ValidationErrors) {
			errs = append(errs, fieldErrorToString(e))
		}
		return fmt.Errorf("invalid input: %s", strings.Join(errs, "; "))
	}
	return nil
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
