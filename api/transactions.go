package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"finance-tracker/apperrors"
	"finance-tracker/db"
	"finance-tracker/logging"
	"finance-tracker/models"

	"github.com/gin-gonic/gin"
)

// AddTransaction godoc
// @Summary Add a transaction
// @Description The owner is always the authenticated caller; a user id in the body is ignored.
// @Tags transactions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param transaction body models.CreateTransactionRequest true "Transaction"
// @Success 201 {object} models.CreateTransactionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transaction/add [post]
func (h *Handler) AddTransaction(c *gin.Context) {
	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	transaction := models.Transaction{
		UserID:      c.GetInt(userIDKey),
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	}

	if err := h.storage.CreateTransaction(&transaction); err != nil {
		logging.Logger.Errorf("failed to create transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, models.CreateTransactionResponse{
		ID:      transaction.ID,
		Message: "Transaction added successfully",
	})
}

// GetTransactions godoc
// @Summary List the caller's transactions
// @Description Paginated with page/limit (defaults 1/10). An empty page is reported as 404.
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {array} models.Transaction
// @Failure 401 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transaction/ [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	transactions, err := h.storage.GetTransactions(c.GetInt(userIDKey), limit, offset)
	if err != nil {
		logging.Logger.Errorf("failed to list transactions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if len(transactions) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No transactions found for this user"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// GetTransaction godoc
// @Summary Get one transaction by id
// @Description A transaction owned by someone else is indistinguishable from a missing one.
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transaction/{id} [get]
func (h *Handler) GetTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	transaction, err := h.storage.GetTransactionByID(c.GetInt(userIDKey), id)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found for this user"})
		return
	}
	if err != nil {
		logging.Logger.Errorf("failed to get transaction %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction godoc
// @Summary Overwrite a transaction
// @Description Replaces type, category, amount, date and description with whatever is supplied. Unlike add, no field validation is performed.
// @Tags transactions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Transaction ID"
// @Param transaction body models.CreateTransactionRequest true "New field values"
// @Success 200 {object} models.UpdateTransactionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transaction/update/{id} [put]
func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction := models.Transaction{
		ID:          id,
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	}

	err = h.storage.UpdateTransaction(c.GetInt(userIDKey), &transaction)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found for this user"})
		return
	}
	if err != nil {
		logging.Logger.Errorf("failed to update transaction %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.UpdateTransactionResponse{
		UpdatedID: id,
		Message:   "Transaction updated successfully",
	})
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Transaction ID"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transaction/{id} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	err = h.storage.DeleteTransaction(c.GetInt(userIDKey), id)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found for this user"})
		return
	}
	if err != nil {
		logging.Logger.Errorf("failed to delete transaction %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, models.MessageResponse{Message: "Transaction deleted successfully"})
}

// TransactionSummary godoc
// @Summary Per-type totals, optionally filtered
// @Description Groups the caller's transactions by type and sums amounts. Date bounds are inclusive; a single bound leaves the range open on the other side. The id filter comes from the query string; the path segment is kept for URL compatibility and ignored.
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Ignored"
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param id query int false "Exact transaction id"
// @Success 200 {array} models.SummaryRow
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transaction/summary/{id} [get]
func (h *Handler) TransactionSummary(c *gin.Context) {
	filter := models.SummaryFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	if filter.StartDate != "" {
		if _, err := time.Parse(models.DateLayout, filter.StartDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format. Use YYYY-MM-DD."})
			return
		}
	}
	if filter.EndDate != "" {
		if _, err := time.Parse(models.DateLayout, filter.EndDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format. Use YYYY-MM-DD."})
			return
		}
	}
	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
			return
		}
		filter.ID = id
	}

	summary, err := h.storage.Summary(c.GetInt(userIDKey), filter)
	if err != nil {
		logging.Logger.Errorf("failed to build summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if len(summary) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No transactions found for the specified user."})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// MonthlyReport godoc
// @Summary Month/category totals
// @Description Groups the caller's transactions by calendar month (YYYY-MM) and category, newest month first, categories ascending within a month.
// @Tags reports
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Ignored"
// @Success 200 {array} models.MonthlyReportRow
// @Failure 401 {object} models.MessageResponse
// @Failure 404 {object} models.MessageResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transaction/monthly-report/{id} [get]
func (h *Handler) MonthlyReport(c *gin.Context) {
	report, err := h.storage.MonthlyReport(c.GetInt(userIDKey))
	if err != nil {
		logging.Logger.Errorf("failed to build monthly report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if len(report) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No transactions found for the specified user."})
		return
	}

	c.JSON(http.StatusOK, report)
}
