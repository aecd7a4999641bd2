package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"spendtrack/internal/models"
	"spendtrack/internal/repository"
	"spendtrack/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	msgExpenseCreated = "Expense created successfully"
	msgExpenseUpdated = "Expense updated successfully"
	msgExpenseDeleted = "Expense deleted successfully"

	errCreateExpense = "failed to create expense"
	errListExpenses  = "failed to list expenses"
	errSummarize     = "failed to summarize expenses"
	errUpdateExpense = "failed to update expense"
	errDeleteExpense = "failed to delete expense"

	errPageInvalid  = "invalid 'page': must be an integer"
	errLimitInvalid = "invalid 'limit': must be an integer"
	errFromInvalid  = "invalid 'from' date; use YYYY-MM-DD"
	errToInvalid    = "invalid 'to' date; use YYYY-MM-DD"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// mutationError maps service error kinds to statuses for expense mutations.
func (h *Handler) mutationError(c *gin.Context, err error, fallbackMsg, logKey string) {
	switch {
	case errors.Is(err, service.ErrExpenseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
	case errors.Is(err, service.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, fallbackMsg, logKey, err)
	}
}

// Request DTO for creating an expense. Amount and date validate during
// unmarshalling, so a negative or garbled amount never reaches the service.
type createExpenseRequest struct {
	Amount   *models.Money `json:"amount"`
	Category string        `json:"category"`
	Date     *models.Date  `json:"date"`
	Note     *string       `json:"note"`
}

// Request DTO for partial updates. Note is raw so "absent" and "null" can be
// told apart: absent leaves the note alone, null clears it.
type updateExpenseRequest struct {
	Amount   *models.Money   `json:"amount"`
	Category *string         `json:"category"`
	Date     *models.Date    `json:"date"`
	Note     json.RawMessage `json:"note"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Create expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        body  body   createExpenseRequest  true  "Expense payload"
// @Success      201   {object}  map[string]interface{}  "message, expense"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/expenses [post]
// @Security     BearerAuth
func (h *Handler) createExpense(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	var req createExpenseRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	expense, err := h.services.Create(c.Request.Context(), ownerID, service.CreateParams{
		Amount:   req.Amount,
		Category: req.Category,
		Date:     req.Date,
		Note:     req.Note,
	})
	if err != nil {
		h.mutationError(c, err, errCreateExpense, "expense_create_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msgExpenseCreated, "expense": expense})
}

// parseListQuery extracts filter and paging parameters. The original mobile
// client sends startDate/endDate; from/to are accepted as aliases.
func (h *Handler) parseListQuery(c *gin.Context) (service.ListParams, bool) {
	var p service.ListParams
	p.Filter = repository.ExpenseFilter{Category: c.Query("category")}

	if qs := firstQuery(c, "from", "startDate"); qs != "" {
		d, err := models.ParseDate(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return p, false
		}
		p.Filter.From = d
	}
	if qs := firstQuery(c, "to", "endDate"); qs != "" {
		d, err := models.ParseDate(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return p, false
		}
		p.Filter.To = d
	}

	p.Page = 1
	if qs := c.Query("page"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errPageInvalid})
			return p, false
		}
		p.Page = n
	}

	// Absent limit means the default; an explicit non-positive value is
	// rejected by the service.
	p.PageSize = service.DefaultPageSize
	if qs := firstQuery(c, "limit", "pageSize"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
			return p, false
		}
		p.PageSize = n
	}

	return p, true
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			return v
		}
	}
	return ""
}

// @Summary      List expenses
// @Description  Owner-scoped listing with optional category and inclusive date range filters, newest first.
// @Tags         expenses
// @Produce      json
// @Param        category  query  string  false  "Exact category match"
// @Param        from      query  string  false  "Inclusive lower date bound (YYYY-MM-DD)"
// @Param        to        query  string  false  "Inclusive upper date bound (YYYY-MM-DD)"
// @Param        page      query  int     false  "Page number, defaults to 1"
// @Param        limit     query  int     false  "Page size, defaults to 10"
// @Success      200  {object}  map[string]interface{}  "expenses, pagination"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/expenses [get]
// @Security     BearerAuth
func (h *Handler) listExpenses(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	params, ok := h.parseListQuery(c)
	if !ok {
		return
	}

	res, err := h.services.List(c.Request.Context(), ownerID, params)
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errListExpenses, "expense_list_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expenses": res.Items,
		"pagination": gin.H{
			"page":       res.Page,
			"limit":      res.PageSize,
			"total":      res.Total,
			"totalPages": res.TotalPages,
		},
	})
}

// @Summary      Summarize expenses by category
// @Tags         expenses
// @Produce      json
// @Success      200  {object}  map[string]float64
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/expenses/summary [get]
// @Security     BearerAuth
func (h *Handler) summarizeExpenses(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	summary, err := h.services.Summarize(c.Request.Context(), ownerID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSummarize, "expense_summary_failed", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// @Summary      Update expense
// @Description  Partial update; absent fields stay unchanged, "note": null clears the note.
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id    path   string                true  "Expense id"
// @Param        body  body   updateExpenseRequest  true  "Fields to change"
// @Success      200   {object}  map[string]interface{}  "message, expense"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/expenses/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateExpense(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	var req updateExpenseRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	params := service.UpdateParams{
		Amount:   req.Amount,
		Category: req.Category,
		Date:     req.Date,
	}
	if len(req.Note) > 0 {
		params.NoteSet = true
		if string(req.Note) != "null" {
			var note string
			if err := json.Unmarshal(req.Note, &note); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'note': must be a string or null"})
				return
			}
			params.Note = &note
		}
	}

	expense, err := h.services.Update(c.Request.Context(), ownerID, c.Param("id"), params)
	if err != nil {
		h.mutationError(c, err, errUpdateExpense, "expense_update_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgExpenseUpdated, "expense": expense})
}

// @Summary      Delete expense
// @Tags         expenses
// @Produce      json
// @Param        id  path  string  true  "Expense id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/expenses/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteExpense(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	if err := h.services.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		h.mutationError(c, err, errDeleteExpense, "expense_delete_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgExpenseDeleted})
}
