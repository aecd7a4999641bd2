package service

import (
	"spendtrack/internal/models"
	"spendtrack/internal/repository"
)

// ListParams selects one page of an owner's expenses.
type ListParams struct {
	Filter   repository.ExpenseFilter
	Page     int // defaults to 1 when < 1
	PageSize int // must be positive; handlers default absent values to 10
}

// ListResult is one page plus the matching totals.
type ListResult struct {
	Items      []models.Expense
	Total      int
	TotalPages int
	Page       int
	PageSize   int
}

// CreateParams carries the fields of a new expense. Amount, Category and
// Date are required; Note is optional.
type CreateParams struct {
	Amount   *models.Money
	Category string
	Date     *models.Date
	Note     *string
}

// UpdateParams applies a partial update: nil pointer means "leave unchanged".
// Note is nullable, so its presence is tracked separately — NoteSet with a
// nil Note clears the stored note.
type UpdateParams struct {
	Amount   *models.Money
	Category *string
	Date     *models.Date
	Note     *string
	NoteSet  bool
}
