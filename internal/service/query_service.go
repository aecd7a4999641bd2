package service

import (
	"context"
	"fmt"

	"spendtrack/internal/repository"
)

// DefaultPageSize applies when a request carries no page size at all.
const DefaultPageSize = 10

// QueryService builds owner-scoped list queries: filter, window, count.
type QueryService struct {
	expenses repository.Expenses
}

func NewQueryService(expenses repository.Expenses) *QueryService {
	return &QueryService{expenses: expenses}
}

// List returns one page of the owner's expenses plus total and page count.
// Page values below 1 are treated as 1; a non-positive page size is an
// error (handlers substitute DefaultPageSize only when the parameter is
// absent). The page read and the count are two independent queries, so the
// total may lag the visible page slightly under concurrent writes.
func (s *QueryService) List(ctx context.Context, ownerID int64, p ListParams) (ListResult, error) {
	if p.PageSize <= 0 {
		return ListResult{}, fmt.Errorf("%w: page size must be positive", ErrInvalidArgument)
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if err := validateFilter(p.Filter); err != nil {
		return ListResult{}, err
	}

	offset := (p.Page - 1) * p.PageSize

	items, err := s.expenses.List(ctx, ownerID, p.Filter, p.PageSize, offset)
	if err != nil {
		return ListResult{}, err
	}
	total, err := s.expenses.Count(ctx, ownerID, p.Filter)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Items:      items,
		Total:      total,
		TotalPages: pageCount(total, p.PageSize),
		Page:       p.Page,
		PageSize:   p.PageSize,
	}, nil
}

func validateFilter(f repository.ExpenseFilter) error {
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return fmt.Errorf("%w: 'from' must be <= 'to'", ErrInvalidArgument)
	}
	return nil
}

// pageCount is ceil(total/pageSize); 0 when there are no matches.
func pageCount(total, pageSize int) int {
	return (total + pageSize - 1) / pageSize
}
