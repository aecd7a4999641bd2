package service

import (
	"context"

	"spendtrack/internal/models"
	"spendtrack/internal/repository"
)

// SummaryService computes per-category totals over an owner's full set.
type SummaryService struct {
	expenses repository.Expenses
}

func NewSummaryService(expenses repository.Expenses) *SummaryService {
	return &SummaryService{expenses: expenses}
}

// Summarize returns the owner's total amount per category. The sum runs over
// integer cents, so no precision is lost. An owner with no expenses gets an
// empty map, and categories never appear with a zero total.
func (s *SummaryService) Summarize(ctx context.Context, ownerID int64) (map[string]models.Money, error) {
	return s.expenses.SumByCategory(ctx, ownerID)
}
