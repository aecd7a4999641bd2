package service

import (
	"context"
	"fmt"
	"strings"

	"spendtrack/internal/models"
	"spendtrack/internal/repository"
)

// ExpenseService owns expense mutations. The owner id always comes from the
// verified token, never from request payloads.
//
// Updates are load-merge-save with last-write-wins; there is no version
// check, and concurrent updates to the same record may overwrite each other.
type ExpenseService struct {
	expenses repository.Expenses
}

func NewExpenseService(expenses repository.Expenses) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

// Create validates and persists a new expense for the owner.
func (s *ExpenseService) Create(ctx context.Context, ownerID int64, p CreateParams) (models.Expense, error) {
	if p.Amount == nil || strings.TrimSpace(p.Category) == "" || p.Date == nil {
		return models.Expense{}, fmt.Errorf("%w: amount, category, and date are required", ErrInvalidArgument)
	}
	if err := validateAmount(*p.Amount); err != nil {
		return models.Expense{}, err
	}

	return s.expenses.Insert(ctx, models.Expense{
		UserID:   ownerID,
		Amount:   *p.Amount,
		Category: strings.TrimSpace(p.Category),
		Date:     *p.Date,
		Note:     p.Note,
	})
}

// Update applies the fields present in p to an owned expense. A nil pointer
// leaves the field unchanged; Note can be cleared via NoteSet.
func (s *ExpenseService) Update(ctx context.Context, ownerID int64, id string, p UpdateParams) (models.Expense, error) {
	e, err := s.loadOwned(ctx, ownerID, id)
	if err != nil {
		return models.Expense{}, err
	}

	if p.Amount != nil {
		if err := validateAmount(*p.Amount); err != nil {
			return models.Expense{}, err
		}
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		c := strings.TrimSpace(*p.Category)
		if c == "" {
			return models.Expense{}, fmt.Errorf("%w: category cannot be empty", ErrInvalidArgument)
		}
		e.Category = c
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.NoteSet {
		e.Note = p.Note
	}

	if err := s.expenses.Update(ctx, e); err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

// Delete removes an owned expense. Deletion is final; later lookups of the
// id return not-found.
func (s *ExpenseService) Delete(ctx context.Context, ownerID int64, id string) error {
	if _, err := s.loadOwned(ctx, ownerID, id); err != nil {
		return err
	}
	deleted, err := s.expenses.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !deleted {
		// Lost a race with another delete of the same record.
		return ErrExpenseNotFound
	}
	return nil
}

// loadOwned is the single ownership gate for mutations. An unknown id and a
// record owned by someone else are both ErrExpenseNotFound, so callers
// cannot probe other users' records.
func (s *ExpenseService) loadOwned(ctx context.Context, ownerID int64, id string) (models.Expense, error) {
	e, err := s.expenses.GetOwned(ctx, ownerID, id)
	if err != nil {
		return models.Expense{}, err
	}
	if e == nil {
		return models.Expense{}, ErrExpenseNotFound
	}
	return *e, nil
}

func validateAmount(m models.Money) error {
	if m.Cents < 0 {
		return fmt.Errorf("%w: amount must be non-negative", ErrInvalidArgument)
	}
	return nil
}
