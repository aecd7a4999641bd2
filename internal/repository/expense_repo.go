package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"spendtrack/internal/models"

	"github.com/google/uuid"
)

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository { return &ExpenseRepository{db: db} }

var _ Expenses = (*ExpenseRepository)(nil)

const (
	insertExpenseSQL = `INSERT INTO expenses (id, user_id, amount_cents, category, date, note) VALUES (?, ?, ?, ?, ?, ?)`
	selectOwnedSQL   = `SELECT id, user_id, amount_cents, category, date, note FROM expenses WHERE id = ? AND user_id = ?`
	updateExpenseSQL = `UPDATE expenses SET amount_cents = ?, category = ?, date = ?, note = ? WHERE id = ? AND user_id = ?`
	deleteExpenseSQL = `DELETE FROM expenses WHERE id = ? AND user_id = ?`
	sumByCategorySQL = `SELECT category, SUM(amount_cents) FROM expenses WHERE user_id = ? GROUP BY category`
)

// Insert stores a new expense. The record id is assigned here if empty.
func (r *ExpenseRepository) Insert(ctx context.Context, e models.Expense) (models.Expense, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, insertExpenseSQL,
		e.ID, e.UserID, e.Amount.Cents, e.Category, e.Date.String(), e.Note,
	)
	if err != nil {
		return models.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	return e, nil
}

// GetOwned fetches an expense by id scoped to its owner.
// Returns (nil, nil) when no row matches, whether the id is unknown or the
// record belongs to someone else; callers cannot tell the two apart.
func (r *ExpenseRepository) GetOwned(ctx context.Context, ownerID int64, id string) (*models.Expense, error) {
	row := r.db.QueryRowContext(ctx, selectOwnedSQL, id, ownerID)
	e, err := scanExpense(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select expense %q: %w", id, err)
	}
	return &e, nil
}

// Update rewrites the mutable columns of an owned expense.
func (r *ExpenseRepository) Update(ctx context.Context, e models.Expense) error {
	_, err := r.db.ExecContext(ctx, updateExpenseSQL,
		e.Amount.Cents, e.Category, e.Date.String(), e.Note, e.ID, e.UserID,
	)
	if err != nil {
		return fmt.Errorf("update expense %q: %w", e.ID, err)
	}
	return nil
}

// Delete removes an owned expense and reports whether a row was deleted.
func (r *ExpenseRepository) Delete(ctx context.Context, ownerID int64, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteExpenseSQL, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete expense %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for expense %q: %w", id, err)
	}
	return n > 0, nil
}

// buildFilter translates an ExpenseFilter into WHERE conditions. The owner
// predicate is always first; dates compare lexically, which matches
// chronological order for the YYYY-MM-DD column format.
func buildFilter(ownerID int64, f ExpenseFilter) (conds []string, args []any) {
	conds = append(conds, "user_id = ?")
	args = append(args, ownerID)

	if c := strings.TrimSpace(f.Category); c != "" {
		conds = append(conds, "category = ?")
		args = append(args, c)
	}
	if !f.From.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, f.From.String())
	}
	if !f.To.IsZero() {
		conds = append(conds, "date <= ?")
		args = append(args, f.To.String())
	}
	return conds, args
}

// List returns one page of the owner's expenses matching the filter, newest
// first. Ties on date break by id so pagination stays deterministic.
func (r *ExpenseRepository) List(ctx context.Context, ownerID int64, f ExpenseFilter, limit, offset int) ([]models.Expense, error) {
	conds, args := buildFilter(ownerID, f)

	q := `SELECT id, user_id, amount_cents, category, date, note FROM expenses WHERE ` +
		strings.Join(conds, " AND ") +
		` ORDER BY date DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	out := make([]models.Expense, 0, limit)
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan expense row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

// Count returns how many of the owner's expenses match the filter.
func (r *ExpenseRepository) Count(ctx context.Context, ownerID int64, f ExpenseFilter) (int, error) {
	conds, args := buildFilter(ownerID, f)

	q := `SELECT COUNT(*) FROM expenses WHERE ` + strings.Join(conds, " AND ")

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}

// SumByCategory totals the owner's expenses per category. Summing happens in
// SQL over integer cents, so results are exact. Categories without expenses
// produce no row.
func (r *ExpenseRepository) SumByCategory(ctx context.Context, ownerID int64) (map[string]models.Money, error) {
	rows, err := r.db.QueryContext(ctx, sumByCategorySQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("sum expenses by category: %w", err)
	}
	defer rows.Close()

	out := make(map[string]models.Money)
	for rows.Next() {
		var (
			category string
			cents    int64
		)
		if err := rows.Scan(&category, &cents); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		out[category] = models.Money{Cents: cents}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category sums: %w", err)
	}
	return out, nil
}

// scanExpense reads one expense row via the given scan function, converting
// the stored cents and date text back into domain types.
func scanExpense(scan func(dest ...any) error) (models.Expense, error) {
	var (
		e       models.Expense
		cents   int64
		dateStr string
		note    sql.NullString
	)
	if err := scan(&e.ID, &e.UserID, &cents, &e.Category, &dateStr, &note); err != nil {
		return models.Expense{}, err
	}
	e.Amount = models.Money{Cents: cents}
	d, err := models.ParseDate(dateStr)
	if err != nil {
		return models.Expense{}, fmt.Errorf("stored date %q: %w", dateStr, err)
	}
	e.Date = d
	if note.Valid {
		s := note.String
		e.Note = &s
	}
	return e, nil
}
