package repository

import (
	"context"
	"database/sql"

	"spendtrack/internal/models"
)

// Users is the account store used by registration and login.
type Users interface {
	Create(name, email, passwordHash string) (int64, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id int64) (*models.User, error)
}

// ExpenseFilter narrows owner-scoped reads. Zero values mean "no bound".
type ExpenseFilter struct {
	Category string
	From     models.Date // inclusive
	To       models.Date // inclusive
}

// Expenses is the expense store. Every method takes the owning user id and
// never returns or touches another user's rows.
type Expenses interface {
	Insert(ctx context.Context, e models.Expense) (models.Expense, error)
	GetOwned(ctx context.Context, ownerID int64, id string) (*models.Expense, error)
	Update(ctx context.Context, e models.Expense) error
	Delete(ctx context.Context, ownerID int64, id string) (bool, error)
	List(ctx context.Context, ownerID int64, f ExpenseFilter, limit, offset int) ([]models.Expense, error)
	Count(ctx context.Context, ownerID int64, f ExpenseFilter) (int, error)
	SumByCategory(ctx context.Context, ownerID int64) (map[string]models.Money, error)
}

type Repository struct {
	Users    Users
	Expenses Expenses
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Expenses: NewExpenseRepository(db),
	}
}
