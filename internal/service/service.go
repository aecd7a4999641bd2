package service

import (
	"context"
	"errors"

	"spendtrack/internal/models"
	"spendtrack/internal/repository"
)

// Error kinds shared across services. Handlers branch on these with
// errors.Is to pick status codes; messages are for humans.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrExpenseNotFound = errors.New("expense not found")
)

// Authorization issues and verifies bearer tokens and owns credential checks.
type Authorization interface {
	Register(name, email, password string) (models.User, string, error)
	Login(email, password string) (string, error)
	ParseToken(accessToken string) (int64, error)
}

// ExpenseQuery exposes filtered, paginated owner-scoped listing.
type ExpenseQuery interface {
	List(ctx context.Context, ownerID int64, p ListParams) (ListResult, error)
}

// ExpenseSummary reduces an owner's full expense set to per-category totals.
type ExpenseSummary interface {
	Summarize(ctx context.Context, ownerID int64) (map[string]models.Money, error)
}

// ExpenseManager orchestrates create/update/delete with ownership checks.
type ExpenseManager interface {
	Create(ctx context.Context, ownerID int64, p CreateParams) (models.Expense, error)
	Update(ctx context.Context, ownerID int64, id string, p UpdateParams) (models.Expense, error)
	Delete(ctx context.Context, ownerID int64, id string) error
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	ExpenseQuery
	ExpenseSummary
	ExpenseManager
}

// NewService wires the repository layer into concrete services. Token
// configuration is injected once here and treated as immutable afterwards.
func NewService(repos *repository.Repository, tokens TokenConfig) *Service {
	return &Service{
		Authorization:  NewAuthService(repos.Users, tokens),
		ExpenseQuery:   NewQueryService(repos.Expenses),
		ExpenseSummary: NewSummaryService(repos.Expenses),
		ExpenseManager: NewExpenseService(repos.Expenses),
	}
}
