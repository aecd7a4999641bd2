package models

// Expense is a single outlay recorded by a user. UserID is fixed at creation
// and every read or write is scoped by it; records are never visible across
// accounts.
type Expense struct {
	ID       string  `json:"id"`
	UserID   int64   `json:"user_id"`
	Amount   Money   `json:"amount"`
	Category string  `json:"category"`
	Date     Date    `json:"date"`
	Note     *string `json:"note"` // nullable; omitted note stays null
}

// Suggested categories shown by clients. Free-form values are still accepted.
var SuggestedCategories = []string{
	"Food",
	"Transport",
	"Housing",
	"Health",
	"Entertainment",
	"Shopping",
	"Other",
}
