package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"spendtrack/internal/models"
	"spendtrack/internal/repository"
)

// fakeExpenseStore is an in-memory repository.Expenses used by service
// tests. It mirrors the store contract: owner scoping on every call,
// date-descending order with id tie-break, (nil, nil) on scoped misses.
type fakeExpenseStore struct {
	seq   int
	items map[string]models.Expense

	failWith error // when set, every call fails
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{items: make(map[string]models.Expense)}
}

var _ repository.Expenses = (*fakeExpenseStore)(nil)

func (f *fakeExpenseStore) Insert(_ context.Context, e models.Expense) (models.Expense, error) {
	if f.failWith != nil {
		return models.Expense{}, f.failWith
	}
	if e.ID == "" {
		f.seq++
		e.ID = fmt.Sprintf("exp-%03d", f.seq)
	}
	f.items[e.ID] = e
	return e, nil
}

func (f *fakeExpenseStore) GetOwned(_ context.Context, ownerID int64, id string) (*models.Expense, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	e, ok := f.items[id]
	if !ok || e.UserID != ownerID {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeExpenseStore) Update(_ context.Context, e models.Expense) error {
	if f.failWith != nil {
		return f.failWith
	}
	cur, ok := f.items[e.ID]
	if ok && cur.UserID == e.UserID {
		f.items[e.ID] = e
	}
	return nil
}

func (f *fakeExpenseStore) Delete(_ context.Context, ownerID int64, id string) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	e, ok := f.items[id]
	if !ok || e.UserID != ownerID {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

func (f *fakeExpenseStore) matching(ownerID int64, filter repository.ExpenseFilter) []models.Expense {
	var out []models.Expense
	for _, e := range f.items {
		if e.UserID != ownerID {
			continue
		}
		if c := strings.TrimSpace(filter.Category); c != "" && e.Category != c {
			continue
		}
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.Date.After(filter.To) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.String() != out[j].Date.String() {
			return out[i].Date.String() > out[j].Date.String()
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (f *fakeExpenseStore) List(_ context.Context, ownerID int64, filter repository.ExpenseFilter, limit, offset int) ([]models.Expense, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	all := f.matching(ownerID, filter)
	if offset >= len(all) {
		return []models.Expense{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeExpenseStore) Count(_ context.Context, ownerID int64, filter repository.ExpenseFilter) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return len(f.matching(ownerID, filter)), nil
}

func (f *fakeExpenseStore) SumByCategory(_ context.Context, ownerID int64) (map[string]models.Money, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make(map[string]models.Money)
	for _, e := range f.items {
		if e.UserID != ownerID {
			continue
		}
		m := out[e.Category]
		m.Cents += e.Amount.Cents
		out[e.Category] = m
	}
	return out, nil
}

// mustCreate seeds the store through the mutation service.
func mustCreate(t interface{ Fatalf(string, ...any) }, svc *ExpenseService, ownerID int64, amount, category, date string) models.Expense {
	m, err := models.ParseMoney(amount)
	if err != nil {
		t.Fatalf("parse amount %q: %v", amount, err)
	}
	d, err := models.ParseDate(date)
	if err != nil {
		t.Fatalf("parse date %q: %v", date, err)
	}
	e, err := svc.Create(context.Background(), ownerID, CreateParams{
		Amount:   &m,
		Category: category,
		Date:     &d,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	return e
}
