package handlers

import (
	"context"

	"spendtrack/internal/models"
	"spendtrack/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser  models.User
	registerToken string
	registerErr   error
	loginToken    string
	loginErr      error
	parseID       int64
	parseErr      error

	lastRegisterName  string
	lastRegisterEmail string
	lastLoginEmail    string
	lastParseToken    string
}

func (m *mockAuth) Register(name, email, password string) (models.User, string, error) {
	m.lastRegisterName = name
	m.lastRegisterEmail = email
	return m.registerUser, m.registerToken, m.registerErr
}

func (m *mockAuth) Login(email, password string) (string, error) {
	m.lastLoginEmail = email
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (int64, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockQuery struct {
	res service.ListResult
	err error

	lastOwnerID int64
	lastParams  service.ListParams
	listCalls   int
}

func (m *mockQuery) List(_ context.Context, ownerID int64, p service.ListParams) (service.ListResult, error) {
	m.listCalls++
	m.lastOwnerID = ownerID
	m.lastParams = p
	return m.res, m.err
}

type mockSummary struct {
	res map[string]models.Money
	err error

	lastOwnerID int64
}

func (m *mockSummary) Summarize(_ context.Context, ownerID int64) (map[string]models.Money, error) {
	m.lastOwnerID = ownerID
	return m.res, m.err
}

type mockManager struct {
	createRes models.Expense
	createErr error
	updateRes models.Expense
	updateErr error
	deleteErr error

	lastOwnerID   int64
	lastExpenseID string
	lastCreate    service.CreateParams
	lastUpdate    service.UpdateParams
	createCalls   int
	updateCalls   int
	deleteCalls   int
}

func (m *mockManager) Create(_ context.Context, ownerID int64, p service.CreateParams) (models.Expense, error) {
	m.createCalls++
	m.lastOwnerID = ownerID
	m.lastCreate = p
	return m.createRes, m.createErr
}

func (m *mockManager) Update(_ context.Context, ownerID int64, id string, p service.UpdateParams) (models.Expense, error) {
	m.updateCalls++
	m.lastOwnerID = ownerID
	m.lastExpenseID = id
	m.lastUpdate = p
	return m.updateRes, m.updateErr
}

func (m *mockManager) Delete(_ context.Context, ownerID int64, id string) error {
	m.deleteCalls++
	m.lastOwnerID = ownerID
	m.lastExpenseID = id
	return m.deleteErr
}
