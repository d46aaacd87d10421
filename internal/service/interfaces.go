// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/mwhite/centsible/internal/model"
)

// Credentials holds the login details for one bank connection attempt. They
// are held in memory only and never persisted or logged in full.
type Credentials struct {
	Username      string
	Password      string
	AccountNumber string
}

// AuthGrant is the result of a successful bank authentication.
type AuthGrant struct {
	AccountsFound int
}

// BankAuthenticator is the external authentication capability for a bank
// source.
type BankAuthenticator interface {
	Authenticate(ctx context.Context, sourceID string, creds Credentials) (*AuthGrant, error)
}

// RecordFetcher retrieves raw transaction candidates from a connected source.
type RecordFetcher interface {
	FetchRecords(ctx context.Context, sourceID string) ([]model.RawRecord, error)
}

// TransactionCreator is the subset of the store the import pipeline needs.
type TransactionCreator interface {
	CreateTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
}

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate    *time.Time
	EndDate      *time.Time
	Category     model.Category
	Type         model.TransactionType
	SourceID     string
	ImportedOnly bool
	Limit        int
	Offset       int
}

// TransactionPatch carries the fields of a transaction update. Nil fields are
// left unchanged.
type TransactionPatch struct {
	Date        *time.Time
	Amount      *float64
	Type        *model.TransactionType
	Category    *model.Category
	Description *string
	Merchant    *string
	Recurring   *bool
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	TransactionCreator

	// Transaction operations
	GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, patch TransactionPatch) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) (bool, error)

	// Budget operations
	ListBudgets(ctx context.Context) ([]model.Budget, error)
	GetBudgetByCategory(ctx context.Context, category model.Category) (*model.Budget, error)
	SaveBudget(ctx context.Context, budget *model.Budget) (*model.Budget, error)
	DeleteBudget(ctx context.Context, category model.Category) (bool, error)
	RecalculateSpent(ctx context.Context, now time.Time) error

	// Goal operations
	ListGoals(ctx context.Context) ([]model.Goal, error)
	GetGoalByID(ctx context.Context, id int64) (*model.Goal, error)
	CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error)
	AddGoalProgress(ctx context.Context, id int64, amount float64) (*model.Goal, error)
	DeleteGoal(ctx context.Context, id int64) (bool, error)

	// Reporting
	CategorySummary(ctx context.Context, start, end time.Time) (map[model.Category]CategorySummary, error)
	CashFlow(ctx context.Context, start, end time.Time) (*CashFlowSummary, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// CategorySummary contains aggregated statistics for a category.
type CategorySummary struct {
	Count  int
	Amount float64
}

// DateRange represents a time period with start and end dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// CashFlowSummary contains income, expense, and net flow calculations.
type CashFlowSummary struct {
	ExpensesByCategory map[model.Category]CategorySummary
	DateRange          DateRange
	TotalIncome        float64
	TotalExpenses      float64
	NetCashFlow        float64
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
