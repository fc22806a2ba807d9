// Package service defines the interfaces for all application collaborators.
package service

import (
	"context"
	"time"

	"github.com/mvallesteros/rumbo/internal/model"
)

// Keys used in the durable local store.
const (
	SelectedPlanIDKey = "selected_plan_id"
	SelectedPlanKey   = "selected_plan"
)

// LocalStore is the durable client-side storage for cross-page state
// such as the selected travel plan.
type LocalStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// AuthSession exposes the stored authentication state. Every data
// command requires it; absence means the user must log in first.
type AuthSession interface {
	Token() (string, bool)
	User() (*model.User, bool)
	UserID() (string, bool)
}

// AccountService is the accounts collaborator.
type AccountService interface {
	ListByUser(ctx context.Context, userID string) ([]model.Account, error)
	GetByID(ctx context.Context, id string) (*model.Account, error)
	Create(ctx context.Context, input *model.Account) (*model.Account, error)
	Update(ctx context.Context, id string, patch *model.Account) (*model.Account, error)
	Delete(ctx context.Context, id string, hard bool) error
	ToggleActive(ctx context.Context, id string, active bool) (*model.Account, error)
}

// BudgetService is the budgets collaborator.
type BudgetService interface {
	ListByUser(ctx context.Context, userID string) ([]model.Budget, error)
	GetByID(ctx context.Context, id string) (*model.Budget, error)
	Create(ctx context.Context, input *model.Budget) (*model.Budget, error)
	Update(ctx context.Context, id string, patch *model.Budget) (*model.Budget, error)
	Delete(ctx context.Context, id string, hard bool) error
	ToggleActive(ctx context.Context, id string, active bool) (*model.Budget, error)
}

// CategoryService is the categories collaborator.
type CategoryService interface {
	ListByUser(ctx context.Context, userID string) ([]model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	Create(ctx context.Context, input *model.Category) (*model.Category, error)
	Update(ctx context.Context, id string, patch *model.Category) (*model.Category, error)
	Delete(ctx context.Context, id string, hard bool) error
	ToggleActive(ctx context.Context, id string, active bool) (*model.Category, error)
}

// GoalService is the savings-goals collaborator.
type GoalService interface {
	ListByUser(ctx context.Context, userID string) ([]model.Goal, error)
	GetByID(ctx context.Context, id string) (*model.Goal, error)
	Create(ctx context.Context, input *model.Goal) (*model.Goal, error)
	Update(ctx context.Context, id string, patch *model.Goal) (*model.Goal, error)
	Delete(ctx context.Context, id string, hard bool) error
	ToggleActive(ctx context.Context, id string, active bool) (*model.Goal, error)
	MarkCompleted(ctx context.Context, id string) (*model.Goal, error)
}

// RecurringService is the recurring-transactions collaborator.
type RecurringService interface {
	ListByUser(ctx context.Context, userID string) ([]model.RecurringTransaction, error)
	GetByID(ctx context.Context, id string) (*model.RecurringTransaction, error)
	Create(ctx context.Context, input *model.RecurringTransaction) (*model.RecurringTransaction, error)
	Update(ctx context.Context, id string, patch *model.RecurringTransaction) (*model.RecurringTransaction, error)
	Delete(ctx context.Context, id string, hard bool) error
	ToggleActive(ctx context.Context, id string, active bool) (*model.RecurringTransaction, error)
}

// TransferService is the transfers collaborator.
type TransferService interface {
	ListByUser(ctx context.Context, userID string) ([]model.Transfer, error)
	GetByID(ctx context.Context, id string) (*model.Transfer, error)
	Create(ctx context.Context, input *model.Transfer) (*model.Transfer, error)
	Delete(ctx context.Context, id string, hard bool) error
}

// PlanService is the travel-plans collaborator.
type PlanService interface {
	ListByUser(ctx context.Context, userID string) ([]model.TravelPlan, error)
	GetByID(ctx context.Context, id string) (*model.TravelPlan, error)
	Create(ctx context.Context, input *model.TravelPlan) (*model.TravelPlan, error)
	Update(ctx context.Context, id string, patch *model.TravelPlan) (*model.TravelPlan, error)
	Delete(ctx context.Context, id string, hard bool) error
	ToggleActive(ctx context.Context, id string, active bool) (*model.TravelPlan, error)
}

// ActivityService is the travel-activities collaborator.
type ActivityService interface {
	ListByPlan(ctx context.Context, planID string) ([]model.TravelActivity, error)
	GetByID(ctx context.Context, id string) (*model.TravelActivity, error)
	Create(ctx context.Context, input *model.TravelActivity) (*model.TravelActivity, error)
	Update(ctx context.Context, id string, patch *model.TravelActivity) (*model.TravelActivity, error)
	Delete(ctx context.Context, id string, hard bool) error
	MarkCompleted(ctx context.Context, id string) (*model.TravelActivity, error)
}

// ExpenseService is the travel-expenses collaborator.
type ExpenseService interface {
	ListByPlan(ctx context.Context, planID string) ([]model.TravelExpense, error)
	GetByID(ctx context.Context, id string) (*model.TravelExpense, error)
	Create(ctx context.Context, input *model.TravelExpense) (*model.TravelExpense, error)
	Update(ctx context.Context, id string, patch *model.TravelExpense) (*model.TravelExpense, error)
	Delete(ctx context.Context, id string, hard bool) error
}

// DocumentService is the travel-documents collaborator.
type DocumentService interface {
	ListByPlan(ctx context.Context, planID string) ([]model.TravelDocument, error)
	GetByID(ctx context.Context, id string) (*model.TravelDocument, error)
	Create(ctx context.Context, input *model.TravelDocument) (*model.TravelDocument, error)
	Update(ctx context.Context, id string, patch *model.TravelDocument) (*model.TravelDocument, error)
	Delete(ctx context.Context, id string, hard bool) error
}

// ChecklistService is the travel-checklist collaborator.
type ChecklistService interface {
	ListByPlan(ctx context.Context, planID string) ([]model.ChecklistItem, error)
	GetByID(ctx context.Context, id string) (*model.ChecklistItem, error)
	Create(ctx context.Context, input *model.ChecklistItem) (*model.ChecklistItem, error)
	Update(ctx context.Context, id string, patch *model.ChecklistItem) (*model.ChecklistItem, error)
	Delete(ctx context.Context, id string, hard bool) error
	MarkCompleted(ctx context.Context, id string, completed bool) (*model.ChecklistItem, error)
}

// CategorySummary contains server-aggregated statistics for a category.
type CategorySummary struct {
	Count  int     `json:"cantidad"`
	Amount float64 `json:"monto"`
}

// MonthlySummary is the pre-aggregated report payload from the backend.
// The client renders these numbers as-is and only computes its own
// derived metrics over raw collections.
type MonthlySummary struct {
	ByCategory map[string]CategorySummary `json:"porCategoria"`
	Year       int                        `json:"anio"`
	Month      int                        `json:"mes"`
	Income     float64                    `json:"ingresos"`
	Expenses   float64                    `json:"gastos"`
	Net        float64                    `json:"neto"`
}

// ReportService is the reporting collaborator.
type ReportService interface {
	MonthlySummary(ctx context.Context, userID string, year int, month time.Month) (*MonthlySummary, error)
}

// HeaderBlock is the report header handed to an exporter.
type HeaderBlock struct {
	GeneratedAt time.Time
	Title       string
	Subtitle    string
	UserName    string
}

// TableSpec is one exported table: a header row plus body rows.
type TableSpec struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ReportDocument is the full payload handed to an exporter.
type ReportDocument struct {
	Header HeaderBlock
	Tables []TableSpec
}

// Exporter renders a report document to some destination and returns a
// human-readable locator for it (file path or URL).
type Exporter interface {
	Export(ctx context.Context, doc *ReportDocument) (string, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
