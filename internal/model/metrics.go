package model

import "github.com/shopspring/decimal"

// Status classifies the sign of a balance.
type Status int

const (
	Balanced Status = iota
	Surplus
	Deficit
)

func (s Status) String() string {
	switch s {
	case Surplus:
		return "Surplus"
	case Deficit:
		return "Deficit"
	default:
		return "Balanced"
	}
}

// VarianceKind says whether spending came in under or over budget.
type VarianceKind int

const (
	Savings VarianceKind = iota
	Excess
)

func (k VarianceKind) String() string {
	if k == Excess {
		return "Excess"
	}
	return "Savings"
}

// UserStats holds the dashboard figures for one profile.
type UserStats struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
	Budget  decimal.Decimal

	// Variance is Expense - Budget. VarianceAmount is its absolute value,
	// reported as savings or excess according to VarianceKind.
	Variance       decimal.Decimal
	VarianceKind   VarianceKind
	VarianceAmount decimal.Decimal

	Status           Status
	TransactionCount int
}

// AuditEntry is one row of the admin audit: a managed user's spending
// against their budget.
type AuditEntry struct {
	UserID     ID
	Name       string
	Expense    decimal.Decimal
	Budget     decimal.Decimal
	OverBudget bool
	Progress   float64 // Expense / Budget clamped to [0, 1]
}
