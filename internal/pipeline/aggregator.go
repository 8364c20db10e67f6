// Package pipeline computes per-profile aggregates and filters transaction
// sets. Everything here is a pure function of its inputs.
package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/nexus/internal/model"
)

// TransactionsFor returns the transactions owned by userID, in ledger order.
func TransactionsFor(txs []model.Transaction, userID model.ID) []model.Transaction {
	var result []model.Transaction
	for _, t := range txs {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	return result
}

// Totals sums income and expenses over txs. Callers pass a single user's
// transactions.
func Totals(txs []model.Transaction) (income, expense decimal.Decimal) {
	for _, t := range txs {
		switch t.Type {
		case model.Income:
			income = income.Add(t.Amount)
		case model.Expense:
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense
}

// ExpenseTotal sums the expenses of userID across the whole ledger.
func ExpenseTotal(txs []model.Transaction, userID model.ID) decimal.Decimal {
	var total decimal.Decimal
	for _, t := range txs {
		if t.UserID == userID && t.Type == model.Expense {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// Classify maps a balance to Surplus, Deficit or Balanced. Zero is compared
// exactly.
func Classify(balance decimal.Decimal) model.Status {
	switch balance.Sign() {
	case 1:
		return model.Surplus
	case -1:
		return model.Deficit
	default:
		return model.Balanced
	}
}

// Variance returns expense - budget together with how it should be reported:
// savings of |variance| when it is zero or negative, excess otherwise.
func Variance(expense, budget decimal.Decimal) (variance decimal.Decimal, kind model.VarianceKind, amount decimal.Decimal) {
	variance = expense.Sub(budget)
	if variance.Sign() <= 0 {
		return variance, model.Savings, variance.Abs()
	}
	return variance, model.Excess, variance
}

// AggregateUser computes the dashboard figures for user from the full
// transaction list.
func AggregateUser(user model.User, txs []model.Transaction) model.UserStats {
	own := TransactionsFor(txs, user.ID)
	income, expense := Totals(own)
	balance := income.Sub(expense)
	variance, kind, amount := Variance(expense, user.Budget)

	return model.UserStats{
		Income:           income,
		Expense:          expense,
		Balance:          balance,
		Budget:           user.Budget,
		Variance:         variance,
		VarianceKind:     kind,
		VarianceAmount:   amount,
		Status:           Classify(balance),
		TransactionCount: len(own),
	}
}

// ProgressFraction returns expense/budget clamped to [0, 1]. A zero budget
// yields 1 as soon as anything was spent and 0 otherwise, so no division by
// zero happens.
func ProgressFraction(expense, budget decimal.Decimal) float64 {
	if expense.Sign() <= 0 {
		return 0
	}
	if budget.Sign() <= 0 {
		return 1
	}
	f, _ := expense.Div(budget).Float64()
	if f > 1 {
		return 1
	}
	return f
}

// Audit returns one entry per managed (role user) profile, in profile order.
func Audit(state model.AppState) []model.AuditEntry {
	var entries []model.AuditEntry
	for _, u := range state.Users {
		if u.Role != model.RoleUser {
			continue
		}
		expense := ExpenseTotal(state.Transactions, u.ID)
		entries = append(entries, model.AuditEntry{
			UserID:     u.ID,
			Name:       u.Name,
			Expense:    expense,
			Budget:     u.Budget,
			OverBudget: expense.GreaterThan(u.Budget),
			Progress:   ProgressFraction(expense, u.Budget),
		})
	}
	return entries
}

// CategoryTotals sums amounts of the given type per category, keyed by
// category label. Categories are returned in order of first appearance.
func CategoryTotals(txs []model.Transaction, typ model.TxType) ([]string, map[string]decimal.Decimal) {
	var order []string
	totals := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != typ {
			continue
		}
		cur, seen := totals[t.Category]
		if !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = cur.Add(t.Amount)
	}
	return order, totals
}

// MonthTotal is the sum of one calendar month.
type MonthTotal struct {
	Month  string // YYYY-MM
	Amount decimal.Decimal
}

// MonthlyTotals sums amounts of the given type per month, oldest first. The
// month is the YYYY-MM prefix of the date; transactions without one are
// skipped.
func MonthlyTotals(txs []model.Transaction, typ model.TxType) []MonthTotal {
	totals := make(map[string]decimal.Decimal)
	for _, t := range txs {
		if t.Type != typ || len(t.Date) < 7 {
			continue
		}
		m := t.Date[:7]
		totals[m] = totals[m].Add(t.Amount)
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthTotal, len(months))
	for i, m := range months {
		out[i] = MonthTotal{Month: m, Amount: totals[m]}
	}
	return out
}
