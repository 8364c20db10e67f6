// Package view projects the application state into the figures each screen
// renders. It is shared by the command line and the TUI and has no I/O.
package view

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/nexus/internal/model"
	"github.com/theirongolddev/nexus/internal/pipeline"
)

// ProfileOption is one entry of the profile selector.
type ProfileOption struct {
	ID     model.ID
	Name   string
	Role   model.Role
	Active bool
}

// CategoryTotal is the sum of one category's amounts.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// UserView is the dashboard of a single profile.
type UserView struct {
	User  model.User
	Stats model.UserStats

	Filter       pipeline.Filter
	Transactions []model.Transaction // filtered, most recently entered first
	Total        int                 // transactions owned before filtering
	Shown        int

	ExpenseByCategory []CategoryTotal
	ExpenseByMonth    []pipeline.MonthTotal // at most the last twelve months
	Profiles          []ProfileOption
}

// Filtered reports whether the filter hid anything.
func (v UserView) Filtered() bool {
	return v.Shown != v.Total
}

// AuditView is the admin dashboard.
type AuditView struct {
	Admin      model.User
	Entries    []model.AuditEntry
	Managed    int
	OverBudget int
	Profiles   []ProfileOption
}

// Dashboard is whichever view the active profile gets.
type Dashboard struct {
	IsAdmin bool
	Audit   AuditView
	User    UserView
}

// ComputeUserView builds the dashboard for userID. Stats always cover all of
// the profile's transactions; the filter only narrows the listing. ok is
// false when userID is unknown.
func ComputeUserView(state model.AppState, userID model.ID, f pipeline.Filter) (UserView, bool) {
	u, ok := state.User(userID)
	if !ok {
		return UserView{}, false
	}

	own := pipeline.TransactionsFor(state.Transactions, u.ID)
	shown := pipeline.NewestFirst(pipeline.FilterTransactions(own, f))

	return UserView{
		User:              u,
		Stats:             pipeline.AggregateUser(u, state.Transactions),
		Filter:            f,
		Transactions:      shown,
		Total:             len(own),
		Shown:             len(shown),
		ExpenseByCategory: expenseByCategory(own),
		ExpenseByMonth:    lastMonths(pipeline.MonthlyTotals(own, model.Expense), 12),
		Profiles:          Profiles(state),
	}, true
}

// ComputeAdminAudit builds the admin dashboard.
func ComputeAdminAudit(state model.AppState) AuditView {
	entries := pipeline.Audit(state)
	over := 0
	for _, e := range entries {
		if e.OverBudget {
			over++
		}
	}
	admin, _ := state.ActiveUser()
	return AuditView{
		Admin:      admin,
		Entries:    entries,
		Managed:    len(entries),
		OverBudget: over,
		Profiles:   Profiles(state),
	}
}

// ComputeDashboard picks the audit for admins and the user view otherwise.
// ok is false when the active profile does not resolve.
func ComputeDashboard(state model.AppState, f pipeline.Filter) (Dashboard, bool) {
	u, ok := state.ActiveUser()
	if !ok {
		return Dashboard{}, false
	}
	if u.IsAdmin() {
		return Dashboard{IsAdmin: true, Audit: ComputeAdminAudit(state)}, true
	}
	uv, _ := ComputeUserView(state, u.ID, f)
	return Dashboard{User: uv}, true
}

// Profiles lists every profile in order, marking the active one.
func Profiles(state model.AppState) []ProfileOption {
	out := make([]ProfileOption, len(state.Users))
	for i, u := range state.Users {
		out[i] = ProfileOption{
			ID:     u.ID,
			Name:   u.Name,
			Role:   u.Role,
			Active: u.ID == state.ActiveUserID,
		}
	}
	return out
}

func expenseByCategory(txs []model.Transaction) []CategoryTotal {
	order, totals := pipeline.CategoryTotals(txs, model.Expense)
	out := make([]CategoryTotal, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryTotal{Category: c, Amount: totals[c]})
	}
	slices.SortStableFunc(out, func(a, b CategoryTotal) int {
		return b.Amount.Cmp(a.Amount)
	})
	return out
}

func lastMonths(months []pipeline.MonthTotal, n int) []pipeline.MonthTotal {
	if len(months) > n {
		return months[len(months)-n:]
	}
	return months
}
