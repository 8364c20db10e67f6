// Package model defines the domain types for nexus profiles, transactions and
// the persisted application state.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The persisted document stores amounts and budgets as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ID identifies a user or a transaction.
type ID string

// UnmarshalJSON accepts both strings and numbers. Documents written by older
// versions of the app use numeric millisecond timestamps as ids.
func (id *ID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("decoding id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Role is the access level of a profile.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// TxType distinguishes income from expenses.
type TxType string

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TxType) Valid() bool {
	return t == Income || t == Expense
}

// User is a budget profile.
type User struct {
	ID     ID              `json:"id"`
	Name   string          `json:"name"`
	Role   Role            `json:"role"`
	Budget decimal.Decimal `json:"budget"`
	Cats   []string        `json:"cats"`
}

// IsAdmin reports whether the user may view the audit dashboard.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasCategory reports whether cat is one of the user's category labels.
func (u User) HasCategory(cat string) bool {
	return slices.Contains(u.Cats, cat)
}

// Transaction is a single income or expense entry owned by a user.
type Transaction struct {
	ID       ID              `json:"id"`
	Desc     string          `json:"desc"`
	Amount   decimal.Decimal `json:"amount"`
	Type     TxType          `json:"type"`
	Category string          `json:"category"`
	Date     string          `json:"date"` // YYYY-MM-DD
	UserID   ID              `json:"userId"`
}

// AppState is the whole persisted document.
type AppState struct {
	Users        []User        `json:"users"`
	Transactions []Transaction `json:"transactions"`
	ActiveUserID ID            `json:"activeUserId"`
}

// User returns the user with the given id.
func (s AppState) User(id ID) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// ActiveUser returns the currently selected profile.
func (s AppState) ActiveUser() (User, bool) {
	return s.User(s.ActiveUserID)
}

// TransactionIndex returns the position of the transaction with the given id,
// or -1.
func (s AppState) TransactionIndex(id ID) int {
	return slices.IndexFunc(s.Transactions, func(t Transaction) bool {
		return t.ID == id
	})
}

// UserIndex returns the position of the user with the given id, or -1.
func (s AppState) UserIndex(id ID) int {
	return slices.IndexFunc(s.Users, func(u User) bool {
		return u.ID == id
	})
}

// Clone returns a deep copy of s so a mutation can be staged without touching
// the original.
func (s AppState) Clone() AppState {
	out := AppState{
		Users:        make([]User, len(s.Users)),
		Transactions: slices.Clone(s.Transactions),
		ActiveUserID: s.ActiveUserID,
	}
	for i, u := range s.Users {
		u.Cats = slices.Clone(u.Cats)
		out.Users[i] = u
	}
	if out.Transactions == nil {
		out.Transactions = []Transaction{}
	}
	return out
}

// Validate checks the structural invariants of the document. Transactions
// that reference unknown users are tolerated.
func (s AppState) Validate() error {
	if len(s.Users) == 0 {
		return errors.New("state has no users")
	}

	userIDs := make(map[ID]struct{}, len(s.Users))
	for i, u := range s.Users {
		if u.ID == "" {
			return fmt.Errorf("user #%d has no id", i)
		}
		if _, dup := userIDs[u.ID]; dup {
			return fmt.Errorf("duplicate user id %q", u.ID)
		}
		userIDs[u.ID] = struct{}{}

		if strings.TrimSpace(u.Name) == "" {
			return fmt.Errorf("user %q has an empty name", u.ID)
		}
		if !u.Role.Valid() {
			return fmt.Errorf("user %q has unknown role %q", u.ID, u.Role)
		}
		if u.Budget.IsNegative() {
			return fmt.Errorf("user %q has a negative budget", u.ID)
		}
		if len(u.Cats) == 0 {
			return fmt.Errorf("user %q has no categories", u.ID)
		}
	}

	if _, ok := userIDs[s.ActiveUserID]; !ok {
		return fmt.Errorf("active user %q does not exist", s.ActiveUserID)
	}

	txIDs := make(map[ID]struct{}, len(s.Transactions))
	for i, t := range s.Transactions {
		if t.ID == "" {
			return fmt.Errorf("transaction #%d has no id", i)
		}
		if _, dup := txIDs[t.ID]; dup {
			return fmt.Errorf("duplicate transaction id %q", t.ID)
		}
		txIDs[t.ID] = struct{}{}

		if !t.Type.Valid() {
			return fmt.Errorf("transaction %q has unknown type %q", t.ID, t.Type)
		}
		if t.UserID == "" {
			return fmt.Errorf("transaction %q has no owner", t.ID)
		}
	}

	return nil
}
