package ledger

import (
	"errors"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/nexus/internal/model"
)

// Rejections returned by mutations. A rejected mutation leaves the state
// untouched and is never persisted.
var (
	ErrEmptyName   = errors.New("profile name must not be empty")
	ErrInvalidRole = errors.New("role must be admin or user")
	ErrUnknownUser = errors.New("unknown profile")
)

// Seed holds the bootstrap admin profile and the defaults given to newly
// registered profiles.
type Seed struct {
	AdminID     model.ID
	AdminName   string
	AdminBudget decimal.Decimal
	AdminCats   []string

	UserBudget decimal.Decimal
	UserCats   []string
}

// DefaultSeed returns the stock seed profile.
func DefaultSeed() Seed {
	return Seed{
		AdminID:     "1",
		AdminName:   "Admin Nexus",
		AdminBudget: decimal.NewFromInt(40000),
		AdminCats:   []string{"Arriendo", "Servicios", "Nómina", "Ventas", "Donaciones"},
		UserBudget:  decimal.NewFromInt(10000),
		UserCats:    []string{"Arriendo", "Servicios", "Nómina", "Ventas", "Donaciones", "Publicidad"},
	}
}

// Bootstrap returns the initial state: the seed admin, active, with no
// transactions.
func Bootstrap(seed Seed) model.AppState {
	return model.AppState{
		Users: []model.User{{
			ID:     seed.AdminID,
			Name:   seed.AdminName,
			Role:   model.RoleAdmin,
			Budget: seed.AdminBudget,
			Cats:   slices.Clone(seed.AdminCats),
		}},
		Transactions: []model.Transaction{},
		ActiveUserID: seed.AdminID,
	}
}

// TxFields carries the transaction form. Nil members are "not provided":
// an edit leaves them unchanged and a new transaction gets the zero value
// (expense for Type).
type TxFields struct {
	Desc     *string
	Amount   *decimal.Decimal
	Type     *model.TxType
	Category *string
	Date     *string
}

func (f TxFields) applyTo(t *model.Transaction) {
	if f.Desc != nil {
		t.Desc = *f.Desc
	}
	if f.Amount != nil {
		t.Amount = *f.Amount
	}
	if f.Type != nil {
		t.Type = *f.Type
	}
	if f.Category != nil {
		t.Category = *f.Category
	}
	if f.Date != nil {
		t.Date = *f.Date
	}
}

// UpsertTransaction overwrites the provided fields of the transaction editID
// in place, keeping its id, owner and position. When editID is empty or
// unknown it appends a new transaction with id newID owned by the active
// profile. Amounts, dates and categories are stored as given.
func UpsertTransaction(s model.AppState, editID model.ID, f TxFields, newID model.ID) (model.AppState, model.Transaction) {
	out := s.Clone()

	if editID != "" {
		if idx := out.TransactionIndex(editID); idx >= 0 {
			f.applyTo(&out.Transactions[idx])
			return out, out.Transactions[idx]
		}
	}

	t := model.Transaction{
		ID:     newID,
		Type:   model.Expense,
		UserID: out.ActiveUserID,
	}
	f.applyTo(&t)
	out.Transactions = append(out.Transactions, t)
	return out, t
}

// DeleteTransaction removes the transaction id. found is false when there was
// nothing to remove.
func DeleteTransaction(s model.AppState, id model.ID) (out model.AppState, found bool) {
	idx := s.TransactionIndex(id)
	if idx < 0 {
		return s, false
	}
	out = s.Clone()
	out.Transactions = slices.Delete(out.Transactions, idx, idx+1)
	return out, true
}

// RegisterUser appends a profile with the seed's default budget and
// categories.
func RegisterUser(s model.AppState, name string, role model.Role, id model.ID, seed Seed) (model.AppState, model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s, model.User{}, ErrEmptyName
	}
	if !role.Valid() {
		return s, model.User{}, ErrInvalidRole
	}

	u := model.User{
		ID:     id,
		Name:   name,
		Role:   role,
		Budget: seed.UserBudget,
		Cats:   slices.Clone(seed.UserCats),
	}
	out := s.Clone()
	out.Users = append(out.Users, u)
	return out, u, nil
}

// UpdateBudget sets the active profile's budget from raw text. Text that does
// not start with a number, and negative numbers, become zero.
func UpdateBudget(s model.AppState, raw string) (model.AppState, model.User, error) {
	idx := s.UserIndex(s.ActiveUserID)
	if idx < 0 {
		return s, model.User{}, ErrUnknownUser
	}

	budget := ParseLenient(raw)
	if budget.IsNegative() {
		budget = decimal.Zero
	}

	out := s.Clone()
	out.Users[idx].Budget = budget
	return out, out.Users[idx], nil
}

// SetActiveUser switches the active profile.
func SetActiveUser(s model.AppState, id model.ID) (model.AppState, error) {
	if s.UserIndex(id) < 0 {
		return s, ErrUnknownUser
	}
	out := s.Clone()
	out.ActiveUserID = id
	return out, nil
}
