package tui

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/nexus/internal/ledger"
	"github.com/theirongolddev/nexus/internal/model"
	"github.com/theirongolddev/nexus/internal/pipeline"
)

type formKind int

const (
	formNone formKind = iota
	formTx
	formFilter
	formProfile
	formBudget
	formDelete
)

// formValues backs every form field. It lives on the heap so the huh fields
// keep pointing at it while the App value is copied through Update.
type formValues struct {
	// transaction
	desc     string
	amount   string
	txType   string
	category string
	date     string
	editing  bool

	// filter
	search string
	from   string
	to     string

	// profile
	name string
	role string

	budget string

	// delete
	confirm  bool
	deleteID model.ID
}

func newTxForm(v *formValues, cats []string) *huh.Form {
	title := "New transaction"
	if v.editing {
		title = "Edit transaction"
	}

	var category huh.Field
	if len(cats) == 0 {
		category = huh.NewInput().
			Title("Category").
			Value(&v.category)
	} else {
		opts := slices.Clone(cats)
		if v.category != "" && !slices.Contains(opts, v.category) {
			opts = append(opts, v.category)
		}
		if v.category == "" {
			v.category = opts[0]
		}
		category = huh.NewSelect[string]().
			Title("Category").
			Options(huh.NewOptions(opts...)...).
			Value(&v.category)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Description").
				Value(&v.desc),
			huh.NewInput().
				Title("Amount").
				Value(&v.amount).
				Validate(validAmount),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Expense", string(model.Expense)),
					huh.NewOption("Income", string(model.Income)),
				).
				Value(&v.txType),
			category,
			huh.NewInput().
				Title("Date").
				Placeholder(time.DateOnly).
				Value(&v.date).
				Validate(validDate),
		),
	).WithShowHelp(true)
}

func newFilterForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search").
				Description("Matches description or category").
				Value(&v.search),
			huh.NewInput().
				Title("From").
				Placeholder(time.DateOnly).
				Value(&v.from).
				Validate(optionalDate),
			huh.NewInput().
				Title("To").
				Placeholder(time.DateOnly).
				Value(&v.to).
				Validate(optionalDate),
		),
	)
}

func newProfileForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Profile name").
				Value(&v.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return ledger.ErrEmptyName
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("User", string(model.RoleUser)),
					huh.NewOption("Admin", string(model.RoleAdmin)),
				).
				Value(&v.role),
		),
	)
}

func newBudgetForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly budget").
				Value(&v.budget),
		),
	)
}

func newDeleteForm(v *formValues, desc string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete " + quoteOrBlank(desc) + "?").
				Affirmative("Delete").
				Negative("Keep").
				Value(&v.confirm),
		),
	)
}

// filter returns the pipeline filter typed into the filter form. The search
// text is matched as typed, spaces included.
func (v *formValues) filter() pipeline.Filter {
	return pipeline.Filter{
		Text: v.search,
		From: strings.TrimSpace(v.from),
		To:   strings.TrimSpace(v.to),
	}
}

// txFields converts the transaction form into ledger fields. The form
// validators have already checked amount and date.
func (v *formValues) txFields() ledger.TxFields {
	desc := strings.TrimSpace(v.desc)
	amt, _ := ledger.ParseAmount(v.amount)
	typ := model.TxType(v.txType)
	cat := strings.TrimSpace(v.category)
	date := strings.TrimSpace(v.date)
	return ledger.TxFields{
		Desc:     &desc,
		Amount:   &amt,
		Type:     &typ,
		Category: &cat,
		Date:     &date,
	}
}

func validAmount(s string) error {
	if _, err := ledger.ParseAmount(s); err != nil {
		return errors.New("enter a number")
	}
	return nil
}

func validDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func optionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validDate(s)
}

func quoteOrBlank(s string) string {
	if s == "" {
		return "this transaction"
	}
	return `"` + s + `"`
}
