package pipeline

import (
	"slices"
	"strings"

	"github.com/theirongolddev/nexus/internal/model"
)

// Filter narrows a transaction list. Zero values leave that side
// unconstrained.
type Filter struct {
	Text string // case-insensitive substring of desc or category
	From string // inclusive YYYY-MM-DD lower bound
	To   string // inclusive YYYY-MM-DD upper bound
}

// IsZero reports whether f constrains nothing.
func (f Filter) IsZero() bool {
	return f.Text == "" && f.From == "" && f.To == ""
}

// Match reports whether t passes the filter. Dates compare lexically, which
// orders correctly because they are fixed-width and zero-padded.
func (f Filter) Match(t model.Transaction) bool {
	if f.Text != "" {
		needle := strings.ToLower(f.Text)
		if !strings.Contains(strings.ToLower(t.Desc), needle) &&
			!strings.Contains(strings.ToLower(t.Category), needle) {
			return false
		}
	}
	if f.From != "" && t.Date < f.From {
		return false
	}
	if f.To != "" && t.Date > f.To {
		return false
	}
	return true
}

// FilterTransactions returns the transactions matching f in their original
// order. An unconstrained filter returns txs itself.
func FilterTransactions(txs []model.Transaction, f Filter) []model.Transaction {
	if f.IsZero() {
		return txs
	}
	var result []model.Transaction
	for _, t := range txs {
		if f.Match(t) {
			result = append(result, t)
		}
	}
	return result
}

// NewestFirst returns a reversed copy of txs: most recently entered first.
// It does not sort by date.
func NewestFirst(txs []model.Transaction) []model.Transaction {
	out := slices.Clone(txs)
	slices.Reverse(out)
	return out
}
