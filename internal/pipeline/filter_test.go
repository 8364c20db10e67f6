package pipeline

import (
	"strings"
	"testing"

	"github.com/theirongolddev/nexus/internal/model"
)

func sampleTxs() []model.Transaction {
	return []model.Transaction{
		{ID: "1", Desc: "Renta enero", Category: "Arriendo", Date: "2024-01-05", Type: model.Expense, Amount: dec("500")},
		{ID: "2", Desc: "Luz", Category: "Servicios", Date: "2024-01-20", Type: model.Expense, Amount: dec("40")},
		{ID: "3", Desc: "Venta web", Category: "Ventas", Date: "2024-02-01", Type: model.Income, Amount: dec("900")},
		{ID: "4", Desc: "", Category: "Donaciones", Date: "2023-12-31", Type: model.Expense, Amount: dec("10")},
		{ID: "5", Desc: "RENTA febrero", Category: "Arriendo", Date: "2024-02-05", Type: model.Expense, Amount: dec("500")},
	}
}

func ids(txs []model.Transaction) string {
	parts := make([]string, len(txs))
	for i, t := range txs {
		parts[i] = string(t.ID)
	}
	return strings.Join(parts, ",")
}

func TestFilterTransactions(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{"unconstrained", Filter{}, "1,2,3,4,5"},
		{"desc case-insensitive", Filter{Text: "renta"}, "1,5"},
		{"category match", Filter{Text: "servi"}, "2"},
		{"upper needle", Filter{Text: "VENTA"}, "3"},
		{"from inclusive", Filter{From: "2024-02-01"}, "3,5"},
		{"to inclusive", Filter{To: "2024-01-05"}, "1,4"},
		{"range", Filter{From: "2024-01-05", To: "2024-02-01"}, "1,2,3"},
		{"text and range", Filter{Text: "arriendo", From: "2024-02-01"}, "5"},
		{"no match", Filter{Text: "zzz"}, ""},
		{"empty desc still matches category", Filter{Text: "donac"}, "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTransactions(sampleTxs(), tt.filter)
			if ids(got) != tt.want {
				t.Fatalf("FilterTransactions(%+v) = [%s], want [%s]", tt.filter, ids(got), tt.want)
			}
			for _, tx := range got {
				if !tt.filter.Match(tx) {
					t.Errorf("result %s does not satisfy the filter", tx.ID)
				}
			}
		})
	}
}

func TestFilterTransactions_RentExcludedByFrom(t *testing.T) {
	txs := []model.Transaction{
		{ID: "r", Desc: "Renta", Amount: dec("500"), Type: model.Expense, Category: "Arriendo", Date: "2024-01-05", UserID: "ana"},
	}
	if got := FilterTransactions(txs, Filter{From: "2024-02-01"}); len(got) != 0 {
		t.Fatalf("from 2024-02-01 kept %d transactions, want 0", len(got))
	}
}

func TestNewestFirst(t *testing.T) {
	txs := sampleTxs()
	got := NewestFirst(txs)
	if ids(got) != "5,4,3,2,1" {
		t.Fatalf("NewestFirst = [%s], want [5,4,3,2,1]", ids(got))
	}
	if txs[0].ID != "1" {
		t.Error("NewestFirst mutated its input")
	}
}
