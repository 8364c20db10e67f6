package ledger

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/nexus/internal/model"
	"github.com/theirongolddev/nexus/internal/store"
)

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func openTest(t *testing.T, bs BlobStore, opts ...Option) *Ledger {
	t.Helper()
	opts = append([]Option{WithIDSource(&Sequence{Prefix: "id"})}, opts...)
	l, err := Open(bs, opts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return l
}

func TestOpen_BootstrapsAndSaves(t *testing.T) {
	mem := store.NewMemory()
	l := openTest(t, mem)

	s := l.State()
	if len(s.Users) != 1 || len(s.Transactions) != 0 {
		t.Fatalf("bootstrap has %d users, %d transactions", len(s.Users), len(s.Transactions))
	}
	admin := s.Users[0]
	if admin.ID != "1" || admin.Name != "Admin Nexus" || admin.Role != model.RoleAdmin {
		t.Errorf("admin = %+v", admin)
	}
	if !admin.Budget.Equal(dec("40000")) {
		t.Errorf("admin budget = %s, want 40000", admin.Budget)
	}
	if s.ActiveUserID != "1" {
		t.Errorf("active = %q, want 1", s.ActiveUserID)
	}

	if _, ok, _ := mem.Get(DefaultKey); !ok {
		t.Error("bootstrap state was not saved")
	}
}

func TestOpen_ReloadsSavedState(t *testing.T) {
	mem := store.NewMemory()
	l := openTest(t, mem)
	if _, err := l.RegisterUser("Ana", model.RoleUser); err != nil {
		t.Fatal(err)
	}

	again := openTest(t, mem)
	if got := len(again.State().Users); got != 2 {
		t.Fatalf("reloaded %d users, want 2", got)
	}
}

func TestOpen_CorruptDocument(t *testing.T) {
	mem := store.NewMemory()
	if err := mem.Put(DefaultKey, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(mem); err == nil {
		t.Fatal("expected error for corrupt document")
	}
	data, _, _ := mem.Get(DefaultKey)
	if string(data) != "{not json" {
		t.Error("corrupt document was overwritten")
	}
}

func TestOpen_StoreReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	if _, err := Open(failingGet{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("Open error = %v, want wrapping %v", err, boom)
	}
}

type failingGet struct{ err error }

func (f failingGet) Get(string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingGet) Put(string, []byte) error         { return nil }

func TestOpen_MigratesLegacyKey(t *testing.T) {
	mem := store.NewMemory()
	legacy := `{"users":[{"id":1700000000000,"name":"Old","role":"admin","budget":500,"cats":["Ventas"]}],
		"transactions":[{"id":1700000000001,"desc":"x","amount":12.5,"type":"income","category":"Ventas","date":"2024-01-01","userId":1700000000000}],
		"activeUserId":1700000000000}`
	if err := mem.Put("OLD_KEY", []byte(legacy)); err != nil {
		t.Fatal(err)
	}

	l := openTest(t, mem, WithLegacyKeys("MISSING", "OLD_KEY"))
	s := l.State()
	if s.ActiveUserID != "1700000000000" || s.Users[0].Name != "Old" {
		t.Fatalf("migrated state = %+v", s)
	}
	if !s.Transactions[0].Amount.Equal(dec("12.5")) {
		t.Errorf("amount = %s, want 12.5", s.Transactions[0].Amount)
	}
	if _, ok, _ := mem.Get(DefaultKey); !ok {
		t.Error("migrated state was not written under the current key")
	}
}

func TestOpen_NegativeBudgetReadsAsZero(t *testing.T) {
	mem := store.NewMemory()
	doc := `{"users":[{"id":1,"name":"Admin Nexus","role":"admin","budget":-5,"cats":["Arriendo"]}],
		"transactions":[],"activeUserId":1}`
	if err := mem.Put(DefaultKey, []byte(doc)); err != nil {
		t.Fatal(err)
	}

	l := openTest(t, mem)
	admin, ok := l.State().ActiveUser()
	if !ok {
		t.Fatal("no active user")
	}
	if !admin.Budget.IsZero() {
		t.Errorf("budget = %s, want 0", admin.Budget)
	}
}

func TestRegisterUser(t *testing.T) {
	l := openTest(t, store.NewMemory())

	u, err := l.RegisterUser("Ana", model.RoleUser)
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if u.Name != "Ana" || u.Role != model.RoleUser {
		t.Errorf("user = %+v", u)
	}
	if !u.Budget.Equal(dec("10000")) {
		t.Errorf("budget = %s, want 10000", u.Budget)
	}
	want := []string{"Arriendo", "Servicios", "Nómina", "Ventas", "Donaciones", "Publicidad"}
	if len(u.Cats) != len(want) {
		t.Fatalf("cats = %v, want %v", u.Cats, want)
	}
	for i := range want {
		if u.Cats[i] != want[i] {
			t.Errorf("cats[%d] = %q, want %q", i, u.Cats[i], want[i])
		}
	}

	s := l.State()
	if len(s.Users) != 2 || s.Users[1].ID != u.ID {
		t.Errorf("users = %+v", s.Users)
	}
	if s.ActiveUserID != "1" {
		t.Error("registering a profile must not switch the active profile")
	}
}

func TestRegisterUser_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		role    model.Role
		wantErr error
	}{
		{"empty", "", model.RoleUser, ErrEmptyName},
		{"whitespace", "   \t", model.RoleUser, ErrEmptyName},
		{"bad role", "Ana", model.Role("owner"), ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := store.NewMemory()
			l := openTest(t, mem)
			before, _, _ := mem.Get(DefaultKey)

			_, err := l.RegisterUser(tt.input, tt.role)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got := len(l.State().Users); got != 1 {
				t.Errorf("users = %d, want 1", got)
			}
			after, _, _ := mem.Get(DefaultKey)
			if string(before) != string(after) {
				t.Error("rejected registration was persisted")
			}
		})
	}
}

func TestUpsertTransaction_AddAndEdit(t *testing.T) {
	l := openTest(t, store.NewMemory())
	ana, _ := l.RegisterUser("Ana", model.RoleUser)
	if err := l.SetActiveUser(ana.ID); err != nil {
		t.Fatal(err)
	}

	tx, err := l.UpsertTransaction(TxFields{
		Desc:     ptr("Renta"),
		Amount:   ptr(dec("500")),
		Type:     ptr(model.Expense),
		Category: ptr("Arriendo"),
		Date:     ptr("2024-01-05"),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if tx.UserID != ana.ID {
		t.Errorf("owner = %q, want %q", tx.UserID, ana.ID)
	}

	if _, ok := l.BeginEdit(tx.ID); !ok {
		t.Fatal("BeginEdit failed")
	}
	if id, ok := l.Editing(); !ok || id != tx.ID {
		t.Fatalf("Editing = %q, %v", id, ok)
	}

	edited, err := l.UpsertTransaction(TxFields{Amount: ptr(dec("550"))})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.ID != tx.ID || edited.Desc != "Renta" || !edited.Amount.Equal(dec("550")) {
		t.Errorf("edited = %+v", edited)
	}
	if _, ok := l.Editing(); ok {
		t.Error("edit session still open after save")
	}

	s := l.State()
	if len(s.Transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(s.Transactions))
	}
}

func TestUpsertTransaction_EditKeepsOwnerAndPosition(t *testing.T) {
	l := openTest(t, store.NewMemory())
	ana, _ := l.RegisterUser("Ana", model.RoleUser)
	_ = l.SetActiveUser(ana.ID)
	first, _ := l.UpsertTransaction(TxFields{Desc: ptr("a")})
	_, _ = l.UpsertTransaction(TxFields{Desc: ptr("b")})

	// Switch away and edit by id: the owner stays Ana.
	_ = l.SetActiveUser("1")
	if _, err := l.UpsertTransactionID(first.ID, TxFields{Desc: ptr("a2")}); err != nil {
		t.Fatal(err)
	}

	s := l.State()
	if s.Transactions[0].Desc != "a2" || s.Transactions[0].UserID != ana.ID {
		t.Errorf("transactions[0] = %+v", s.Transactions[0])
	}
	if s.Transactions[1].Desc != "b" {
		t.Errorf("transactions[1] = %+v", s.Transactions[1])
	}
}

func TestUpsertTransaction_DefaultsToExpense(t *testing.T) {
	l := openTest(t, store.NewMemory())
	tx, err := l.UpsertTransaction(TxFields{Desc: ptr("x")})
	if err != nil {
		t.Fatal(err)
	}
	if tx.Type != model.Expense {
		t.Errorf("type = %q, want expense", tx.Type)
	}
	if !tx.Amount.IsZero() {
		t.Errorf("amount = %s, want 0", tx.Amount)
	}
}

func TestUpsertTransaction_UnknownEditIDAppends(t *testing.T) {
	l := openTest(t, store.NewMemory())
	tx, err := l.UpsertTransactionID("nope", TxFields{Desc: ptr("x")})
	if err != nil {
		t.Fatal(err)
	}
	if tx.ID == "nope" || tx.ID == "" {
		t.Errorf("id = %q, want a fresh id", tx.ID)
	}
	if len(l.State().Transactions) != 1 {
		t.Error("unknown edit id did not append")
	}
}

func TestBeginEdit_OtherProfile(t *testing.T) {
	l := openTest(t, store.NewMemory())
	tx, _ := l.UpsertTransaction(TxFields{Desc: ptr("admin's")})
	ana, _ := l.RegisterUser("Ana", model.RoleUser)
	_ = l.SetActiveUser(ana.ID)

	if _, ok := l.BeginEdit(tx.ID); ok {
		t.Error("BeginEdit opened a transaction owned by another profile")
	}
	if _, ok := l.BeginEdit("missing"); ok {
		t.Error("BeginEdit opened a missing transaction")
	}
}

func TestCancelEdit(t *testing.T) {
	l := openTest(t, store.NewMemory())
	tx, _ := l.UpsertTransaction(TxFields{Desc: ptr("x")})
	l.BeginEdit(tx.ID)
	l.CancelEdit()

	if _, err := l.UpsertTransaction(TxFields{Desc: ptr("y")}); err != nil {
		t.Fatal(err)
	}
	if n := len(l.State().Transactions); n != 2 {
		t.Errorf("transactions = %d, want 2 after cancelled edit", n)
	}
}

func TestDeleteTransaction(t *testing.T) {
	mem := store.NewMemory()
	l := openTest(t, mem)
	a, _ := l.UpsertTransaction(TxFields{Desc: ptr("a")})
	b, _ := l.UpsertTransaction(TxFields{Desc: ptr("b")})

	found, err := l.DeleteTransaction(a.ID)
	if err != nil || !found {
		t.Fatalf("DeleteTransaction = %v, %v", found, err)
	}
	s := l.State()
	if len(s.Transactions) != 1 || s.Transactions[0].ID != b.ID {
		t.Errorf("transactions = %+v", s.Transactions)
	}

	mem.FailPut = errors.New("should not write")
	found, err = l.DeleteTransaction("missing")
	if err != nil || found {
		t.Errorf("delete missing = %v, %v; want false, nil", found, err)
	}
}

func TestUpdateBudget(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"0", "0"},
		{"1500", "1500"},
		{" 2500.75 ", "2500.75"},
		{"12abc", "12"},
		{"abc", "0"},
		{"", "0"},
		{"-5", "0"},
		{"1e3", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			l := openTest(t, store.NewMemory())
			got, err := l.UpdateBudget(tt.raw)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("UpdateBudget(%q) = %s, want %s", tt.raw, got, tt.want)
			}
			admin, _ := l.State().ActiveUser()
			if !admin.Budget.Equal(dec(tt.want)) {
				t.Errorf("stored budget = %s, want %s", admin.Budget, tt.want)
			}
		})
	}
}

func TestSetActiveUser(t *testing.T) {
	mem := store.NewMemory()
	l := openTest(t, mem)
	ana, _ := l.RegisterUser("Ana", model.RoleUser)

	if err := l.SetActiveUser(ana.ID); err != nil {
		t.Fatal(err)
	}
	once, _, _ := mem.Get(DefaultKey)

	// Re-selecting is idempotent on the saved document.
	if err := l.SetActiveUser(ana.ID); err != nil {
		t.Fatal(err)
	}
	twice, _, _ := mem.Get(DefaultKey)
	if string(once) != string(twice) {
		t.Error("re-selecting the active profile changed the document")
	}

	if err := l.SetActiveUser("ghost"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("unknown id err = %v, want ErrUnknownUser", err)
	}
	if l.State().ActiveUserID != ana.ID {
		t.Error("rejected switch changed the active profile")
	}
}

func TestSetActiveUser_ClearsEdit(t *testing.T) {
	l := openTest(t, store.NewMemory())
	tx, _ := l.UpsertTransaction(TxFields{Desc: ptr("x")})
	l.BeginEdit(tx.ID)
	_ = l.SetActiveUser("1")
	if _, ok := l.Editing(); ok {
		t.Error("edit session survived a profile switch")
	}
}

func TestFailedSaveLeavesStateUnchanged(t *testing.T) {
	mem := store.NewMemory()
	l := openTest(t, mem)
	before := l.State()

	boom := errors.New("disk full")
	mem.FailPut = boom

	if _, err := l.UpsertTransaction(TxFields{Desc: ptr("x")}); !errors.Is(err, boom) {
		t.Errorf("upsert err = %v", err)
	}
	if _, err := l.RegisterUser("Ana", model.RoleUser); !errors.Is(err, boom) {
		t.Errorf("register err = %v", err)
	}
	if _, err := l.UpdateBudget("1"); !errors.Is(err, boom) {
		t.Errorf("budget err = %v", err)
	}

	after := l.State()
	a, _ := json.Marshal(after)
	b, _ := json.Marshal(before)
	if string(a) != string(b) {
		t.Errorf("state changed after failed saves:\n got %s\nwant %s", a, b)
	}
}

func TestOnChange(t *testing.T) {
	var calls int
	var last model.AppState
	l := openTest(t, store.NewMemory(), WithOnChange(func(s model.AppState) {
		calls++
		last = s
	}))

	_, _ = l.RegisterUser("", model.RoleUser)
	if calls != 0 {
		t.Fatalf("listener called %d times for a rejected mutation", calls)
	}

	if _, err := l.RegisterUser("Ana", model.RoleUser); err != nil {
		t.Fatal(err)
	}
	if calls != 1 || len(last.Users) != 2 {
		t.Errorf("calls = %d, users = %d", calls, len(last.Users))
	}
}

func TestRoundTrip(t *testing.T) {
	mem := store.NewMemory()
	l := openTest(t, mem)
	ana, _ := l.RegisterUser("Ana", model.RoleUser)
	_ = l.SetActiveUser(ana.ID)
	_, _ = l.UpsertTransaction(TxFields{
		Desc: ptr("Venta"), Amount: ptr(dec("0.1")), Type: ptr(model.Income),
		Category: ptr("Ventas"), Date: ptr("2024-03-01"),
	})
	_, _ = l.UpdateBudget("123.45")

	want := l.State()
	got, err := LoadState(mem, DefaultKey, DefaultSeed())
	if err != nil {
		t.Fatal(err)
	}
	a, _ := json.Marshal(got)
	b, _ := json.Marshal(want)
	if string(a) != string(b) {
		t.Errorf("round trip mismatch:\n got %s\nwant %s", a, b)
	}
}

func TestReplace(t *testing.T) {
	l := openTest(t, store.NewMemory())

	bad := model.AppState{Users: []model.User{{ID: "x", Name: "X", Role: model.RoleUser, Cats: []string{"a"}}}, ActiveUserID: "y"}
	if err := l.Replace(bad); err == nil {
		t.Fatal("Replace accepted a state with a dangling active user")
	}

	good := bad
	good.ActiveUserID = "x"
	if err := l.Replace(good); err != nil {
		t.Fatal(err)
	}
	if l.State().ActiveUserID != "x" {
		t.Error("Replace did not commit")
	}
}
