// Package ledger owns the live application state: loading and saving the
// persisted document and applying profile and transaction mutations to it.
package ledger

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/nexus/internal/model"
)

// DefaultKey is the blob key the document is stored under.
const DefaultKey = "NEXUS_CORE_DATA_V2.5"

// BlobStore persists opaque documents by key.
type BlobStore interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, data []byte) error
}

// LoadState reads the document stored under key. When nothing is stored the
// bootstrap state is saved and returned.
func LoadState(bs BlobStore, key string, seed Seed) (model.AppState, error) {
	s, ok, err := readState(bs, key)
	if err != nil {
		return model.AppState{}, err
	}
	if ok {
		return s, nil
	}

	s = Bootstrap(seed)
	if err := SaveState(bs, key, s); err != nil {
		return model.AppState{}, err
	}
	return s, nil
}

// SaveState serializes s and overwrites the document under key.
func SaveState(bs BlobStore, key string, s model.AppState) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := bs.Put(key, data); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// DecodeState parses and validates a persisted document. Negative budgets,
// which older documents may hold, are read as zero.
func DecodeState(data []byte) (model.AppState, error) {
	var s model.AppState
	if err := json.Unmarshal(data, &s); err != nil {
		return model.AppState{}, fmt.Errorf("decoding state: %w", err)
	}
	if s.Transactions == nil {
		s.Transactions = []model.Transaction{}
	}
	for i := range s.Users {
		if s.Users[i].Budget.IsNegative() {
			s.Users[i].Budget = decimal.Zero
		}
	}
	if err := s.Validate(); err != nil {
		return model.AppState{}, fmt.Errorf("invalid state: %w", err)
	}
	return s, nil
}

func readState(bs BlobStore, key string) (model.AppState, bool, error) {
	data, ok, err := bs.Get(key)
	if err != nil {
		return model.AppState{}, false, fmt.Errorf("loading state: %w", err)
	}
	if !ok {
		return model.AppState{}, false, nil
	}
	s, err := DecodeState(data)
	if err != nil {
		return model.AppState{}, false, fmt.Errorf("%s: %w", key, err)
	}
	return s, true, nil
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithKey stores the document under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(l *Ledger) { l.key = key }
}

// WithLegacyKeys lists older keys to migrate from, tried in order when the
// current key holds nothing.
func WithLegacyKeys(keys ...string) Option {
	return func(l *Ledger) { l.legacyKeys = keys }
}

// WithSeed sets the bootstrap admin and the defaults for new profiles.
func WithSeed(seed Seed) Option {
	return func(l *Ledger) { l.seed = seed }
}

// WithIDSource sets the generator for new ids.
func WithIDSource(ids IDSource) Option {
	return func(l *Ledger) { l.ids = ids }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// WithOnChange registers a listener called after every committed mutation.
func WithOnChange(fn func(model.AppState)) Option {
	return func(l *Ledger) { l.listeners = append(l.listeners, fn) }
}

// Ledger is the live session: the current state plus the store it is saved
// to. Every mutation is staged on a copy, saved, and only then committed, so
// a failed save leaves State unchanged.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	bs         BlobStore
	key        string
	legacyKeys []string
	seed       Seed
	ids        IDSource
	log        *slog.Logger
	listeners  []func(model.AppState)

	state   model.AppState
	editing model.ID
}

// Open loads the persisted state, migrating from a legacy key or saving the
// bootstrap state as needed.
func Open(bs BlobStore, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		bs:   bs,
		key:  DefaultKey,
		seed: DefaultSeed(),
		ids:  UUIDSource{},
		log:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}

	s, ok, err := readState(bs, l.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		s, err = l.migrate()
		if err != nil {
			return nil, err
		}
	}
	l.state = s
	return l, nil
}

func (l *Ledger) migrate() (model.AppState, error) {
	for _, old := range l.legacyKeys {
		s, ok, err := readState(l.bs, old)
		if err != nil {
			return model.AppState{}, err
		}
		if !ok {
			continue
		}
		if err := SaveState(l.bs, l.key, s); err != nil {
			return model.AppState{}, err
		}
		l.log.Info("migrated state", "from", old, "to", l.key)
		return s, nil
	}

	l.log.Info("no saved state, bootstrapping", "key", l.key)
	return LoadState(l.bs, l.key, l.seed)
}

// State returns a copy of the current state.
func (l *Ledger) State() model.AppState {
	return l.state.Clone()
}

// Key returns the blob key the ledger saves to.
func (l *Ledger) Key() string {
	return l.key
}

// Seed returns the profile defaults in use.
func (l *Ledger) Seed() Seed {
	return l.seed
}

func (l *Ledger) commit(next model.AppState) error {
	if err := SaveState(l.bs, l.key, next); err != nil {
		l.log.Error("save failed", "key", l.key, "err", err)
		return err
	}
	l.state = next
	l.editing = ""
	l.log.Debug("state saved",
		"key", l.key,
		"users", len(next.Users),
		"transactions", len(next.Transactions),
	)
	for _, fn := range l.listeners {
		fn(next.Clone())
	}
	return nil
}

// UpsertTransaction saves the transaction form. When an edit session is
// open, that transaction is updated; otherwise a new one is created for the
// active profile.
func (l *Ledger) UpsertTransaction(f TxFields) (model.Transaction, error) {
	return l.UpsertTransactionID(l.editing, f)
}

// UpsertTransactionID updates the transaction editID, or creates a new one
// when editID is empty or unknown.
func (l *Ledger) UpsertTransactionID(editID model.ID, f TxFields) (model.Transaction, error) {
	newID := model.ID("")
	if editID == "" || l.state.TransactionIndex(editID) < 0 {
		newID = l.ids.NewID()
	}
	next, tx := UpsertTransaction(l.state, editID, f, newID)
	if err := l.commit(next); err != nil {
		return model.Transaction{}, err
	}
	if newID == "" {
		l.log.Info("transaction updated", "tx", tx.ID, "user", tx.UserID)
	} else {
		l.log.Info("transaction added", "tx", tx.ID, "user", tx.UserID)
	}
	return tx, nil
}

// DeleteTransaction removes the transaction id. Removing an unknown id is a
// no-op that does not touch the store.
func (l *Ledger) DeleteTransaction(id model.ID) (bool, error) {
	next, found := DeleteTransaction(l.state, id)
	if !found {
		l.log.Debug("delete of unknown transaction ignored", "tx", id)
		return false, nil
	}
	if err := l.commit(next); err != nil {
		return false, err
	}
	l.log.Info("transaction deleted", "tx", id)
	return true, nil
}

// RegisterUser adds a profile with the default budget and categories.
func (l *Ledger) RegisterUser(name string, role model.Role) (model.User, error) {
	next, u, err := RegisterUser(l.state, name, role, l.ids.NewID(), l.seed)
	if err != nil {
		l.log.Info("profile rejected", "name", name, "role", role, "err", err)
		return model.User{}, err
	}
	if err := l.commit(next); err != nil {
		return model.User{}, err
	}
	l.log.Info("profile registered", "user", u.ID, "role", u.Role)
	return u, nil
}

// UpdateBudget sets the active profile's budget from raw text.
func (l *Ledger) UpdateBudget(raw string) (decimal.Decimal, error) {
	next, u, err := UpdateBudget(l.state, raw)
	if err != nil {
		return decimal.Zero, err
	}
	if err := l.commit(next); err != nil {
		return decimal.Zero, err
	}
	l.log.Info("budget updated", "user", u.ID, "budget", u.Budget.String())
	return u.Budget, nil
}

// SetActiveUser switches the active profile and ends any edit session.
func (l *Ledger) SetActiveUser(id model.ID) error {
	next, err := SetActiveUser(l.state, id)
	if err != nil {
		l.log.Info("profile switch rejected", "user", id, "err", err)
		return err
	}
	if err := l.commit(next); err != nil {
		return err
	}
	l.log.Info("active profile changed", "user", id)
	return nil
}

// Replace validates s and saves it in place of the current state.
func (l *Ledger) Replace(s model.AppState) error {
	if s.Transactions == nil {
		s.Transactions = []model.Transaction{}
	}
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid state: %w", err)
	}
	return l.commit(s.Clone())
}

// BeginEdit opens an edit session on a transaction of the active profile and
// returns its current values.
func (l *Ledger) BeginEdit(id model.ID) (model.Transaction, bool) {
	idx := l.state.TransactionIndex(id)
	if idx < 0 {
		return model.Transaction{}, false
	}
	tx := l.state.Transactions[idx]
	if tx.UserID != l.state.ActiveUserID {
		return model.Transaction{}, false
	}
	l.editing = id
	return tx, true
}

// CancelEdit ends the edit session without saving.
func (l *Ledger) CancelEdit() {
	l.editing = ""
}

// Editing returns the transaction under edit, if any.
func (l *Ledger) Editing() (model.ID, bool) {
	return l.editing, l.editing != ""
}
