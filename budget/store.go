package budget

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mholmer/giftlog/date"
)

// Store is the persisted collection of budgets. The whole file is read on
// load and rewritten on every mutation; mutations validate first and write
// nothing on failure.
type Store struct {
	path    string
	budgets []*Budget
	nextID  int
	warning string

	// now stamps CreatedAt on new budgets; replaceable in tests.
	now func() time.Time
}

// storeFile is the on-disk shape of the budget store.
type storeFile struct {
	Budgets []*Budget `json:"budgets"`
	NextID  int       `json:"nextId"`
}

// Load reads the budget store from path. A missing or unparsable file
// falls back to an empty store; the fallback is reported via Warning, not
// as an error, so a corrupt store never blocks the command.
func Load(path string) (*Store, error) {
	s := &Store{path: path, nextID: 1, now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read budget store %s: %w", path, err)
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		s.warning = fmt.Sprintf("budget store %s is unreadable, starting empty: %v", path, err)
		return s, nil
	}

	s.budgets = file.Budgets
	if file.NextID > 0 {
		s.nextID = file.NextID
	}
	return s, nil
}

// Warning returns a non-fatal message from loading, or "" when the store
// loaded cleanly.
func (s *Store) Warning() string { return s.warning }

// List returns all budgets in stored order.
func (s *Store) List() []*Budget { return s.budgets }

// Get returns the budget with the given id, or nil.
func (s *Store) Get(id int) *Budget {
	for _, b := range s.budgets {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// ActiveOn returns the budget whose period contains today, or nil. The
// overlap invariant guarantees there is at most one.
func (s *Store) ActiveOn(today date.Date) *Budget {
	for _, b := range s.budgets {
		if b.StatusOn(today) == StatusActive {
			return b
		}
	}
	return nil
}

// Add validates and persists a new budget. The id is assigned from the
// store's monotonic counter and the description defaults to "Budget {id}"
// when empty. On any validation or write failure nothing is stored.
func (s *Store) Add(amount decimal.Decimal, from, to, description string) (*Budget, error) {
	if !amount.IsPositive() {
		return nil, validationErrorf("budget amount must be positive, got %s", amount)
	}
	period, err := s.validatePeriod(from, to, 0)
	if err != nil {
		return nil, err
	}

	b := &Budget{
		ID:          s.nextID,
		TotalAmount: amount,
		FromDate:    period.From,
		ToDate:      period.To,
		Description: description,
		CreatedAt:   s.now(),
	}
	if b.Description == "" {
		b.Description = fmt.Sprintf("Budget %d", b.ID)
	}

	s.budgets = append(s.budgets, b)
	s.nextID++
	if err := s.save(); err != nil {
		s.budgets = s.budgets[:len(s.budgets)-1]
		s.nextID--
		return nil, err
	}
	return b, nil
}

// EditRequest carries the fields to change on a budget; nil fields are
// left untouched.
type EditRequest struct {
	Amount      *decimal.Decimal
	From        *string
	To          *string
	Description *string
}

// Edit applies the request to the budget with the given id. If either date
// changes, the full date and overlap invariant is revalidated against all
// other budgets. The edit is all-or-nothing: on failure the stored budget
// is unchanged.
func (s *Store) Edit(id int, req EditRequest) (*Budget, error) {
	b := s.Get(id)
	if b == nil {
		return nil, &NotFoundError{ID: id}
	}

	updated := *b
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, validationErrorf("budget amount must be positive, got %s", req.Amount)
		}
		updated.TotalAmount = *req.Amount
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.From != nil || req.To != nil {
		from := b.FromDate.String()
		if req.From != nil {
			from = *req.From
		}
		to := b.ToDate.String()
		if req.To != nil {
			to = *req.To
		}
		period, err := s.validatePeriod(from, to, id)
		if err != nil {
			return nil, err
		}
		updated.FromDate = period.From
		updated.ToDate = period.To
	}

	previous := *b
	*b = updated
	if err := s.save(); err != nil {
		*b = previous
		return nil, err
	}
	return b, nil
}

// validatePeriod parses and validates a date pair and checks the overlap
// invariant against every budget except excludeID (0 excludes none).
func (s *Store) validatePeriod(from, to string, excludeID int) (date.Range, error) {
	fromDate, err := date.Parse(from)
	if err != nil {
		return date.Range{}, &ValidationError{Reason: err.Error()}
	}
	toDate, err := date.Parse(to)
	if err != nil {
		return date.Range{}, &ValidationError{Reason: err.Error()}
	}
	if toDate.Before(fromDate) {
		return date.Range{}, validationErrorf("from date %s is after to date %s", fromDate, toDate)
	}

	period := date.Range{From: fromDate, To: toDate}
	for _, other := range s.budgets {
		if other.ID == excludeID {
			continue
		}
		if period.Overlaps(other.Period()) {
			return date.Range{}, &OverlapError{Period: period, Existing: other}
		}
	}
	return period, nil
}

// save rewrites the whole store file via a temp file and rename, so a
// failed write never leaves a truncated store behind.
func (s *Store) save() error {
	data, err := json.MarshalIndent(storeFile{Budgets: s.budgets, NextID: s.nextID}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode budget store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".budgets-*.json")
	if err != nil {
		return fmt.Errorf("failed to write budget store: %w", err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write budget store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write budget store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write budget store: %w", err)
	}
	return nil
}
