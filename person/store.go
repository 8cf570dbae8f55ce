package person

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Store is the persisted person registry, a JSON object keyed by the
// lowercased name. Like the budget store it is read whole and rewritten
// whole on mutation.
type Store struct {
	path    string
	persons map[string]*Person
	warning string
}

type storeFile struct {
	Persons map[string]*Person `json:"persons"`
}

// Load reads the registry from path. A missing or unparsable file falls
// back to an empty registry with a non-fatal warning.
func Load(path string) (*Store, error) {
	s := &Store{path: path, persons: make(map[string]*Person)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read person store %s: %w", path, err)
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		s.warning = fmt.Sprintf("person store %s is unreadable, starting empty: %v", path, err)
		return s, nil
	}
	if file.Persons != nil {
		s.persons = file.Persons
	}
	return s, nil
}

// Warning returns a non-fatal message from loading, or "".
func (s *Store) Warning() string { return s.warning }

// Get returns the person stored under the name's key, or nil.
func (s *Store) Get(name string) *Person {
	return s.persons[Key(name)]
}

// All returns the registry keyed by lowercased name. The map is the
// store's own; callers must not mutate it.
func (s *Store) All() map[string]*Person {
	return s.persons
}

// Keys returns the sorted lookup keys of all stored persons.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.persons))
	for k := range s.persons {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Update carries the fields to set on a person; nil fields are left
// untouched so scores can be set independently.
type Update struct {
	NiceScore   *float64
	FriendScore *float64
	BaseValue   *decimal.Decimal
	Currency    *string
}

// Set creates or updates the person stored under name's key and persists
// the registry. Nothing is written when validation fails.
func (s *Store) Set(name string, update Update) (*Person, error) {
	key := Key(name)
	if key == "" {
		return nil, fmt.Errorf("person name must not be empty")
	}

	if update.NiceScore != nil {
		if err := ValidateNiceScore(*update.NiceScore); err != nil {
			return nil, err
		}
	}
	if update.FriendScore != nil {
		if err := ValidateFriendScore(*update.FriendScore); err != nil {
			return nil, err
		}
	}

	p, existed := s.persons[key]
	if !existed {
		p = &Person{Name: strings.TrimSpace(name)}
	}
	previous := *p

	if update.NiceScore != nil {
		p.NiceScore = update.NiceScore
	}
	if update.FriendScore != nil {
		p.FriendScore = update.FriendScore
	}
	if update.BaseValue != nil {
		p.BaseValue = update.BaseValue
	}
	if update.Currency != nil {
		p.Currency = strings.ToUpper(*update.Currency)
	}

	s.persons[key] = p
	if err := s.save(); err != nil {
		if existed {
			*p = previous
		} else {
			delete(s.persons, key)
		}
		return nil, err
	}
	return p, nil
}

// ClearNiceScore removes the nice score from a stored person.
func (s *Store) ClearNiceScore(name string) (*Person, error) {
	return s.clearScore(name, func(p *Person) { p.NiceScore = nil })
}

// ClearFriendScore removes the friend score from a stored person.
func (s *Store) ClearFriendScore(name string) (*Person, error) {
	return s.clearScore(name, func(p *Person) { p.FriendScore = nil })
}

func (s *Store) clearScore(name string, clear func(*Person)) (*Person, error) {
	p := s.Get(name)
	if p == nil {
		return nil, fmt.Errorf("no person named %q", strings.TrimSpace(name))
	}
	previous := *p
	clear(p)
	if err := s.save(); err != nil {
		*p = previous
		return nil, err
	}
	return p, nil
}

// save rewrites the registry file via temp file and rename.
func (s *Store) save() error {
	data, err := json.MarshalIndent(storeFile{Persons: s.persons}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode person store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".persons-*.json")
	if err != nil {
		return fmt.Errorf("failed to write person store: %w", err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write person store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write person store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write person store: %w", err)
	}
	return nil
}
