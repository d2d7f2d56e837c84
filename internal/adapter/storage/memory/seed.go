package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"transfer-risk-engine/internal/core/domain"
)

// Store bundles the in-memory repositories.
type Store struct {
	Transfers *TransferStore
	Accounts  *AccountStore
	Users     *UserStore
	Alerts    *AlertStore
}

// New creates an empty Store.
func New() *Store {
	users := NewUserStore()
	return &Store{
		Transfers: NewTransferStore(),
		Accounts:  NewAccountStore(users),
		Users:     users,
		Alerts:    NewAlertStore(),
	}
}

// Seed is the JSON fixture format accepted by LoadFile.
// Account countries come from users[].country.
type Seed struct {
	Accounts  []domain.Account        `json:"accounts"`
	Users     []domain.User           `json:"users"`
	Transfers []domain.TransferRecord `json:"transfers"`
}

// Load copies a seed into the store.
func (s *Store) Load(seed Seed) {
	for _, a := range seed.Accounts {
		s.Accounts.Put(a)
	}
	for _, u := range seed.Users {
		s.Users.Put(u)
	}
	s.Transfers.Add(seed.Transfers...)
}

// LoadFile reads a JSON seed file into the store.
func (s *Store) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("decoding seed file: %w", err)
	}
	s.Load(seed)
	return nil
}
