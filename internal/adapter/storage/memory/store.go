// Package memory is an in-process storage driver for local runs and
// end-to-end tests. It implements the same ports as the postgres adapter.
package memory

import (
	"context"
	"slices"
	"sync"

	"transfer-risk-engine/internal/core/domain"
	"transfer-risk-engine/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Transfer history ---

// TransferStore implements ports.TransferHistoryRepository.
type TransferStore struct {
	mu        sync.RWMutex
	transfers []domain.TransferRecord
}

func NewTransferStore() *TransferStore {
	return &TransferStore{}
}

// Add appends a record to the log.
func (s *TransferStore) Add(records ...domain.TransferRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transfers = append(s.transfers, records...)
}

func (s *TransferStore) Count(ctx context.Context, filter ports.TransferFilter) (int64, error) {
	matched, err := s.match(ctx, filter)
	return int64(len(matched)), err
}

func (s *TransferStore) SumAmount(ctx context.Context, filter ports.TransferFilter) (decimal.Decimal, error) {
	matched, err := s.match(ctx, filter)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, t := range matched {
		total = total.Add(t.Amount)
	}
	return total, nil
}

func (s *TransferStore) AverageAmount(ctx context.Context, filter ports.TransferFilter) (decimal.Decimal, bool, error) {
	matched, err := s.match(ctx, filter)
	if err != nil || len(matched) == 0 {
		return decimal.Zero, false, err
	}
	amounts := make([]decimal.Decimal, len(matched))
	for i, t := range matched {
		amounts[i] = t.Amount
	}
	return decimal.Avg(amounts[0], amounts[1:]...), true, nil
}

func (s *TransferStore) ListOrdered(ctx context.Context, filter ports.TransferFilter) ([]domain.TransferRecord, error) {
	matched, err := s.match(ctx, filter)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(matched, func(a, b domain.TransferRecord) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return matched, nil
}

func (s *TransferStore) match(ctx context.Context, f ports.TransferFilter) ([]domain.TransferRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.TransferRecord
	for _, t := range s.transfers {
		if f.FromAccountID != "" && t.FromAccountID != f.FromAccountID {
			continue
		}
		if f.Currency != "" && t.Currency != f.Currency {
			continue
		}
		if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, t.Status) {
			continue
		}
		if !f.Since.IsZero() && t.CreatedAt.Before(f.Since) {
			continue
		}
		if f.MinAmount != nil && t.Amount.LessThan(*f.MinAmount) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// --- Accounts & users ---

// AccountStore implements ports.AccountRepository.
// Country is resolved from the owning user on every read, as the postgres
// driver does with its users join. A country stored on the account is ignored.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	users    *UserStore
}

// NewAccountStore creates an AccountStore that reads countries from users.
// A nil users store leaves every country unknown.
func NewAccountStore(users *UserStore) *AccountStore {
	return &AccountStore{accounts: make(map[string]domain.Account), users: users}
}

func (s *AccountStore) Put(acc domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc.Country = nil
	s.accounts[acc.ID] = acc
}

func (s *AccountStore) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	acc, ok := s.accounts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if s.users != nil {
		owner, err := s.users.GetByID(ctx, acc.UserID)
		if err != nil {
			return nil, err
		}
		if owner != nil && owner.Country != nil {
			country := *owner.Country
			acc.Country = &country
		}
	}
	return &acc, nil
}

// UserStore implements ports.UserRepository.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]domain.User)}
}

func (s *UserStore) Put(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// --- Alerts ---

// AlertStore implements ports.AlertRepository.
type AlertStore struct {
	mu     sync.RWMutex
	alerts []domain.ComplianceAlert
}

func NewAlertStore() *AlertStore {
	return &AlertStore{}
}

func (s *AlertStore) Create(ctx context.Context, alert *domain.ComplianceAlert) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	s.alerts = append(s.alerts, *alert)
	return alert.ID, nil
}

func (s *AlertStore) CountByAccount(ctx context.Context, accountID string, status domain.AlertStatus) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, a := range s.alerts {
		if a.AccountID == accountID && a.Status == status {
			n++
		}
	}
	return n, nil
}

// All returns a copy of every stored alert in creation order.
func (s *AlertStore) All() []domain.ComplianceAlert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.alerts)
}
