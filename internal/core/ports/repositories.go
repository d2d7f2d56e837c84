package ports

import (
	"context"
	"time"

	"transfer-risk-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferFilter narrows a query over the transfer history log.
// Zero-valued fields do not constrain the query.
type TransferFilter struct {
	FromAccountID string                  // "" = platform-wide
	Currency      string                  // "" = any currency
	Statuses      []domain.TransferStatus // empty = any status
	Since         time.Time               // created_at >= Since
	MinAmount     *decimal.Decimal        // amount >= MinAmount
}

// TransferHistoryRepository is the read side of the transfer log.
// The risk engine never mutates it.
type TransferHistoryRepository interface {
	Count(ctx context.Context, filter TransferFilter) (int64, error)
	SumAmount(ctx context.Context, filter TransferFilter) (decimal.Decimal, error)
	// AverageAmount returns ok=false when no rows match.
	AverageAmount(ctx context.Context, filter TransferFilter) (avg decimal.Decimal, ok bool, err error)
	// ListOrdered returns matching transfers ordered by created_at ascending.
	ListOrdered(ctx context.Context, filter TransferFilter) ([]domain.TransferRecord, error)
}

// AccountRepository reads accounts together with the owning user's country.
// GetByID returns nil, nil when the account does not exist.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
}

// UserRepository reads users. GetByID returns nil, nil when the user does not exist.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// AlertRepository is the append-only alert store.
type AlertRepository interface {
	Create(ctx context.Context, alert *domain.ComplianceAlert) (uuid.UUID, error)
	CountByAccount(ctx context.Context, accountID string, status domain.AlertStatus) (int64, error)
}
