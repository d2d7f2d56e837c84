package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"transfer-risk-engine/internal/core/domain"

	"github.com/google/uuid"
)

// AlertRepo implements ports.AlertRepository. Rows are append-only.
type AlertRepo struct {
	pool Pool
}

// NewAlertRepo creates a new AlertRepo.
func NewAlertRepo(pool Pool) *AlertRepo {
	return &AlertRepo{pool: pool}
}

// Create inserts an alert and returns its id.
func (r *AlertRepo) Create(ctx context.Context, a *domain.ComplianceAlert) (uuid.UUID, error) {
	var metadata []byte
	if a.Metadata != nil {
		var err error
		if metadata, err = json.Marshal(a.Metadata); err != nil {
			return uuid.Nil, fmt.Errorf("marshal alert metadata: %w", err)
		}
	}

	query := `INSERT INTO compliance_alerts (id, type, severity, account_id, rule, description, status, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		a.ID, a.Type, a.Severity, a.AccountID, a.Rule, a.Description, a.Status, metadata, a.CreatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert alert: %w", err)
	}
	return id, nil
}

// CountByAccount counts an account's alerts in the given status.
func (r *AlertRepo) CountByAccount(ctx context.Context, accountID string, status domain.AlertStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM compliance_alerts WHERE account_id = $1 AND status = $2`

	var n int64
	if err := r.pool.QueryRow(ctx, query, accountID, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count alerts: %w", err)
	}
	return n, nil
}
