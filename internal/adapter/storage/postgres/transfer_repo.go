package postgres

import (
	"context"
	"fmt"
	"strings"

	"transfer-risk-engine/internal/core/domain"
	"transfer-risk-engine/internal/core/ports"
	"transfer-risk-engine/pkg/money"

	"github.com/shopspring/decimal"
)

// TransferRepo implements ports.TransferHistoryRepository over the transfers table.
// Amounts cross the driver boundary as numeric text so no precision is lost.
type TransferRepo struct {
	pool Pool
}

// NewTransferRepo creates a new TransferRepo.
func NewTransferRepo(pool Pool) *TransferRepo {
	return &TransferRepo{pool: pool}
}

// Count returns the number of transfers matching the filter.
func (r *TransferRepo) Count(ctx context.Context, filter ports.TransferFilter) (int64, error) {
	where, args := buildTransferWhere(filter)
	query := "SELECT COUNT(*) FROM transfers" + where

	var n int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transfers: %w", err)
	}
	return n, nil
}

// SumAmount returns the exact sum of matching amounts, zero when none match.
func (r *TransferRepo) SumAmount(ctx context.Context, filter ports.TransferFilter) (decimal.Decimal, error) {
	where, args := buildTransferWhere(filter)
	query := "SELECT COALESCE(SUM(amount), 0)::text FROM transfers" + where

	var raw string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("sum transfers: %w", err)
	}
	return money.Parse(raw)
}

// AverageAmount returns the mean of matching amounts. ok is false when none match.
func (r *TransferRepo) AverageAmount(ctx context.Context, filter ports.TransferFilter) (decimal.Decimal, bool, error) {
	where, args := buildTransferWhere(filter)
	query := "SELECT AVG(amount)::text FROM transfers" + where

	var raw *string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		return decimal.Zero, false, fmt.Errorf("average transfers: %w", err)
	}
	if raw == nil {
		return decimal.Zero, false, nil
	}
	avg, err := money.Parse(*raw)
	if err != nil {
		return decimal.Zero, false, err
	}
	return avg, true, nil
}

// ListOrdered returns matching transfers, oldest first.
func (r *TransferRepo) ListOrdered(ctx context.Context, filter ports.TransferFilter) ([]domain.TransferRecord, error) {
	where, args := buildTransferWhere(filter)
	query := `SELECT id, from_account_id, to_account_id, amount::text, currency, status, created_at
		FROM transfers` + where + " ORDER BY created_at ASC, id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var out []domain.TransferRecord
	for rows.Next() {
		var (
			t      domain.TransferRecord
			amount string
		)
		if err := rows.Scan(&t.ID, &t.FromAccountID, &t.ToAccountID, &amount, &t.Currency, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer row: %w", err)
		}
		if t.Amount, err = money.Parse(amount); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfer rows: %w", err)
	}
	return out, nil
}

// buildTransferWhere renders the filter as a WHERE clause with positional args.
func buildTransferWhere(f ports.TransferFilter) (string, []any) {
	var conditions []string
	var args []any
	argIdx := 1

	if f.FromAccountID != "" {
		conditions = append(conditions, fmt.Sprintf("from_account_id = $%d", argIdx))
		args = append(args, f.FromAccountID)
		argIdx++
	}
	if f.Currency != "" {
		conditions = append(conditions, fmt.Sprintf("currency = $%d", argIdx))
		args = append(args, f.Currency)
		argIdx++
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", argIdx))
		args = append(args, statuses)
		argIdx++
	}
	if !f.Since.IsZero() {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, f.Since)
		argIdx++
	}
	if f.MinAmount != nil {
		conditions = append(conditions, fmt.Sprintf("amount >= $%d::numeric", argIdx))
		args = append(args, f.MinAmount.String())
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
