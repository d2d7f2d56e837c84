package service

import (
	"context"
	"testing"
	"time"

	"transfer-risk-engine/internal/core/domain"
	"transfer-risk-engine/internal/core/ports"
	"transfer-risk-engine/pkg/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func strPtr(s string) *string { return &s }

func transferReq(amount string) domain.TransferRequest {
	return domain.TransferRequest{
		FromAccountID: "acc-a",
		ToAccountID:   "acc-b",
		Amount:        money.MustParse(amount),
		Currency:      "USD",
	}
}

// testAccount builds an account owned by "user-<id>". The country is set on the
// account itself, as the postgres join returns it.
func testAccount(id, country string) *domain.Account {
	acc := &domain.Account{ID: id, UserID: "user-" + id, CreatedAt: testNow.Add(-90 * 24 * time.Hour)}
	if country != "" {
		acc.Country = strPtr(country)
	}
	return acc
}

func record(id string, at time.Time) domain.TransferRecord {
	return domain.TransferRecord{
		ID:            id,
		FromAccountID: "acc-a",
		ToAccountID:   "acc-b",
		Amount:        money.MustParse("100"),
		Currency:      "USD",
		Status:        domain.TransferStatusCompleted,
		CreatedAt:     at,
	}
}

// sumReturning asserts the daily-volume filter and returns prior.
func sumReturning(t *testing.T, prior string) func(context.Context, ports.TransferFilter) (decimal.Decimal, error) {
	return func(_ context.Context, f ports.TransferFilter) (decimal.Decimal, error) {
		assert.Equal(t, "acc-a", f.FromAccountID)
		assert.Equal(t, "USD", f.Currency)
		assert.ElementsMatch(t, []domain.TransferStatus{domain.TransferStatusCompleted, domain.TransferStatusPending}, f.Statuses)
		assert.Equal(t, testNow.Add(-24*time.Hour), f.Since)
		return money.MustParse(prior), nil
	}
}

func money0() decimal.Decimal { return decimal.Zero }
