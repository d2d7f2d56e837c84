package service

import (
	"context"
	"fmt"
	"net"
	"time"

	"transfer-risk-engine/internal/core/domain"
	"transfer-risk-engine/internal/core/ports"
	"transfer-risk-engine/pkg/money"

	"github.com/shopspring/decimal"
)

// Probe names, used in logs and metrics.
const (
	probeDailyLimit  = "daily_limit"
	probeStructuring = "structuring"
	probeSanctions   = "sanctions"
	probeRoundAmount = "round_amount"
	probeUnverified  = "unverified_user"
	probeVelocity    = "velocity"
	probeDeviation   = "amount_deviation"
	probeLocation    = "location"
	probeDevice      = "device"
)

// probeCap bounds the location and device sub-scores.
const probeCap = 100

// signalProbes are the read primitives shared by the evaluators.
// Each method issues bounded reads and returns errors untouched;
// the caller decides whether a failure blocks or contributes nothing.
type signalProbes struct {
	history  ports.TransferHistoryRepository
	accounts ports.AccountRepository
	policy   RiskPolicy
	now      func() time.Time
}

func newSignalProbes(history ports.TransferHistoryRepository, accounts ports.AccountRepository, policy RiskPolicy) *signalProbes {
	return &signalProbes{
		history:  history,
		accounts: accounts,
		policy:   policy,
		now:      time.Now,
	}
}

// bounded applies the per-read timeout.
func (p *signalProbes) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return withQueryTimeout(ctx, p.policy.QueryTimeout)
}

func withQueryTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// DailyVolume returns the sender's completed and pending volume over the
// daily window in the request currency, plus the requested amount.
func (p *signalProbes) DailyVolume(ctx context.Context, req domain.TransferRequest) (decimal.Decimal, error) {
	rctx, cancel := p.bounded(ctx)
	defer cancel()

	prior, err := p.history.SumAmount(rctx, ports.TransferFilter{
		FromAccountID: req.FromAccountID,
		Currency:      req.Currency,
		Statuses:      []domain.TransferStatus{domain.TransferStatusCompleted, domain.TransferStatusPending},
		Since:         p.now().Add(-p.policy.DailyWindow),
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum daily volume: %w", err)
	}
	return money.Sum(prior, req.Amount), nil
}

// RapidSuccession returns the first pair of consecutive sender transfers
// within the daily window separated by less than the structuring gap.
// Returns nil when no such pair exists.
func (p *signalProbes) RapidSuccession(ctx context.Context, accountID string) ([]domain.TransferRecord, error) {
	rctx, cancel := p.bounded(ctx)
	defer cancel()

	recent, err := p.history.ListOrdered(rctx, ports.TransferFilter{
		FromAccountID: accountID,
		Since:         p.now().Add(-p.policy.DailyWindow),
	})
	if err != nil {
		return nil, fmt.Errorf("list recent transfers: %w", err)
	}

	for i := 1; i < len(recent); i++ {
		if recent[i].CreatedAt.Sub(recent[i-1].CreatedAt) < p.policy.StructuringGap {
			return []domain.TransferRecord{recent[i-1], recent[i]}, nil
		}
	}
	return nil, nil
}

// sanctionsHit describes the party that matched the sanctioned list.
type sanctionsHit struct {
	Side      string // "sender" or "recipient"
	AccountID string
	Country   string
}

// SanctionedParty resolves both parties' countries and reports the first match.
// A missing account or country is treated as not sanctioned.
func (p *signalProbes) SanctionedParty(ctx context.Context, req domain.TransferRequest) (*sanctionsHit, error) {
	parties := []struct {
		side string
		id   string
	}{
		{"sender", req.FromAccountID},
		{"recipient", req.ToAccountID},
	}

	for _, party := range parties {
		acc, err := p.account(ctx, party.id)
		if err != nil {
			return nil, err
		}
		if country := acc.CountryCode(); p.policy.IsSanctioned(country) {
			return &sanctionsHit{Side: party.side, AccountID: party.id, Country: country}, nil
		}
	}
	return nil, nil
}

// LargeTransferCount counts sender transfers at or above the round-amount floor in the daily window.
func (p *signalProbes) LargeTransferCount(ctx context.Context, accountID string) (int64, error) {
	rctx, cancel := p.bounded(ctx)
	defer cancel()

	floor := p.policy.RoundAmountMin
	n, err := p.history.Count(rctx, ports.TransferFilter{
		FromAccountID: accountID,
		Since:         p.now().Add(-p.policy.DailyWindow),
		MinAmount:     &floor,
	})
	if err != nil {
		return 0, fmt.Errorf("count large transfers: %w", err)
	}
	return n, nil
}

// Velocity scores the sender's transfer count in the velocity window. Unbounded.
func (p *signalProbes) Velocity(ctx context.Context, accountID string) (int, error) {
	rctx, cancel := p.bounded(ctx)
	defer cancel()

	n, err := p.history.Count(rctx, ports.TransferFilter{
		FromAccountID: accountID,
		Since:         p.now().Add(-p.policy.VelocityWindow),
	})
	if err != nil {
		return 0, fmt.Errorf("count recent transfers: %w", err)
	}
	return int(n) * p.policy.VelocityPoints, nil
}

// AmountDeviation scores how far the amount sits from the sender's average
// completed transfer. With no completed history the average is zero.
func (p *signalProbes) AmountDeviation(ctx context.Context, req domain.TransferRequest) (int, error) {
	rctx, cancel := p.bounded(ctx)
	defer cancel()

	avg, ok, err := p.history.AverageAmount(rctx, ports.TransferFilter{
		FromAccountID: req.FromAccountID,
		Statuses:      []domain.TransferStatus{domain.TransferStatusCompleted},
		Since:         p.now().Add(-p.policy.DeviationWindow),
	})
	if err != nil {
		return 0, fmt.Errorf("average amount: %w", err)
	}
	if !ok {
		avg = money.Zero
	}
	return money.Points(money.AbsDiff(req.Amount, avg), p.policy.DeviationPerPoint, p.policy.DeviationCap), nil
}

// FailedTransfers counts the sender's failed transfers inside window.
func (p *signalProbes) FailedTransfers(ctx context.Context, accountID string, window time.Duration) (int64, error) {
	rctx, cancel := p.bounded(ctx)
	defer cancel()

	n, err := p.history.Count(rctx, ports.TransferFilter{
		FromAccountID: accountID,
		Statuses:      []domain.TransferStatus{domain.TransferStatusFailed},
		Since:         p.now().Add(-window),
	})
	if err != nil {
		return 0, fmt.Errorf("count failed transfers: %w", err)
	}
	return n, nil
}

func (p *signalProbes) account(ctx context.Context, id string) (*domain.Account, error) {
	rctx, cancel := p.bounded(ctx)
	defer cancel()

	acc, err := p.accounts.GetByID(rctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account %s: %w", id, err)
	}
	return acc, nil
}

// ---- Placeholder reputation providers ----

// Heuristic weights. These stand in for a geolocation and a device
// fingerprinting service and deliberately use platform-wide counts.
const (
	busyPoolWindow      = 24 * time.Hour
	busyPoolHigh        = 50
	busyPoolHighPoints  = 40
	busyPoolMedium      = 20
	busyPoolMedPoints   = 20
	privateRangePoints  = 10
	failedDeviceWindow  = 7 * 24 * time.Hour
	failedDeviceCount   = 5
	failedDevicePoints  = 30
	shortDeviceIDLength = 10
	shortDeviceIDPoints = 20
)

// HeuristicIPReputation implements ports.IPReputationProvider.
type HeuristicIPReputation struct {
	history ports.TransferHistoryRepository
	timeout time.Duration
	now     func() time.Time
}

// NewHeuristicIPReputation creates the placeholder IP reputation provider.
func NewHeuristicIPReputation(history ports.TransferHistoryRepository, timeout time.Duration) *HeuristicIPReputation {
	return &HeuristicIPReputation{history: history, timeout: timeout, now: time.Now}
}

// IPRisk combines platform-wide volume with a private-range match, capped at 100.
func (h *HeuristicIPReputation) IPRisk(ctx context.Context, ip string) (int, error) {
	rctx, cancel := withQueryTimeout(ctx, h.timeout)
	defer cancel()

	volume, err := h.history.Count(rctx, ports.TransferFilter{Since: h.now().Add(-busyPoolWindow)})
	if err != nil {
		return 0, fmt.Errorf("count platform volume: %w", err)
	}

	score := 0
	switch {
	case volume > busyPoolHigh:
		score += busyPoolHighPoints
	case volume > busyPoolMedium:
		score += busyPoolMedPoints
	}
	if parsed := net.ParseIP(ip); parsed != nil && parsed.IsPrivate() {
		score += privateRangePoints
	}
	return min(score, probeCap), nil
}

// HeuristicDeviceReputation implements ports.DeviceReputationProvider.
type HeuristicDeviceReputation struct {
	history ports.TransferHistoryRepository
	timeout time.Duration
	now     func() time.Time
}

// NewHeuristicDeviceReputation creates the placeholder device reputation provider.
func NewHeuristicDeviceReputation(history ports.TransferHistoryRepository, timeout time.Duration) *HeuristicDeviceReputation {
	return &HeuristicDeviceReputation{history: history, timeout: timeout, now: time.Now}
}

// DeviceRisk combines platform-wide failures with identifier length, capped at 100.
func (h *HeuristicDeviceReputation) DeviceRisk(ctx context.Context, deviceID string) (int, error) {
	rctx, cancel := withQueryTimeout(ctx, h.timeout)
	defer cancel()

	failed, err := h.history.Count(rctx, ports.TransferFilter{
		Statuses: []domain.TransferStatus{domain.TransferStatusFailed},
		Since:    h.now().Add(-failedDeviceWindow),
	})
	if err != nil {
		return 0, fmt.Errorf("count platform failures: %w", err)
	}

	score := 0
	if failed > failedDeviceCount {
		score += failedDevicePoints
	}
	if len(deviceID) < shortDeviceIDLength {
		score += shortDeviceIDPoints
	}
	return min(score, probeCap), nil
}
