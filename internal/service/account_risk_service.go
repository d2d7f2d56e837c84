package service

import (
	"context"
	"fmt"
	"time"

	"transfer-risk-engine/internal/core/domain"
	"transfer-risk-engine/internal/core/ports"
	"transfer-risk-engine/pkg/apperror"
	"transfer-risk-engine/pkg/metrics"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const evaluatorAccount = "account_risk"

// Factor weights for the standing account score.
const (
	newAccountPoints   = 20
	unverifiedPoints   = 30
	failedPoints       = 25
	pendingAlertPoints = 20
)

// AccountRiskServiceImpl implements ports.AccountRiskAssessor.
type AccountRiskServiceImpl struct {
	probes *signalProbes
	users  ports.UserRepository
	alerts ports.AlertRepository
	policy RiskPolicy
	log    zerolog.Logger
}

// NewAccountRiskService creates a new AccountRiskServiceImpl.
func NewAccountRiskService(
	history ports.TransferHistoryRepository,
	accounts ports.AccountRepository,
	users ports.UserRepository,
	alerts ports.AlertRepository,
	policy RiskPolicy,
	log zerolog.Logger,
) *AccountRiskServiceImpl {
	return &AccountRiskServiceImpl{
		probes: newSignalProbes(history, accounts, policy),
		users:  users,
		alerts: alerts,
		policy: policy,
		log:    log,
	}
}

// Assess computes the standing risk of an account.
// Unlike the per-transfer evaluators, every read failure is an error
// and an unknown account is not found.
func (s *AccountRiskServiceImpl) Assess(ctx context.Context, accountID string) (*domain.AccountRiskResult, error) {
	if accountID == "" {
		return nil, apperror.Validation("account id is required")
	}

	started := time.Now()
	account, err := s.probes.account(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if account == nil {
		metrics.RecordDecision(evaluatorAccount, metrics.OutcomeNotFound, started)
		return nil, apperror.ErrNotFound("account")
	}

	var (
		user          *domain.User
		failed        int64
		pendingAlerts int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rctx, cancel := s.probes.bounded(gctx)
		defer cancel()
		u, err := s.users.GetByID(rctx, account.UserID)
		if err != nil {
			return fmt.Errorf("get user %s: %w", account.UserID, err)
		}
		user = u
		return nil
	})
	g.Go(func() error {
		n, err := s.probes.FailedTransfers(gctx, accountID, s.policy.FailedWindow)
		failed = n
		return err
	})
	g.Go(func() error {
		rctx, cancel := s.probes.bounded(gctx)
		defer cancel()
		n, err := s.alerts.CountByAccount(rctx, accountID, domain.AlertStatusPending)
		if err != nil {
			return fmt.Errorf("count pending alerts: %w", err)
		}
		pendingAlerts = n
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Str("account_id", accountID).Msg("account risk assessment failed")
		return nil, apperror.ErrDatabaseError(err)
	}

	score := 0
	factors := []string{}
	if account.Age(s.probes.now()) < s.policy.NewAccountAge {
		score += newAccountPoints
		factors = append(factors, fmt.Sprintf("New account (less than %s old)", days(s.policy.NewAccountAge)))
	}
	if !user.IsVerified() {
		score += unverifiedPoints
		factors = append(factors, "KYC not verified")
	}
	if failed > s.policy.FailedThreshold {
		score += failedPoints
		factors = append(factors, fmt.Sprintf("%d failed transfers in the last %s", failed, days(s.policy.FailedWindow)))
	}
	if pendingAlerts > 0 {
		score += int(pendingAlerts) * pendingAlertPoints
		factors = append(factors, fmt.Sprintf("%d pending compliance alerts", pendingAlerts))
	}

	metrics.RecordDecision(evaluatorAccount, metrics.OutcomeAssessed, started)
	return &domain.AccountRiskResult{
		AccountID: accountID,
		Score:     score,
		Level:     domain.RiskLevelForScore(score),
		Factors:   factors,
	}, nil
}

func days(d time.Duration) string {
	n := int(d.Hours() / 24)
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
