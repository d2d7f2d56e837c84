package service

import (
	"context"
	"fmt"
	"time"

	"transfer-risk-engine/internal/core/domain"
	"transfer-risk-engine/internal/core/ports"
	"transfer-risk-engine/pkg/apperror"
	"transfer-risk-engine/pkg/metrics"
	"transfer-risk-engine/pkg/money"

	"github.com/rs/zerolog"
)

// Verdict reasons returned to the payment workflow.
const (
	ReasonAMLLimit          = "Transaction exceeds AML limits"
	ReasonSuspiciousPattern = "Suspicious transaction pattern detected"
	ReasonSanctions         = "Sanctions violation detected"
)

const evaluatorCompliance = "compliance"

// ComplianceServiceImpl implements ports.ComplianceEvaluator.
//
// Checks run in a fixed order and stop at the first hard violation.
// Hard checks fail closed on read errors; soft checks log and move on.
type ComplianceServiceImpl struct {
	probes *signalProbes
	users  ports.UserRepository
	alerts ports.AlertSink
	policy RiskPolicy
	log    zerolog.Logger
}

// NewComplianceService creates a new ComplianceServiceImpl.
func NewComplianceService(
	history ports.TransferHistoryRepository,
	accounts ports.AccountRepository,
	users ports.UserRepository,
	alerts ports.AlertSink,
	policy RiskPolicy,
	log zerolog.Logger,
) *ComplianceServiceImpl {
	return &ComplianceServiceImpl{
		probes: newSignalProbes(history, accounts, policy),
		users:  users,
		alerts: alerts,
		policy: policy,
		log:    log,
	}
}

// Evaluate runs the AML and sanctions checks against a transfer request.
func (s *ComplianceServiceImpl) Evaluate(ctx context.Context, req domain.TransferRequest) (*domain.ComplianceResult, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	started := time.Now()
	now := s.probes.now()
	result := &domain.ComplianceResult{Compliant: true, Alerts: []domain.ComplianceAlert{}}

	// 1. Daily limit (hard)
	total, err := s.probes.DailyVolume(ctx, req)
	if err != nil {
		return nil, s.unavailable(probeDailyLimit, req, err, started)
	}
	if total.GreaterThan(s.policy.DailyLimit) {
		alert := domain.NewAlert(domain.AlertTypeAML, domain.SeverityHigh, req.FromAccountID, domain.RuleDailyLimit,
			fmt.Sprintf("Rolling daily volume %s %s exceeds limit %s", total.String(), req.Currency, s.policy.DailyLimit.String()), now)
		alert.Metadata = &domain.AlertMetadata{Factors: []string{"daily_total=" + total.String()}}
		return s.block(ctx, result, alert, ReasonAMLLimit, started), nil
	}

	// 2. Structuring pattern (hard)
	pair, err := s.probes.RapidSuccession(ctx, req.FromAccountID)
	if err != nil {
		return nil, s.unavailable(probeStructuring, req, err, started)
	}
	if pair != nil {
		gap := pair[1].CreatedAt.Sub(pair[0].CreatedAt)
		alert := domain.NewAlert(domain.AlertTypeAML, domain.SeverityMedium, req.FromAccountID, domain.RuleStructuring,
			fmt.Sprintf("Consecutive transfers %s apart, under the %s structuring gap", gap.Round(time.Second), s.policy.StructuringGap), now)
		alert.Metadata = &domain.AlertMetadata{RelatedIDs: []string{pair[0].ID, pair[1].ID}}
		return s.block(ctx, result, alert, ReasonSuspiciousPattern, started), nil
	}

	// 3. Sanctions screening (hard)
	hit, err := s.probes.SanctionedParty(ctx, req)
	if err != nil {
		return nil, s.unavailable(probeSanctions, req, err, started)
	}
	if hit != nil {
		alert := domain.NewAlert(domain.AlertTypeSanctions, domain.SeverityCritical, req.FromAccountID, domain.RuleSanctions,
			fmt.Sprintf("Transfer %s %s is in sanctioned country %s", hit.Side, hit.AccountID, hit.Country), now)
		alert.Metadata = &domain.AlertMetadata{
			Factors:    []string{hit.Side + "_country=" + hit.Country},
			RelatedIDs: []string{req.ToAccountID},
		}
		return s.block(ctx, result, alert, ReasonSanctions, started), nil
	}

	// 4. Round-number structuring (soft)
	if s.isLargeRoundAmount(req) {
		prior, err := s.probes.LargeTransferCount(ctx, req.FromAccountID)
		if err != nil {
			s.skipSoft(probeRoundAmount, req, err)
		} else if count := prior + 1; count >= int64(s.policy.RoundAmountCount) {
			alert := domain.NewAlert(domain.AlertTypeAML, domain.SeverityMedium, req.FromAccountID, domain.RuleRoundAmount,
				fmt.Sprintf("%d transfers of at least %s within the daily window, including a round %s", count, s.policy.RoundAmountMin.String(), req.Amount.String()), now)
			s.flag(ctx, result, alert)
		}
	}

	// 5. Unverified user, large amount (soft)
	if req.UserID != nil && req.Amount.GreaterThan(s.policy.UnverifiedLimit) {
		user, err := s.user(ctx, *req.UserID)
		if err != nil {
			s.skipSoft(probeUnverified, req, err)
		} else if !user.IsVerified() {
			alert := domain.NewAlert(domain.AlertTypeAML, domain.SeverityMedium, req.FromAccountID, domain.RuleUnverifiedUser,
				fmt.Sprintf("Unverified user %s moving %s %s", *req.UserID, req.Amount.String(), req.Currency), now)
			s.flag(ctx, result, alert)
		}
	}

	metrics.RecordDecision(evaluatorCompliance, metrics.OutcomeCompliant, started)
	return result, nil
}

func (s *ComplianceServiceImpl) isLargeRoundAmount(req domain.TransferRequest) bool {
	return req.Amount.GreaterThanOrEqual(s.policy.RoundAmountMin) &&
		money.IsMultipleOf(req.Amount, s.policy.RoundAmountUnit)
}

func (s *ComplianceServiceImpl) user(ctx context.Context, id string) (*domain.User, error) {
	rctx, cancel := s.probes.bounded(ctx)
	defer cancel()

	u, err := s.users.GetByID(rctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

// block records the alert and returns a non-compliant verdict.
func (s *ComplianceServiceImpl) block(ctx context.Context, result *domain.ComplianceResult, alert domain.ComplianceAlert, reason string, started time.Time) *domain.ComplianceResult {
	s.flag(ctx, result, alert)
	result.Compliant = false
	result.Reason = reason

	s.log.Info().
		Str("from_account_id", alert.AccountID).
		Str("rule", alert.Rule).
		Str("reason", reason).
		Msg("transfer blocked by compliance")
	metrics.RecordDecision(evaluatorCompliance, metrics.OutcomeBlocked, started)
	return result
}

// flag hands the alert to the sink and appends it to the verdict.
// A duplicate dropped by the sink is left out so every returned id was recorded.
func (s *ComplianceServiceImpl) flag(ctx context.Context, result *domain.ComplianceResult, alert domain.ComplianceAlert) {
	if s.alerts.Raise(ctx, &alert) {
		return
	}
	result.Alerts = append(result.Alerts, alert)
}

func (s *ComplianceServiceImpl) unavailable(check string, req domain.TransferRequest, err error, started time.Time) error {
	s.log.Error().Err(err).
		Str("check", check).
		Str("from_account_id", req.FromAccountID).
		Msg("hard compliance check unavailable, failing closed")
	metrics.RecordDecision(evaluatorCompliance, metrics.OutcomeUnavailable, started)
	return apperror.ErrComplianceUnavailable(check, err)
}

func (s *ComplianceServiceImpl) skipSoft(check string, req domain.TransferRequest, err error) {
	s.log.Warn().Err(err).
		Str("check", check).
		Str("from_account_id", req.FromAccountID).
		Msg("soft compliance check skipped")
	metrics.RecordProbeFallback(check)
}
