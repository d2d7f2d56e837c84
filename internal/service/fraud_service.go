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

const (
	evaluatorFraud = "fraud"

	// criticalFraudScore escalates the fraud alert to CRITICAL.
	criticalFraudScore = 100
)

// FraudServiceImpl implements ports.FraudScorer.
// Probes run concurrently and every one of them fails open.
type FraudServiceImpl struct {
	probes  *signalProbes
	ipRep   ports.IPReputationProvider
	devices ports.DeviceReputationProvider
	alerts  ports.AlertSink
	policy  RiskPolicy
	log     zerolog.Logger
}

// NewFraudService creates a new FraudServiceImpl.
func NewFraudService(
	history ports.TransferHistoryRepository,
	ipRep ports.IPReputationProvider,
	devices ports.DeviceReputationProvider,
	alerts ports.AlertSink,
	policy RiskPolicy,
	log zerolog.Logger,
) *FraudServiceImpl {
	return &FraudServiceImpl{
		probes:  newSignalProbes(history, nil, policy),
		ipRep:   ipRep,
		devices: devices,
		alerts:  alerts,
		policy:  policy,
		log:     log,
	}
}

// Score sums the velocity, amount, location and device sub-scores.
func (s *FraudServiceImpl) Score(ctx context.Context, req domain.TransferRequest) (*domain.FraudScoreResult, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	started := time.Now()
	var velocity, deviation, location, device int

	var g errgroup.Group
	g.Go(func() error {
		velocity = s.failOpen(ctx, probeVelocity, req, func(ctx context.Context) (int, error) {
			return s.probes.Velocity(ctx, req.FromAccountID)
		})
		return nil
	})
	g.Go(func() error {
		deviation = s.failOpen(ctx, probeDeviation, req, func(ctx context.Context) (int, error) {
			return s.probes.AmountDeviation(ctx, req)
		})
		return nil
	})
	if ip := req.IPAddress(); ip != "" {
		g.Go(func() error {
			location = min(s.failOpen(ctx, probeLocation, req, func(ctx context.Context) (int, error) {
				return s.ipRep.IPRisk(ctx, ip)
			}), probeCap)
			return nil
		})
	}
	if deviceID := req.DeviceID(); deviceID != "" {
		g.Go(func() error {
			device = min(s.failOpen(ctx, probeDevice, req, func(ctx context.Context) (int, error) {
				return s.devices.DeviceRisk(ctx, deviceID)
			}), probeCap)
			return nil
		})
	}
	_ = g.Wait() // probes never return errors

	rules := make([]string, 0, 4)
	for _, sub := range []struct {
		score int
		rule  string
	}{
		{velocity, domain.FraudRuleHighVelocity},
		{deviation, domain.FraudRuleUnusualAmount},
		{location, domain.FraudRuleHighRiskLocation},
		{device, domain.FraudRuleSuspiciousDevice},
	} {
		if sub.score > s.policy.RuleTriggerScore {
			rules = append(rules, sub.rule)
		}
	}

	total := velocity + deviation + location + device
	result := &domain.FraudScoreResult{
		Score:   total,
		Allowed: total < s.policy.FraudBlockScore,
		Level:   domain.RiskLevelForScore(total),
		Rules:   rules,
	}

	if result.Allowed {
		metrics.RecordDecision(evaluatorFraud, metrics.OutcomeAllowed, started)
		return result, nil
	}

	s.raiseHighRisk(ctx, req, result)
	s.log.Info().
		Str("from_account_id", req.FromAccountID).
		Int("score", total).
		Strs("rules", rules).
		Msg("transfer denied by fraud score")
	metrics.RecordDecision(evaluatorFraud, metrics.OutcomeDenied, started)
	return result, nil
}

// failOpen runs a probe and converts any error into a zero contribution.
func (s *FraudServiceImpl) failOpen(ctx context.Context, probe string, req domain.TransferRequest, fn func(context.Context) (int, error)) int {
	score, err := fn(ctx)
	if err != nil {
		s.log.Warn().Err(err).
			Str("probe", probe).
			Str("from_account_id", req.FromAccountID).
			Msg("fraud probe failed open")
		metrics.RecordProbeFallback(probe)
		return 0
	}
	return max(score, 0)
}

func (s *FraudServiceImpl) raiseHighRisk(ctx context.Context, req domain.TransferRequest, result *domain.FraudScoreResult) {
	severity := domain.SeverityHigh
	if result.Score >= criticalFraudScore {
		severity = domain.SeverityCritical
	}

	score := result.Score
	alert := domain.NewAlert(domain.AlertTypeHighRiskTransaction, severity, req.FromAccountID, domain.RuleFraudScore,
		fmt.Sprintf("Fraud score %d at or above block threshold %d", score, s.policy.FraudBlockScore), s.probes.now())
	alert.Metadata = &domain.AlertMetadata{
		Factors:    append([]string(nil), result.Rules...),
		Score:      &score,
		RelatedIDs: []string{req.ToAccountID},
	}
	s.alerts.Raise(ctx, &alert)
}
