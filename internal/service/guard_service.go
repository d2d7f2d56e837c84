package service

import (
	"context"
	"time"

	"transfer-risk-engine/internal/core/domain"
	"transfer-risk-engine/internal/core/ports"
	"transfer-risk-engine/pkg/apperror"
	"transfer-risk-engine/pkg/metrics"

	"github.com/rs/zerolog"
)

const evaluatorGuard = "guard"

// GuardServiceImpl implements ports.TransactionGuard.
// Compliance runs first and its veto skips fraud scoring.
type GuardServiceImpl struct {
	compliance ports.ComplianceEvaluator
	fraud      ports.FraudScorer
	log        zerolog.Logger
}

// NewGuardService creates a new GuardServiceImpl.
func NewGuardService(compliance ports.ComplianceEvaluator, fraud ports.FraudScorer, log zerolog.Logger) *GuardServiceImpl {
	return &GuardServiceImpl{
		compliance: compliance,
		fraud:      fraud,
		log:        log,
	}
}

// Authorize decides whether the transfer may proceed.
// On error the returned authorization, if any, always has Proceed=false.
func (s *GuardServiceImpl) Authorize(ctx context.Context, req domain.TransferRequest) (*domain.Authorization, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	started := time.Now()
	compliance, err := s.compliance.Evaluate(ctx, req)
	if err != nil {
		s.log.Warn().Err(err).Str("from_account_id", req.FromAccountID).Msg("compliance unavailable, blocking transfer")
		metrics.RecordDecision(evaluatorGuard, metrics.OutcomeUnavailable, started)
		return &domain.Authorization{Proceed: false}, err
	}
	if !compliance.Compliant {
		metrics.RecordDecision(evaluatorGuard, metrics.OutcomeBlocked, started)
		return &domain.Authorization{Proceed: false, Compliance: compliance}, nil
	}

	fraud, err := s.fraud.Score(ctx, req)
	if err != nil {
		s.log.Error().Err(err).Str("from_account_id", req.FromAccountID).Msg("fraud scoring failed, blocking transfer")
		metrics.RecordDecision(evaluatorGuard, metrics.OutcomeUnavailable, started)
		return &domain.Authorization{Proceed: false, Compliance: compliance}, err
	}

	outcome := metrics.OutcomeAllowed
	if !fraud.Allowed {
		outcome = metrics.OutcomeDenied
	}
	metrics.RecordDecision(evaluatorGuard, outcome, started)

	return &domain.Authorization{
		Proceed:    fraud.Allowed,
		Compliance: compliance,
		Fraud:      fraud,
	}, nil
}
