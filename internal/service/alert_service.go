package service

import (
	"context"
	"time"

	"transfer-risk-engine/internal/core/domain"
	"transfer-risk-engine/internal/core/ports"
	"transfer-risk-engine/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// alertWriteTimeout bounds the whole dedup, persist and publish sequence.
const alertWriteTimeout = 5 * time.Second

type alertService struct {
	repo        ports.AlertRepository
	deduper     ports.AlertDeduper
	publisher   ports.AlertPublisher
	dedupWindow time.Duration
	log         zerolog.Logger
}

// NewAlertService creates the best-effort alert sink.
// deduper and publisher may be nil. A zero dedupWindow disables deduplication.
func NewAlertService(
	repo ports.AlertRepository,
	deduper ports.AlertDeduper,
	publisher ports.AlertPublisher,
	dedupWindow time.Duration,
	log zerolog.Logger,
) ports.AlertSink {
	return &alertService{
		repo:        repo,
		deduper:     deduper,
		publisher:   publisher,
		dedupWindow: dedupWindow,
		log:         log,
	}
}

// Raise records an alert. Failures are logged and counted, never returned.
// The write outlives a cancelled request context. Only a dedup hit reports
// suppressed; a failed persist or publish still counts as raised.
func (s *alertService) Raise(ctx context.Context, alert *domain.ComplianceAlert) bool {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertWriteTimeout)
	defer cancel()

	metrics.RecordAlertRaised(alert.Rule, string(alert.Severity))
	s.log.Info().
		Str("alert_id", alert.ID.String()).
		Str("type", string(alert.Type)).
		Str("severity", string(alert.Severity)).
		Str("account_id", alert.AccountID).
		Str("rule", alert.Rule).
		Msg("alert")

	if s.deduper != nil && s.dedupWindow > 0 {
		key := domain.BuildAlertIdempotencyKey(alert, s.dedupWindow)
		claimed, err := s.deduper.Claim(ctx, key, s.dedupWindow)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("key", key).Msg("alert dedup check failed, recording anyway")
			metrics.RecordAlertSinkFailure(metrics.StageDedup)
		case !claimed:
			s.log.Debug().Str("key", key).Msg("duplicate alert suppressed")
			metrics.RecordAlertDeduplicated()
			return true
		}
	}

	if s.repo != nil {
		id, err := s.repo.Create(ctx, alert)
		if err != nil {
			s.log.Warn().Err(err).Str("alert_id", alert.ID.String()).Str("rule", alert.Rule).Msg("failed to persist alert")
			metrics.RecordAlertSinkFailure(metrics.StagePersist)
		} else if id != uuid.Nil {
			alert.ID = id
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, alert); err != nil {
			s.log.Warn().Err(err).Str("alert_id", alert.ID.String()).Msg("failed to publish alert")
			metrics.RecordAlertSinkFailure(metrics.StagePublish)
		}
	}
	return false
}
