package ports

import (
	"context"
	"time"

	"transfer-risk-engine/internal/core/domain"
)

// --- Service Ports (Business Logic) ---

// ComplianceEvaluator is the rule-based AML/sanctions gate.
// A non-nil error means a hard check could not be evaluated; callers must block.
type ComplianceEvaluator interface {
	Evaluate(ctx context.Context, req domain.TransferRequest) (*domain.ComplianceResult, error)
}

// FraudScorer is the additive fraud model. Probe failures never surface as errors.
type FraudScorer interface {
	Score(ctx context.Context, req domain.TransferRequest) (*domain.FraudScoreResult, error)
}

// AccountRiskAssessor computes the standing risk of a named account.
type AccountRiskAssessor interface {
	Assess(ctx context.Context, accountID string) (*domain.AccountRiskResult, error)
}

// TransactionGuard composes compliance and fraud scoring ahead of funds movement.
type TransactionGuard interface {
	Authorize(ctx context.Context, req domain.TransferRequest) (*domain.Authorization, error)
}

// AlertSink records alerts best-effort. It never fails the caller.
// Raise reports true when the alert duplicates one already recorded in the
// dedup window and was dropped without being stored or published.
type AlertSink interface {
	Raise(ctx context.Context, alert *domain.ComplianceAlert) (suppressed bool)
}

// --- Collaborator Ports ---

// IPReputationProvider scores how risky a client IP looks (0 = clean).
type IPReputationProvider interface {
	IPRisk(ctx context.Context, ip string) (int, error)
}

// DeviceReputationProvider scores how risky a device identifier looks (0 = clean).
type DeviceReputationProvider interface {
	DeviceRisk(ctx context.Context, deviceID string) (int, error)
}

// AlertDeduper claims an idempotency key for an alert.
// Returns true if the key is new and the alert should be recorded.
type AlertDeduper interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// AlertPublisher fans recorded alerts out to downstream consumers.
type AlertPublisher interface {
	Publish(ctx context.Context, alert *domain.ComplianceAlert) error
}

// TokenService issues and validates service-to-service JWTs.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
	Issuer  string
}
