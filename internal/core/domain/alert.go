package domain

import (
	"time"

	"github.com/google/uuid"
)

// AlertType classifies a compliance alert.
type AlertType string

const (
	AlertTypeAML                 AlertType = "AML"
	AlertTypeSanctions           AlertType = "SANCTIONS"
	AlertTypeHighRiskTransaction AlertType = "HIGH_RISK_TRANSACTION"
)

// Severity orders alerts for back-office triage.
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// AlertStatus is the review state of an alert.
type AlertStatus string

const (
	AlertStatusPending  AlertStatus = "PENDING"
	AlertStatusResolved AlertStatus = "RESOLVED"
)

// Rule identifiers. Used on alerts and as the dedup discriminator.
const (
	RuleDailyLimit     = "DAILY_LIMIT"
	RuleStructuring    = "STRUCTURING_PATTERN"
	RuleSanctions      = "SANCTIONS_COUNTRY"
	RuleRoundAmount    = "ROUND_AMOUNT_STRUCTURING"
	RuleUnverifiedUser = "UNVERIFIED_LARGE_TRANSFER"
	RuleFraudScore     = "FRAUD_SCORE"
)

// AlertMetadata is the optional structured context attached to an alert.
type AlertMetadata struct {
	Factors    []string `json:"factors,omitempty"`
	Score      *int     `json:"score,omitempty"`
	RelatedIDs []string `json:"related_ids,omitempty"`
}

// ComplianceAlert is an append-only record created as a side effect of evaluation.
type ComplianceAlert struct {
	ID          uuid.UUID      `json:"id"`
	Type        AlertType      `json:"type"`
	Severity    Severity       `json:"severity"`
	AccountID   string         `json:"account_id"`
	Rule        string         `json:"rule"`
	Description string         `json:"description"`
	Status      AlertStatus    `json:"status"`
	Metadata    *AlertMetadata `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewAlert builds a PENDING alert stamped with a fresh id.
func NewAlert(t AlertType, sev Severity, accountID, rule, description string, now time.Time) ComplianceAlert {
	return ComplianceAlert{
		ID:          uuid.New(),
		Type:        t,
		Severity:    sev,
		AccountID:   accountID,
		Rule:        rule,
		Description: description,
		Status:      AlertStatusPending,
		CreatedAt:   now,
	}
}
