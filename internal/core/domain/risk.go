package domain

// RiskLevel is the qualitative band of a numeric score.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// RiskLevelForScore maps a score onto the fixed bands.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskLevelCritical
	case score >= 40:
		return RiskLevelHigh
	case score >= 20:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// Fraud rule identifiers, reported in evaluation order.
const (
	FraudRuleHighVelocity     = "HIGH_VELOCITY"
	FraudRuleUnusualAmount    = "UNUSUAL_AMOUNT"
	FraudRuleHighRiskLocation = "HIGH_RISK_LOCATION"
	FraudRuleSuspiciousDevice = "SUSPICIOUS_DEVICE"
)

// ComplianceResult is the verdict of the AML/sanctions gate.
// Reason is set iff Compliant is false. Alerts lists the alerts recorded by this
// evaluation; one suppressed as a duplicate of a recent alert is omitted, while
// the verdict and Reason are unchanged.
type ComplianceResult struct {
	Compliant bool              `json:"compliant"`
	Reason    string            `json:"reason,omitempty"`
	Alerts    []ComplianceAlert `json:"alerts"`
}

// FraudScoreResult is the additive fraud model's recommendation.
type FraudScoreResult struct {
	Score   int       `json:"score"`
	Allowed bool      `json:"allowed"`
	Level   RiskLevel `json:"level"`
	Rules   []string  `json:"rules"`
}

// AccountRiskResult is the standing risk of an account, independent of any transfer.
type AccountRiskResult struct {
	AccountID string    `json:"account_id"`
	Score     int       `json:"score"`
	Level     RiskLevel `json:"level"`
	Factors   []string  `json:"factors"`
}

// Authorization is the combined decision returned to the payment workflow.
// Fraud is nil when compliance vetoed the transfer and scoring was skipped.
type Authorization struct {
	Proceed    bool              `json:"proceed"`
	Compliance *ComplianceResult `json:"compliance_result"`
	Fraud      *FraudScoreResult `json:"fraud_result,omitempty"`
}
