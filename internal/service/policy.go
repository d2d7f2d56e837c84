package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"transfer-risk-engine/config"
	"transfer-risk-engine/pkg/money"

	"github.com/shopspring/decimal"
)

// RiskPolicy carries every threshold the evaluators apply.
// DefaultRiskPolicy reproduces the reference behaviour.
type RiskPolicy struct {
	// Compliance
	DailyLimit          decimal.Decimal
	DailyWindow         time.Duration
	StructuringGap      time.Duration
	SanctionedCountries map[string]struct{}
	RoundAmountUnit     decimal.Decimal
	RoundAmountMin      decimal.Decimal
	RoundAmountCount    int
	UnverifiedLimit     decimal.Decimal

	// Fraud
	FraudBlockScore   int
	RuleTriggerScore  int
	VelocityWindow    time.Duration
	VelocityPoints    int
	DeviationWindow   time.Duration
	DeviationPerPoint decimal.Decimal
	DeviationCap      int

	// Account risk
	NewAccountAge   time.Duration
	FailedWindow    time.Duration
	FailedThreshold int64

	// QueryTimeout bounds every single store read. Zero disables the bound.
	QueryTimeout time.Duration
}

// DefaultRiskPolicy returns the reference thresholds.
func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{
		DailyLimit:          money.MustParse("10000"),
		DailyWindow:         24 * time.Hour,
		StructuringGap:      5 * time.Minute,
		SanctionedCountries: countrySet([]string{"KP", "IR", "CU", "SY"}),
		RoundAmountUnit:     money.MustParse("1000"),
		RoundAmountMin:      money.MustParse("10000"),
		RoundAmountCount:    3,
		UnverifiedLimit:     money.MustParse("1000"),

		FraudBlockScore:   70,
		RuleTriggerScore:  50,
		VelocityWindow:    time.Hour,
		VelocityPoints:    10,
		DeviationWindow:   7 * 24 * time.Hour,
		DeviationPerPoint: money.MustParse("100"),
		DeviationCap:      100,

		NewAccountAge:   7 * 24 * time.Hour,
		FailedWindow:    30 * 24 * time.Hour,
		FailedThreshold: 5,

		QueryTimeout: 2 * time.Second,
	}
}

// PolicyFromConfig parses the risk section into a RiskPolicy.
func PolicyFromConfig(cfg config.RiskConfig) (RiskPolicy, error) {
	p := RiskPolicy{
		DailyWindow:         cfg.DailyWindow,
		StructuringGap:      cfg.StructuringGap,
		SanctionedCountries: countrySet(cfg.SanctionedCountries),
		RoundAmountCount:    cfg.RoundAmountCount,
		FraudBlockScore:     cfg.FraudBlockScore,
		RuleTriggerScore:    cfg.RuleTriggerScore,
		VelocityWindow:      cfg.VelocityWindow,
		VelocityPoints:      cfg.VelocityPoints,
		DeviationWindow:     cfg.DeviationWindow,
		DeviationCap:        cfg.DeviationCap,
		NewAccountAge:       cfg.NewAccountAge,
		FailedWindow:        cfg.FailedWindow,
		FailedThreshold:     cfg.FailedThreshold,
		QueryTimeout:        cfg.QueryTimeout,
	}

	amounts := []struct {
		key string
		raw string
		dst *decimal.Decimal
	}{
		{"risk.daily_limit", cfg.DailyLimit, &p.DailyLimit},
		{"risk.round_amount_unit", cfg.RoundAmountUnit, &p.RoundAmountUnit},
		{"risk.round_amount_min", cfg.RoundAmountMin, &p.RoundAmountMin},
		{"risk.unverified_limit", cfg.UnverifiedLimit, &p.UnverifiedLimit},
		{"risk.deviation_per_point", cfg.DeviationPerPoint, &p.DeviationPerPoint},
	}
	for _, a := range amounts {
		d, err := money.Parse(a.raw)
		if err != nil {
			return RiskPolicy{}, fmt.Errorf("%s: %w", a.key, err)
		}
		*a.dst = d
	}

	if err := p.Validate(); err != nil {
		return RiskPolicy{}, err
	}
	return p, nil
}

// Validate rejects policies that would silently disable a check.
func (p RiskPolicy) Validate() error {
	var errs []error
	if p.DailyLimit.Sign() <= 0 {
		errs = append(errs, errors.New("daily limit must be positive"))
	}
	if p.DailyWindow <= 0 || p.VelocityWindow <= 0 || p.DeviationWindow <= 0 || p.FailedWindow <= 0 {
		errs = append(errs, errors.New("lookback windows must be positive"))
	}
	if p.StructuringGap <= 0 {
		errs = append(errs, errors.New("structuring gap must be positive"))
	}
	if p.RoundAmountUnit.Sign() <= 0 {
		errs = append(errs, errors.New("round amount unit must be positive"))
	}
	if p.DeviationPerPoint.Sign() <= 0 {
		errs = append(errs, errors.New("deviation per point must be positive"))
	}
	if p.FraudBlockScore <= 0 {
		errs = append(errs, errors.New("fraud block score must be positive"))
	}
	if p.QueryTimeout < 0 {
		errs = append(errs, errors.New("query timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// IsSanctioned reports whether an ISO country code is on the sanctioned list.
// An empty code is never sanctioned.
func (p RiskPolicy) IsSanctioned(country string) bool {
	if country == "" {
		return false
	}
	_, ok := p.SanctionedCountries[strings.ToUpper(country)]
	return ok
}

func countrySet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}
