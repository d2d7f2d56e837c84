package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"transfer-risk-engine/internal/adapter/storage/memory"
	redisStore "transfer-risk-engine/internal/adapter/storage/redis"
	"transfer-risk-engine/internal/core/domain"
	"transfer-risk-engine/internal/core/ports"
	"transfer-risk-engine/pkg/money"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// riskEngine wires the real services over the in-memory store.
type riskEngine struct {
	store      *memory.Store
	compliance *ComplianceServiceImpl
	fraud      *FraudServiceImpl
	accounts   *AccountRiskServiceImpl
	guard      *GuardServiceImpl
}

func newRiskEngine(t *testing.T, deduper ports.AlertDeduper) *riskEngine {
	t.Helper()

	store := memory.New()
	store.Users.Put(domain.User{ID: "user-acc-a", KYCStatus: domain.KYCStatusVerified, Country: strPtr("US")})
	store.Users.Put(domain.User{ID: "user-acc-b", KYCStatus: domain.KYCStatusVerified, Country: strPtr("US")})
	store.Accounts.Put(*testAccount("acc-a", ""))
	store.Accounts.Put(*testAccount("acc-b", ""))

	policy := DefaultRiskPolicy()
	log := zerolog.Nop()
	sink := NewAlertService(store.Alerts, deduper, nil, 10*time.Minute, log)

	compliance := NewComplianceService(store.Transfers, store.Accounts, store.Users, sink, policy, log)
	compliance.probes.now = fixedClock
	fraud := NewFraudService(store.Transfers, NewHeuristicIPReputation(store.Transfers, policy.QueryTimeout),
		NewHeuristicDeviceReputation(store.Transfers, policy.QueryTimeout), sink, policy, log)
	fraud.probes.now = fixedClock
	accounts := NewAccountRiskService(store.Transfers, store.Accounts, store.Users, store.Alerts, policy, log)
	accounts.probes.now = fixedClock

	return &riskEngine{
		store:      store,
		compliance: compliance,
		fraud:      fraud,
		accounts:   accounts,
		guard:      NewGuardService(compliance, fraud, log),
	}
}

func (e *riskEngine) addTransfers(amount string, status domain.TransferStatus, times ...time.Time) {
	for i, at := range times {
		e.store.Transfers.Add(domain.TransferRecord{
			ID:            fmt.Sprintf("tx-%s-%d", at.Format("150405"), i),
			FromAccountID: "acc-a",
			ToAccountID:   "acc-b",
			Amount:        money.MustParse(amount),
			Currency:      "USD",
			Status:        status,
			CreatedAt:     at,
		})
	}
}

func TestScenario_CompliantTransfer(t *testing.T) {
	e := newRiskEngine(t, nil)
	e.store.Transfers.Add(
		domain.TransferRecord{ID: "t1", FromAccountID: "acc-a", ToAccountID: "acc-b", Amount: money.MustParse("500"), Currency: "USD", Status: domain.TransferStatusCompleted, CreatedAt: testNow.Add(-9 * time.Hour)},
		domain.TransferRecord{ID: "t2", FromAccountID: "acc-a", ToAccountID: "acc-b", Amount: money.MustParse("700"), Currency: "USD", Status: domain.TransferStatusCompleted, CreatedAt: testNow.Add(-5 * time.Hour)},
		domain.TransferRecord{ID: "t3", FromAccountID: "acc-a", ToAccountID: "acc-b", Amount: money.MustParse("800"), Currency: "USD", Status: domain.TransferStatusPending, CreatedAt: testNow.Add(-2 * time.Hour)},
	)

	result, err := e.compliance.Evaluate(context.Background(), transferReq("500"))
	require.NoError(t, err)
	assert.True(t, result.Compliant)
	assert.Empty(t, result.Reason)
	assert.Empty(t, result.Alerts)
	assert.Empty(t, e.store.Alerts.All())
}

func TestScenario_LargeTransferFromQuietAccount(t *testing.T) {
	e := newRiskEngine(t, nil)

	result, err := e.compliance.Evaluate(context.Background(), transferReq("15000"))
	require.NoError(t, err)
	assert.False(t, result.Compliant)
	assert.Contains(t, result.Reason, "AML limits")
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, domain.SeverityHigh, result.Alerts[0].Severity)

	stored := e.store.Alerts.All()
	require.Len(t, stored, 1)
	assert.Equal(t, domain.RuleDailyLimit, stored[0].Rule)
	assert.Equal(t, domain.AlertStatusPending, stored[0].Status)
}

func TestScenario_QuietAccountScoresZero(t *testing.T) {
	e := newRiskEngine(t, nil)
	e.addTransfers("500", domain.TransferStatusCompleted,
		testNow.Add(-72*time.Hour), testNow.Add(-48*time.Hour))

	result, err := e.fraud.Score(context.Background(), transferReq("500"))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.True(t, result.Allowed)
	assert.Equal(t, domain.RiskLevelLow, result.Level)
	assert.NotNil(t, result.Rules)
	assert.Empty(t, result.Rules)
}

func TestScenario_AuthorizeVetoSkipsFraud(t *testing.T) {
	e := newRiskEngine(t, nil)
	e.store.Users.Put(domain.User{ID: "user-acc-b", KYCStatus: domain.KYCStatusVerified, Country: strPtr("IR")})

	auth, err := e.guard.Authorize(context.Background(), transferReq("50"))
	require.NoError(t, err)
	assert.False(t, auth.Proceed)
	require.NotNil(t, auth.Compliance)
	assert.Equal(t, ReasonSanctions, auth.Compliance.Reason)
	assert.Nil(t, auth.Fraud)
}

func TestScenario_SanctionedRecipientUserBlocks(t *testing.T) {
	e := newRiskEngine(t, nil)
	// the recipient account carries no country; only its owner does
	e.store.Users.Put(domain.User{ID: "user-acc-b", KYCStatus: domain.KYCStatusVerified, Country: strPtr("KP")})

	result, err := e.compliance.Evaluate(context.Background(), transferReq("50"))
	require.NoError(t, err)
	assert.False(t, result.Compliant)
	assert.Equal(t, ReasonSanctions, result.Reason)
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, domain.RuleSanctions, result.Alerts[0].Rule)
}

func TestScenario_AuthorizeBusyAccountDenied(t *testing.T) {
	e := newRiskEngine(t, nil)
	// eight small transfers in the last hour, six minutes apart
	times := make([]time.Time, 0, 8)
	for i := 1; i <= 8; i++ {
		times = append(times, testNow.Add(-time.Duration(i)*6*time.Minute))
	}
	e.addTransfers("10", domain.TransferStatusCompleted, times...)

	auth, err := e.guard.Authorize(context.Background(), transferReq("900"))
	require.NoError(t, err)
	assert.True(t, auth.Compliance.Compliant)
	require.NotNil(t, auth.Fraud)
	// velocity 80 + deviation floor(890/100)=8
	assert.Equal(t, 88, auth.Fraud.Score)
	assert.False(t, auth.Fraud.Allowed)
	assert.False(t, auth.Proceed)
	assert.Equal(t, []string{domain.FraudRuleHighVelocity}, auth.Fraud.Rules)

	stored := e.store.Alerts.All()
	require.Len(t, stored, 1)
	assert.Equal(t, domain.AlertTypeHighRiskTransaction, stored[0].Type)
}

func TestScenario_AccountRiskReflectsAlerts(t *testing.T) {
	e := newRiskEngine(t, nil)
	_, err := e.compliance.Evaluate(context.Background(), transferReq("15000"))
	require.NoError(t, err)

	result, err := e.accounts.Assess(context.Background(), "acc-a")
	require.NoError(t, err)
	assert.Equal(t, 20, result.Score)
	assert.Equal(t, domain.RiskLevelMedium, result.Level)
	assert.Equal(t, []string{"1 pending compliance alerts"}, result.Factors)
}

func TestScenario_RedisDedupSuppressesRepeatAlerts(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	e := newRiskEngine(t, redisStore.NewAlertDedupStore(client))

	var returned []domain.ComplianceAlert
	for i := 0; i < 3; i++ {
		result, err := e.compliance.Evaluate(context.Background(), transferReq("15000"))
		require.NoError(t, err)
		assert.False(t, result.Compliant)
		assert.Equal(t, ReasonAMLLimit, result.Reason)
		returned = append(returned, result.Alerts...)
	}

	stored := e.store.Alerts.All()
	require.Len(t, stored, 1)
	require.Len(t, returned, 1, "repeats do not hand out unrecorded alert ids")
	assert.Equal(t, stored[0].ID, returned[0].ID)
}
