package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"transfer-risk-engine/internal/core/domain"
	"transfer-risk-engine/internal/core/ports"
	"transfer-risk-engine/internal/core/ports/mocks"
	"transfer-risk-engine/pkg/money"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fraudTestDeps struct {
	svc     *FraudServiceImpl
	history *mocks.MockTransferHistoryRepository
	ipRep   *mocks.MockIPReputationProvider
	devices *mocks.MockDeviceReputationProvider
	sink    *mocks.MockAlertSink
}

func setupFraudService(t *testing.T) *fraudTestDeps {
	ctrl := gomock.NewController(t)
	d := &fraudTestDeps{
		history: mocks.NewMockTransferHistoryRepository(ctrl),
		ipRep:   mocks.NewMockIPReputationProvider(ctrl),
		devices: mocks.NewMockDeviceReputationProvider(ctrl),
		sink:    mocks.NewMockAlertSink(ctrl),
	}
	d.svc = NewFraudService(d.history, d.ipRep, d.devices, d.sink, DefaultRiskPolicy(), zerolog.Nop())
	d.svc.probes.now = fixedClock
	return d
}

// expectHistory stubs the velocity count and the 7-day average.
func (d *fraudTestDeps) expectHistory(t *testing.T, recent int64, avg string) {
	d.history.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f ports.TransferFilter) (int64, error) {
			assert.Equal(t, "acc-a", f.FromAccountID)
			assert.Equal(t, testNow.Add(-time.Hour), f.Since)
			return recent, nil
		},
	)
	d.history.EXPECT().AverageAmount(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, f ports.TransferFilter) (decimal.Decimal, bool, error) {
			assert.Equal(t, []domain.TransferStatus{domain.TransferStatusCompleted}, f.Statuses)
			assert.Equal(t, testNow.Add(-7*24*time.Hour), f.Since)
			if avg == "" {
				return decimal.Zero, false, nil
			}
			return money.MustParse(avg), true, nil
		},
	)
}

func TestFraudService_Velocity_SixTransfers(t *testing.T) {
	d := setupFraudService(t)
	// Average equals the amount, so only velocity contributes.
	d.expectHistory(t, 6, "250")
	// Allowed transfers raise no alert; the sink mock has no expectations.

	result, err := d.svc.Score(context.Background(), transferReq("250"))
	require.NoError(t, err)
	assert.Equal(t, 60, result.Score)
	assert.Equal(t, []string{domain.FraudRuleHighVelocity}, result.Rules)
	assert.True(t, result.Allowed, "60 alone stays under the 70 threshold")
	assert.Equal(t, domain.RiskLevelHigh, result.Level)
}

func TestFraudService_Velocity_PushesPastThreshold(t *testing.T) {
	d := setupFraudService(t)
	// 60 velocity + 15 deviation (|1750 - 250| / 100) = 75.
	d.expectHistory(t, 6, "250")
	d.sink.EXPECT().Raise(gomock.Any(), gomock.Any()).Do(func(_ context.Context, a *domain.ComplianceAlert) {
		assert.Equal(t, domain.RuleFraudScore, a.Rule)
		assert.Equal(t, domain.SeverityHigh, a.Severity)
		require.NotNil(t, a.Metadata.Score)
		assert.Equal(t, 75, *a.Metadata.Score)
		assert.Equal(t, []string{domain.FraudRuleHighVelocity}, a.Metadata.Factors)
	})

	result, err := d.svc.Score(context.Background(), transferReq("1750"))
	require.NoError(t, err)
	assert.Equal(t, 75, result.Score)
	assert.False(t, result.Allowed)
	assert.Equal(t, domain.RiskLevelCritical, result.Level)
}

func TestFraudService_NoHistoryNoMetadata(t *testing.T) {
	d := setupFraudService(t)
	d.expectHistory(t, 0, "")

	// 50 units from an average of zero: floor(50/100) = 0.
	result, err := d.svc.Score(context.Background(), transferReq("50"))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.True(t, result.Allowed)
	assert.Equal(t, domain.RiskLevelLow, result.Level)
	assert.NotNil(t, result.Rules)
	assert.Empty(t, result.Rules)
}

func TestFraudService_AmountDeviation(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		avg    string
		score  int
		rules  []string
	}{
		{"below average", "100", "2600", 25, []string{}},
		{"no history counts from zero", "5100", "", 51, []string{domain.FraudRuleUnusualAmount}},
		{"exactly fifty does not trigger", "5000", "", 50, []string{}},
		{"capped at 100", "1000000", "10", 100, []string{domain.FraudRuleUnusualAmount}},
		{"sub-unit deviation", "100.99", "100", 0, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupFraudService(t)
			d.expectHistory(t, 0, tt.avg)
			d.sink.EXPECT().Raise(gomock.Any(), gomock.Any()).AnyTimes()

			result, err := d.svc.Score(context.Background(), transferReq(tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, tt.rules, result.Rules)
		})
	}
}

func TestFraudService_NoIPAddress_NoLocationScore(t *testing.T) {
	d := setupFraudService(t)
	d.expectHistory(t, 0, "50")
	// ipRep has no expectations: calling it would fail the test.

	req := transferReq("50")
	req.Metadata = &domain.TransferMetadata{}
	result, err := d.svc.Score(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.NotContains(t, result.Rules, domain.FraudRuleHighRiskLocation)
}

func TestFraudService_LocationAndDevice(t *testing.T) {
	d := setupFraudService(t)
	d.expectHistory(t, 1, "100")
	d.ipRep.EXPECT().IPRisk(gomock.Any(), "10.1.2.3").Return(60, nil)
	d.devices.EXPECT().DeviceRisk(gomock.Any(), "dev-1").Return(250, nil)
	d.sink.EXPECT().Raise(gomock.Any(), gomock.Any()).Do(func(_ context.Context, a *domain.ComplianceAlert) {
		assert.Equal(t, domain.SeverityCritical, a.Severity, "score >= 100 escalates")
	})

	req := transferReq("100")
	req.Metadata = &domain.TransferMetadata{IPAddress: strPtr("10.1.2.3"), DeviceID: strPtr("dev-1")}
	result, err := d.svc.Score(context.Background(), req)
	require.NoError(t, err)

	// velocity 10 + deviation 0 + location 60 + device capped at 100
	assert.Equal(t, 170, result.Score)
	assert.False(t, result.Allowed)
	assert.Equal(t, []string{domain.FraudRuleHighRiskLocation, domain.FraudRuleSuspiciousDevice}, result.Rules)
}

func TestFraudService_ProbeFailures_FailOpen(t *testing.T) {
	d := setupFraudService(t)
	d.history.EXPECT().Count(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("replica lag"))
	d.history.EXPECT().AverageAmount(gomock.Any(), gomock.Any()).Return(decimal.Zero, false, context.DeadlineExceeded)
	d.ipRep.EXPECT().IPRisk(gomock.Any(), gomock.Any()).Return(0, errors.New("geo service down"))
	d.devices.EXPECT().DeviceRisk(gomock.Any(), gomock.Any()).Return(0, errors.New("fingerprint service down"))

	req := transferReq("99999")
	req.Metadata = &domain.TransferMetadata{IPAddress: strPtr("203.0.113.9"), DeviceID: strPtr("d")}
	result, err := d.svc.Score(context.Background(), req)
	require.NoError(t, err, "probe failures never surface as errors")
	assert.Equal(t, 0, result.Score)
	assert.True(t, result.Allowed)
	assert.Empty(t, result.Rules)
}

func TestFraudService_RulesOrder(t *testing.T) {
	d := setupFraudService(t)
	d.expectHistory(t, 9, "")
	d.ipRep.EXPECT().IPRisk(gomock.Any(), gomock.Any()).Return(55, nil)
	d.devices.EXPECT().DeviceRisk(gomock.Any(), gomock.Any()).Return(51, nil)
	d.sink.EXPECT().Raise(gomock.Any(), gomock.Any())

	req := transferReq("20000")
	req.Metadata = &domain.TransferMetadata{IPAddress: strPtr("192.168.0.1"), DeviceID: strPtr("abc")}
	result, err := d.svc.Score(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{
		domain.FraudRuleHighVelocity,
		domain.FraudRuleUnusualAmount,
		domain.FraudRuleHighRiskLocation,
		domain.FraudRuleSuspiciousDevice,
	}, result.Rules)
	assert.Equal(t, 90+100+55+51, result.Score)
}

func TestFraudService_InvalidRequest(t *testing.T) {
	d := setupFraudService(t)

	_, err := d.svc.Score(context.Background(), transferReq("0"))
	assert.Error(t, err)
}
