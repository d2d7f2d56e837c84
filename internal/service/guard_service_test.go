package service

import (
	"context"
	"errors"
	"testing"

	"transfer-risk-engine/internal/core/domain"
	"transfer-risk-engine/internal/core/ports/mocks"
	"transfer-risk-engine/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type guardTestDeps struct {
	svc        *GuardServiceImpl
	compliance *mocks.MockComplianceEvaluator
	fraud      *mocks.MockFraudScorer
}

func setupGuardService(t *testing.T) *guardTestDeps {
	ctrl := gomock.NewController(t)
	d := &guardTestDeps{
		compliance: mocks.NewMockComplianceEvaluator(ctrl),
		fraud:      mocks.NewMockFraudScorer(ctrl),
	}
	d.svc = NewGuardService(d.compliance, d.fraud, zerolog.Nop())
	return d
}

func TestGuardService_Authorize_Proceeds(t *testing.T) {
	d := setupGuardService(t)
	req := transferReq("500")

	compliance := &domain.ComplianceResult{Compliant: true, Alerts: []domain.ComplianceAlert{}}
	fraud := &domain.FraudScoreResult{Score: 10, Allowed: true, Level: domain.RiskLevelLow, Rules: []string{}}
	d.compliance.EXPECT().Evaluate(gomock.Any(), req).Return(compliance, nil)
	d.fraud.EXPECT().Score(gomock.Any(), req).Return(fraud, nil)

	auth, err := d.svc.Authorize(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, auth.Proceed)
	assert.Same(t, compliance, auth.Compliance)
	assert.Same(t, fraud, auth.Fraud)
}

func TestGuardService_Authorize_FraudDenies(t *testing.T) {
	d := setupGuardService(t)
	req := transferReq("500")

	d.compliance.EXPECT().Evaluate(gomock.Any(), req).Return(&domain.ComplianceResult{Compliant: true}, nil)
	d.fraud.EXPECT().Score(gomock.Any(), req).Return(&domain.FraudScoreResult{Score: 90, Allowed: false}, nil)

	auth, err := d.svc.Authorize(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, auth.Proceed)
	require.NotNil(t, auth.Fraud)
	assert.Equal(t, 90, auth.Fraud.Score)
}

func TestGuardService_Authorize_ComplianceVetoSkipsFraud(t *testing.T) {
	d := setupGuardService(t)
	req := transferReq("15000")

	blocked := &domain.ComplianceResult{Compliant: false, Reason: ReasonAMLLimit}
	d.compliance.EXPECT().Evaluate(gomock.Any(), req).Return(blocked, nil)
	// No fraud expectation: scoring must be skipped.

	auth, err := d.svc.Authorize(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, auth.Proceed)
	assert.Equal(t, ReasonAMLLimit, auth.Compliance.Reason)
	assert.Nil(t, auth.Fraud)
}

func TestGuardService_Authorize_ComplianceUnavailable_Blocks(t *testing.T) {
	d := setupGuardService(t)
	req := transferReq("500")

	d.compliance.EXPECT().Evaluate(gomock.Any(), req).
		Return(nil, apperror.ErrComplianceUnavailable(probeSanctions, context.DeadlineExceeded))

	auth, err := d.svc.Authorize(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeComplianceUnavailable))
	require.NotNil(t, auth)
	assert.False(t, auth.Proceed)
	assert.Nil(t, auth.Fraud)
}

func TestGuardService_Authorize_FraudError_Blocks(t *testing.T) {
	d := setupGuardService(t)
	req := transferReq("500")

	d.compliance.EXPECT().Evaluate(gomock.Any(), req).Return(&domain.ComplianceResult{Compliant: true}, nil)
	d.fraud.EXPECT().Score(gomock.Any(), req).Return(nil, errors.New("unexpected"))

	auth, err := d.svc.Authorize(context.Background(), req)
	require.Error(t, err)
	assert.False(t, auth.Proceed)
	assert.NotNil(t, auth.Compliance)
}

func TestGuardService_Authorize_InvalidRequest(t *testing.T) {
	d := setupGuardService(t)
	req := transferReq("500")
	req.ToAccountID = ""

	auth, err := d.svc.Authorize(context.Background(), req)
	assert.Nil(t, auth)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPStatus)
}
