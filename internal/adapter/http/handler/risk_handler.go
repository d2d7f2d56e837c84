package handler

import (
	"errors"
	"net/http"

	"transfer-risk-engine/internal/adapter/http/dto"
	"transfer-risk-engine/internal/core/domain"
	"transfer-risk-engine/internal/core/ports"
	"transfer-risk-engine/pkg/apperror"
	"transfer-risk-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// RiskHandler exposes the evaluators over HTTP.
type RiskHandler struct {
	compliance ports.ComplianceEvaluator
	fraud      ports.FraudScorer
	accounts   ports.AccountRiskAssessor
	guard      ports.TransactionGuard
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(
	compliance ports.ComplianceEvaluator,
	fraud ports.FraudScorer,
	accounts ports.AccountRiskAssessor,
	guard ports.TransactionGuard,
) *RiskHandler {
	return &RiskHandler{compliance: compliance, fraud: fraud, accounts: accounts, guard: guard}
}

// EvaluateCompliance handles POST /api/v1/risk/compliance.
func (h *RiskHandler) EvaluateCompliance(c *gin.Context) {
	req, ok := bindTransfer(c)
	if !ok {
		return
	}

	result, err := h.compliance.Evaluate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Decided(c, response.DecisionFor(result.Compliant), result)
}

// ScoreFraud handles POST /api/v1/risk/fraud-score.
func (h *RiskHandler) ScoreFraud(c *gin.Context) {
	req, ok := bindTransfer(c)
	if !ok {
		return
	}

	result, err := h.fraud.Score(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Decided(c, response.DecisionFor(result.Allowed), result)
}

// Authorize handles POST /api/v1/risk/authorize.
//
// When a hard compliance check cannot run the guard fails closed: the reply is
// the error status (503, RISK_001) with "decision": "BLOCK" and the
// {"proceed": false} authorization as data. Callers must not move funds on
// any non-200 reply.
func (h *RiskHandler) Authorize(c *gin.Context) {
	req, ok := bindTransfer(c)
	if !ok {
		return
	}

	result, err := h.guard.Authorize(c.Request.Context(), req)
	if err != nil {
		if result != nil {
			response.Blocked(c, err, result)
			return
		}
		response.Error(c, err)
		return
	}
	response.Decided(c, response.DecisionFor(result.Proceed), result)
}

// AssessAccount handles GET /api/v1/risk/accounts/:id.
func (h *RiskHandler) AssessAccount(c *gin.Context) {
	var uri dto.AccountRiskURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.accounts.Assess(c.Request.Context(), uri.AccountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// bindTransfer decodes and validates the body, writing the error response on failure.
func bindTransfer(c *gin.Context) (domain.TransferRequest, bool) {
	var body dto.TransferRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, apperror.ErrPayloadTooLarge())
		} else {
			response.Error(c, apperror.Validation(err.Error()))
		}
		return domain.TransferRequest{}, false
	}
	if body.Amount.Sign() <= 0 {
		response.Error(c, apperror.ErrInvalidAmount())
		return domain.TransferRequest{}, false
	}
	return body.ToDomain(), true
}
