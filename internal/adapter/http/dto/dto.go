package dto

import (
	"strings"

	"transfer-risk-engine/internal/core/domain"

	"github.com/shopspring/decimal"
)

// TransferMetadata is the optional client context of a transfer.
type TransferMetadata struct {
	IPAddress *string `json:"ip_address,omitempty" binding:"omitempty,ip"`
	DeviceID  *string `json:"device_id,omitempty" binding:"omitempty,min=1,max=128"`
}

// TransferRequest is the request body shared by the compliance, fraud and authorize endpoints.
// Amount accepts a JSON string or number and is never read through float64.
type TransferRequest struct {
	FromAccountID string            `json:"from_account_id" binding:"required,account_id"`
	ToAccountID   string            `json:"to_account_id" binding:"required,account_id"`
	Amount        *decimal.Decimal  `json:"amount" binding:"required"`
	Currency      string            `json:"currency" binding:"required,len=3,iso4217"`
	UserID        *string           `json:"user_id,omitempty" binding:"omitempty,account_id"`
	Metadata      *TransferMetadata `json:"metadata,omitempty"`
}

// ToDomain converts the bound body into the evaluators' request type.
func (r *TransferRequest) ToDomain() domain.TransferRequest {
	req := domain.TransferRequest{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Currency:      strings.ToUpper(r.Currency),
		UserID:        r.UserID,
	}
	if r.Amount != nil {
		req.Amount = *r.Amount
	}
	if r.Metadata != nil {
		req.Metadata = &domain.TransferMetadata{
			IPAddress: r.Metadata.IPAddress,
			DeviceID:  r.Metadata.DeviceID,
		}
	}
	return req
}

// AccountRiskURI binds the account id path parameter.
type AccountRiskURI struct {
	AccountID string `uri:"id" binding:"required,account_id"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
}

// DependencyStatus reports one backing service.
type DependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
