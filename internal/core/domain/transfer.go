package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus represents the lifecycle state of a recorded transfer.
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "PENDING"
	TransferStatusCompleted TransferStatus = "COMPLETED"
	TransferStatusFailed    TransferStatus = "FAILED"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// TransferMetadata carries optional client context used by the location and device probes.
type TransferMetadata struct {
	IPAddress *string `json:"ip_address,omitempty"`
	DeviceID  *string `json:"device_id,omitempty"`
}

// TransferRequest is an outbound money movement about to be committed.
// It is evaluated and discarded, never persisted in this form.
type TransferRequest struct {
	FromAccountID string            `json:"from_account_id"`
	ToAccountID   string            `json:"to_account_id"`
	Amount        decimal.Decimal   `json:"amount"`
	Currency      string            `json:"currency"`
	UserID        *string           `json:"user_id,omitempty"`
	Metadata      *TransferMetadata `json:"metadata,omitempty"`
}

// Validate checks the fields every evaluator relies on.
func (r *TransferRequest) Validate() error {
	switch {
	case r.FromAccountID == "":
		return errors.New("from_account_id is required")
	case r.ToAccountID == "":
		return errors.New("to_account_id is required")
	case r.Amount.Sign() <= 0:
		return errors.New("amount must be greater than zero")
	case r.Currency == "":
		return errors.New("currency is required")
	case !currencyCodeRe.MatchString(r.Currency):
		return errors.New("currency must be an ISO 4217 code")
	}
	return nil
}

// IPAddress returns the client IP, or "" when absent.
func (r *TransferRequest) IPAddress() string {
	if r.Metadata == nil || r.Metadata.IPAddress == nil {
		return ""
	}
	return *r.Metadata.IPAddress
}

// DeviceID returns the client device identifier, or "" when absent.
func (r *TransferRequest) DeviceID() string {
	if r.Metadata == nil || r.Metadata.DeviceID == nil {
		return ""
	}
	return *r.Metadata.DeviceID
}

// TransferRecord is a row of the transfer history log. Read-only to the risk engine.
type TransferRecord struct {
	ID            string          `json:"id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        TransferStatus  `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}
