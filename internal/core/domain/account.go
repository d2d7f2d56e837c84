package domain

import "time"

// KYCStatus is the identity verification state of a user.
type KYCStatus string

const (
	KYCStatusVerified   KYCStatus = "verified"
	KYCStatusPending    KYCStatus = "pending"
	KYCStatusRejected   KYCStatus = "rejected"
	KYCStatusUnverified KYCStatus = "unverified"
)

// Account is owned by account management; the risk engine reads age and country.
type Account struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Country   *string   `json:"country,omitempty"` // ISO 3166 alpha-2 of the owning user
}

// Age returns how long the account has existed at now.
func (a *Account) Age(now time.Time) time.Duration {
	return now.Sub(a.CreatedAt)
}

// CountryCode returns the owning user's country, or "" when unknown.
func (a *Account) CountryCode() string {
	if a == nil || a.Country == nil {
		return ""
	}
	return *a.Country
}

// User is the identity record behind one or more accounts.
type User struct {
	ID        string    `json:"id"`
	KYCStatus KYCStatus `json:"kyc_status"`
	Country   *string   `json:"country,omitempty"`
}

// IsVerified reports whether KYC has completed. A nil user is not verified.
func (u *User) IsVerified() bool {
	return u != nil && u.KYCStatus == KYCStatusVerified
}
