package domain

import (
	"strconv"
	"time"
)

// BuildAlertIdempotencyKey derives the dedup key for an alert:
// "account_id:rule:bucket", where bucket is CreatedAt truncated to window.
// Retries of the same evaluation inside one window collapse to one key.
func BuildAlertIdempotencyKey(alert *ComplianceAlert, window time.Duration) string {
	bucket := alert.CreatedAt.Truncate(window).Unix()
	return alert.AccountID + ":" + alert.Rule + ":" + strconv.FormatInt(bucket, 10)
}
