package models

import "time"

// Recognized project priorities. Anything else is coerced to PriorityMedium.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// NormalizePriority coerces unrecognized priority values to PriorityMedium.
// Invalid priorities are never rejected; silent normalization is the
// documented contract.
func NormalizePriority(p string) string {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p
	default:
		return PriorityMedium
	}
}

// Project is one entry in a user's ordered list. Image holds base64-encoded
// data as supplied by the client. OrderIndex ranks unpinned entries; pinned
// entries always sort first regardless of it.
type Project struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Priority    string
	Image       string
	Pinned      bool
	OrderIndex  int64
	CreatedAt   time.Time
}
