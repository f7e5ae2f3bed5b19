package models

import "time"

// IdempotencyKey stores the first completed response for a given request
// hash, so retried document-generation POSTs do not regenerate files.
type IdempotencyKey struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Key            string     `json:"key" gorm:"size:128;uniqueIndex"` // header value
	RequestHash    string     `json:"request_hash" gorm:"size:64"`     // sha256 of method|path|body
	Method         string     `json:"method" gorm:"size:10"`
	Path           string     `json:"path" gorm:"size:255"`
	ResponseStatus int        `json:"response_status"`     // 0 => not completed yet
	ResponseBody   []byte     `json:"-" gorm:"type:bytea"` // raw response body
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}
