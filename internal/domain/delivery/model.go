package delivery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/odds-pipeline/internal/domain/record"
)

// ErrorEntry records one record that exhausted its delivery attempts.
type ErrorEntry struct {
	Record    string    `json:"record"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats is a snapshot of the delivery counters.
type Stats struct {
	Sent        int          `json:"sent"`
	Failed      int          `json:"failed"`
	Errors      []ErrorEntry `json:"errors"`
	SuccessRate string       `json:"success_rate"`
}

// SuccessRate formats sent/(sent+failed) as "xx.xx%", or "0%" before any attempt.
func SuccessRate(sent, failed int) string {
	total := sent + failed
	if total <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", float64(sent)/float64(total)*100)
}

// Response is the decoded body of a successful ingestion call.
type Response map[string]any

// Sender performs exactly one delivery attempt.
type Sender interface {
	Send(ctx context.Context, rec record.CanonicalRecord) (Response, error)
}

// Ledger remembers the fingerprint of the last delivered record per key.
type Ledger interface {
	Seen(ctx context.Context, key, fingerprint string) (bool, error)
	Remember(ctx context.Context, key, fingerprint string) error
}

// ResponseError is a single non-success answer from the ingestion API.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("API Error %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Error is returned once every attempt for a record has failed.
// Status and Body are zero when the last attempt failed below HTTP.
type Error struct {
	Record   string
	Status   int
	Body     string
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("deliver %q failed after %d attempt(s)", e.Record, e.Attempts)
	}
	return fmt.Sprintf("deliver %q failed after %d attempt(s): %v", e.Record, e.Attempts, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
