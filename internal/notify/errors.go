package notify

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when delivery is attempted while the Slack
// webhook URL is empty or still holds the shipped placeholder.
var ErrNotConfigured = errors.New("slack webhook URL is not configured")

// DeliveryError reports a failed outbound delivery: either a non-200 response
// from the webhook endpoint, or a transport-level failure (timeout, refused
// connection, DNS). No retry is performed; one attempt, one error.
type DeliveryError struct {
	StatusCode int    // 0 when the request never got a response
	Status     string // ex: "429 Too Many Requests"
	Err        error  // underlying transport error, nil on HTTP-level failures
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("slack delivery failed: %v", e.Err)
	}
	return fmt.Sprintf("slack responded with %s", e.Status)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
