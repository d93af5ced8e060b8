package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// The driver has no hours left in the rolling cycle before the trip starts.
	ErrCycleExhausted = errors.New("driver has no available hours left in cycle")
	// The cycle budget ran out with driving still left on a leg.
	ErrCycleExhaustedMidRoute = errors.New("cycle hours exhausted before route completed")

	ErrTripNotFound = errors.New("trip not found")
)

// InputError reports malformed or missing request input.
type InputError struct {
	Field string
	Msg   string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// UpstreamError reports a routing or geocoding failure. Raw keeps the
// upstream response body for diagnostics.
type UpstreamError struct {
	Service    string
	Msg        string
	StatusCode int
	Raw        []byte
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Service, e.Msg, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Msg)
}

// RawResponse returns the upstream body as JSON when it is valid JSON,
// otherwise as a JSON string. Nil when there is no body.
func (e *UpstreamError) RawResponse() json.RawMessage {
	if len(e.Raw) == 0 {
		return nil
	}
	if json.Valid(e.Raw) {
		return json.RawMessage(e.Raw)
	}
	b, _ := json.Marshal(string(e.Raw))
	return b
}

// LegError labels a failure to retrieve one leg of the trip (1-based).
type LegError struct {
	Index int
	Err   error
}

func (e *LegError) Error() string {
	return fmt.Sprintf("Leg %d failed: %v", e.Index, e.Err)
}

func (e *LegError) Unwrap() error { return e.Err }
