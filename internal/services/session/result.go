package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mcoot/userportal/internal/client"
)

// Outcome tags how a guarded request ended
type Outcome int

const (
	OutcomeOK Outcome = iota
	// OutcomeAuthRequired means no request was sent because there is no
	// usable session
	OutcomeAuthRequired
	// OutcomeUnauthorized means the server rejected the token (401)
	OutcomeUnauthorized
	// OutcomeHTTPError is any other non-2xx status
	OutcomeHTTPError
	// OutcomeNetworkError means no response was received
	OutcomeNetworkError
	// OutcomeUnknown covers everything else
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeAuthRequired:
		return "auth_required"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeHTTPError:
		return "http_error"
	case OutcomeNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// User-facing messages for failed requests
const (
	MsgAuthRequired   = "Authentication required"
	MsgSessionExpired = "Your session has expired. Please sign in again."
	MsgConnectivity   = "Unable to reach the server. Please check your connection and try again."
	MsgUnknown        = "Something went wrong. Please try again."
)

// ErrTerminal is carried by results from a guard that has already redirected
var ErrTerminal = errors.New("session guard is in a terminal state")

// Result is the typed outcome of a request. Callers branch on Outcome.
type Result struct {
	Outcome    Outcome
	StatusCode int
	Body       []byte
	Err        error
}

// OK reports a successful response
func (r Result) OK() bool {
	return r.Outcome == OutcomeOK
}

// Redirected reports whether the guard navigated away for this result
func (r Result) Redirected() bool {
	return r.Outcome == OutcomeAuthRequired || r.Outcome == OutcomeUnauthorized
}

// Message returns the text to show the user for a failed result
func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeOK:
		return ""
	case OutcomeAuthRequired:
		return MsgAuthRequired
	case OutcomeUnauthorized:
		return MsgSessionExpired
	case OutcomeHTTPError:
		return HTTPFailureMessage(r.StatusCode)
	case OutcomeNetworkError:
		return MsgConnectivity
	default:
		return MsgUnknown
	}
}

// HTTPFailureMessage is the message for a non-2xx status
func HTTPFailureMessage(status int) string {
	return fmt.Sprintf("Request failed with status %d", status)
}

// Classify turns a client response or error into a Result. It has no side
// effects; the guard acts on the outcome.
func Classify(resp *client.Response, err error) Result {
	if err != nil {
		var terr *client.TransportError
		if errors.As(err, &terr) {
			return Result{Outcome: OutcomeNetworkError, Err: err}
		}
		return Result{Outcome: OutcomeUnknown, Err: err}
	}
	if resp == nil {
		return Result{Outcome: OutcomeUnknown, Err: errors.New("no response")}
	}

	r := Result{StatusCode: resp.StatusCode, Body: resp.Body}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		r.Outcome = OutcomeUnauthorized
	case !resp.OK():
		r.Outcome = OutcomeHTTPError
	default:
		r.Outcome = OutcomeOK
	}
	return r
}

// DecodeOne decodes a successful single-object payload as-is
func DecodeOne[T any](r Result) (T, error) {
	var v T
	if !r.OK() {
		return v, fmt.Errorf("cannot decode %s result", r.Outcome)
	}
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return v, fmt.Errorf("failed to parse response: %w", err)
	}
	return v, nil
}

// DecodeList decodes a successful collection payload. A bare object becomes a
// one-element slice and an empty or null body an empty slice.
func DecodeList[T any](r Result) ([]T, error) {
	if !r.OK() {
		return nil, fmt.Errorf("cannot decode %s result", r.Outcome)
	}

	body := bytes.TrimSpace(r.Body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []T{}, nil
	}

	if body[0] == '{' {
		var one T
		if err := json.Unmarshal(body, &one); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		return []T{one}, nil
	}

	var list []T
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return list, nil
}
