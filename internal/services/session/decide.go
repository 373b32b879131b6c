package session

import "strings"

// Session is the stored credential
type Session struct {
	Token  string
	UserID string
}

// Decision is what a page should do next
type Decision int

const (
	DecisionProceed Decision = iota
	DecisionRedirect
)

// DecideAccess decides whether a page may issue its guarded request.
// needUser additionally requires a stored user id.
func DecideAccess(s Session, needUser bool) Decision {
	if s.Token == "" {
		return DecisionRedirect
	}
	if needUser && s.UserID == "" {
		return DecisionRedirect
	}
	return DecisionProceed
}

// DecideAfterResponse decides whether a response ends the session
func DecideAfterResponse(r Result) Decision {
	if r.Outcome == OutcomeUnauthorized {
		return DecisionRedirect
	}
	return DecisionProceed
}

// NormalizeToken strips quote characters left around the token by whatever
// wrote it to storage
func NormalizeToken(token string) string {
	token = strings.TrimPrefix(token, `"`)
	return strings.TrimSuffix(token, `"`)
}
