package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Limits enforced by the field rules
const (
	MinNameLength        = 2
	MinPasswordLength    = 8
	IdentityNumberDigits = 16
	MinAge               = 10
	MaxAge               = 120
)

// Field names carried on ValidationError
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldIdentityNumber = "identity_number"
	FieldDateOfBirth    = "date_of_birth"
)

// Reasons shown to the user, verbatim
const (
	MsgNameRequired        = "Name is required"
	MsgNameTooShort        = "Name must be at least 2 characters"
	MsgNameInvalidChars    = "Name can only contain letters, numbers, and spaces"
	MsgEmailRequired       = "Email is required"
	MsgEmailInvalid        = "Invalid email format"
	MsgPasswordRequired    = "Password is required"
	MsgPasswordTooShort    = "Password must be at least 8 characters"
	MsgPasswordComposition = "Password must contain at least one uppercase letter, one lowercase letter, and one number"
	MsgIdentityRequired    = "Identity number is required"
	MsgIdentityDigits      = "Identity number must be 16 digits"
	MsgDateOfBirthRequired = "Date of birth is required"
	MsgTooYoung            = "You must be at least 10 years old"
	MsgInvalidDateOfBirth  = "Please enter a valid date of birth"
)

var (
	namePattern     = regexp.MustCompile(`^[A-Za-z0-9\s]*$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	identityPattern = regexp.MustCompile(`^[0-9]{16}$`)
)

// dateLayouts are tried in order when parsing a date of birth
var dateLayouts = []string{time.DateOnly, time.RFC3339}

// ValidationError is the single reason a registration attempt was rejected
type ValidationError struct {
	Field  string
	Reason string
}

// Error returns the user-facing reason
func (e *ValidationError) Error() string {
	return e.Reason
}

func fail(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ValidateName checks the display name
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fail(FieldName, MsgNameRequired)
	}
	if utf8.RuneCountInString(name) < MinNameLength {
		return fail(FieldName, MsgNameTooShort)
	}
	if !namePattern.MatchString(name) {
		return fail(FieldName, MsgNameInvalidChars)
	}
	return nil
}

// ValidateEmail checks for a local@domain.tld shape. It is not a full
// address grammar.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fail(FieldEmail, MsgEmailRequired)
	}
	if !emailPattern.MatchString(email) {
		return fail(FieldEmail, MsgEmailInvalid)
	}
	return nil
}

// ValidatePassword requires length and a lower/upper/digit mix
func ValidatePassword(password string) error {
	if password == "" {
		return fail(FieldPassword, MsgPasswordRequired)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fail(FieldPassword, MsgPasswordTooShort)
	}

	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit {
		return fail(FieldPassword, MsgPasswordComposition)
	}
	return nil
}

// ValidateIdentityNumber requires exactly 16 decimal digits
func ValidateIdentityNumber(id string) error {
	if strings.TrimSpace(id) == "" {
		return fail(FieldIdentityNumber, MsgIdentityRequired)
	}
	if !identityPattern.MatchString(id) {
		return fail(FieldIdentityNumber, MsgIdentityDigits)
	}
	return nil
}

// ValidateDateOfBirth checks the age bounds relative to now.
//
// Age is now's year minus the birth year. Month and day are ignored, so
// someone whose birthday is later this year counts one year older.
func ValidateDateOfBirth(dob string, now time.Time) error {
	if dob == "" {
		return fail(FieldDateOfBirth, MsgDateOfBirthRequired)
	}

	birth, ok := parseDate(dob)
	if !ok {
		return fail(FieldDateOfBirth, MsgInvalidDateOfBirth)
	}

	age := now.Year() - birth.Year()
	if age < MinAge {
		return fail(FieldDateOfBirth, MsgTooYoung)
	}
	if age > MaxAge {
		return fail(FieldDateOfBirth, MsgInvalidDateOfBirth)
	}
	return nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
