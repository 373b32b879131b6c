package model

// UserID uniquely identifies a user on the backend
type UserID string

// Credential is the registration input submitted by a user.
// It only lives for the duration of one submission attempt.
type Credential struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	IdentityNumber string `json:"identity_number"` // 16 decimal digits
	DateOfBirth    string `json:"date_of_birth"`   // ISO date, e.g. 2000-01-01
}

// User is the canonical user record returned by the API
type User struct {
	Name           string `json:"name"`
	IdentityNumber string `json:"identity_number"`
	Email          string `json:"email"`
	DateOfBirth    string `json:"date_of_birth"`
}

// AuthResult is the body of a successful register or login call
type AuthResult struct {
	Token  string `json:"token"`
	UserID UserID `json:"user_id,omitempty"`
}

// LoginRequest is the body of a login call
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
