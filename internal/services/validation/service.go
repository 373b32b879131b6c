package validation

import (
	"github.com/mcoot/userportal/internal/dependencies/clock"
	"github.com/mcoot/userportal/internal/model"
)

// Service validates registration input before it is sent anywhere
type Service struct {
	clock clock.Clock
}

// New creates a validation service reading the current time from clk
func New(clk clock.Clock) *Service {
	return &Service{clock: clk}
}

// ValidateDateOfBirth checks dob against the service clock
func (s *Service) ValidateDateOfBirth(dob string) error {
	return ValidateDateOfBirth(dob, s.clock.Now())
}

// ValidateForm returns the first failing rule in the order name, email,
// password, identity number, date of birth, or nil if all pass.
func (s *Service) ValidateForm(c model.Credential) error {
	checks := []func() error{
		func() error { return ValidateName(c.Name) },
		func() error { return ValidateEmail(c.Email) },
		func() error { return ValidatePassword(c.Password) },
		func() error { return ValidateIdentityNumber(c.IdentityNumber) },
		func() error { return s.ValidateDateOfBirth(c.DateOfBirth) },
	}

	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
