package entity

import (
	"fmt"
	"net/mail"
	"strings"
)

// Field length limits enforced on content items and users.
// These mirror the column sizes in the database schema.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 5000
	MaxEmailLength       = 254
)

// ValidateEmail validates the format of an email address.
// Returns a ValidationError if the address is empty, too long, or malformed.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if len(email) > MaxEmailLength {
		return &ValidationError{
			Field:   "email",
			Message: fmt.Sprintf("must not exceed %d characters", MaxEmailLength),
		}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return &ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	// mail.ParseAddress accepts display names ("A <a@b.c>"); only bare
	// addresses are stored.
	if addr.Address != email || strings.ContainsAny(email, " <>") {
		return &ValidationError{Field: "email", Message: "must be a bare email address"}
	}
	return nil
}

// ValidateDescription validates an optional description field.
func ValidateDescription(desc string) error {
	if len(desc) > MaxDescriptionLength {
		return &ValidationError{
			Field:   "description",
			Message: fmt.Sprintf("must not exceed %d characters", MaxDescriptionLength),
		}
	}
	return nil
}
