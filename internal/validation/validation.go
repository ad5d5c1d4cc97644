// Package validation checks user-supplied input before it reaches the
// stores.
package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/plannerhub/internal/models"
)

// ValidateEmail accepts an empty email (trial signup) or a plausible
// address containing "@" with non-empty local and domain parts. The
// "@" matters beyond plausibility: identifiers containing it are
// resolved as emails everywhere else.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("invalid email: %q", email)
	}
	if strings.Count(email, "@") > 1 {
		return fmt.Errorf("invalid email: %q", email)
	}
	return nil
}

// ValidateClockRange checks a daily planner's slot grid parameters.
func ValidateClockRange(start, end string, interval int) error {
	startMin, err := models.ClockToMinutes(start)
	if err != nil {
		return err
	}
	endMin, err := models.ClockToMinutes(end)
	if err != nil {
		return err
	}
	if startMin >= endMin {
		return fmt.Errorf("start time %s is not before end time %s", start, end)
	}
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %d", interval)
	}
	return nil
}

// ValidatePrivacy parses a privacy value from user input.
func ValidatePrivacy(s string) (models.PrivacyStatus, error) {
	status := models.PrivacyStatus(strings.ToLower(strings.TrimSpace(s)))
	if !models.ValidPrivacyStatus(status) {
		return "", fmt.Errorf("invalid privacy status %q (want private or public)", s)
	}
	return status, nil
}

// ValidateDate checks a reminder due date.
func ValidateDate(s string) error {
	if !models.ValidDate(s) {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return nil
}
