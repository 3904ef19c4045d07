// Package validate holds the field validators used across the signup,
// login and password-reset flows. Validators return a user-facing
// message; an empty string means the value is acceptable. Validation
// failures are inline feedback, never errors.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsRe   = regexp.MustCompile(`\D`)
	nameRe     = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	dobRe      = regexp.MustCompile(`^(0[1-9]|1[0-2])/(0[1-9]|[12]\d|3[01])/\d{4}$`)
	pinRe      = regexp.MustCompile(`^\d{4}$`)
	passwordRe = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]{8,}$`)
)

// Email checks the address has a local part, a host and a dot-separated domain.
func Email(email string) string {
	if strings.TrimSpace(email) == "" {
		return "Email is required"
	}
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return "Please enter a valid email address"
	}
	return ""
}

// Phone strips non-digit characters and requires 10 to 15 digits.
func Phone(phone string) string {
	if strings.TrimSpace(phone) == "" {
		return "Phone number is required"
	}
	cleaned := digitsRe.ReplaceAllString(phone, "")
	if len(cleaned) < 10 || len(cleaned) > 15 {
		return "Please enter a valid phone number (10-15 digits)"
	}
	return ""
}

// Password requires at least 8 characters with one lowercase, one
// uppercase, one digit and one special character from @$!%*?&, drawn
// only from that charset.
func Password(password string) string {
	if strings.TrimSpace(password) == "" {
		return "Password is required"
	}
	p := strings.TrimSpace(password)
	if !passwordRe.MatchString(p) ||
		!strings.ContainsAny(p, "abcdefghijklmnopqrstuvwxyz") ||
		!strings.ContainsAny(p, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") ||
		!strings.ContainsAny(p, "0123456789") ||
		!strings.ContainsAny(p, "@$!%*?&") {
		return "Password must be at least 8 characters with uppercase, lowercase, number, and special character"
	}
	return ""
}

// Name allows 2-50 characters of letters, spaces, hyphens and apostrophes.
func Name(name, fieldName string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Sprintf("%s is required", fieldName)
	}
	if len(trimmed) < 2 {
		return fmt.Sprintf("%s must be at least 2 characters", fieldName)
	}
	if len(trimmed) > 50 {
		return fmt.Sprintf("%s must be less than 50 characters", fieldName)
	}
	if !nameRe.MatchString(trimmed) {
		return fmt.Sprintf("%s can only contain letters, spaces, hyphens, and apostrophes", fieldName)
	}
	return ""
}

// TextField requires a trimmed value of at least two characters.
func TextField(value, fieldName string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Sprintf("%s is required", fieldName)
	}
	if len(trimmed) < 2 {
		return fmt.Sprintf("%s must be at least 2 characters", fieldName)
	}
	return ""
}

// DateOfBirth expects MM/DD/YYYY, a real calendar date, an age of at
// least 18 and a date not in the future.
func DateOfBirth(dateString string) string {
	return dateOfBirthAt(dateString, time.Now())
}

func dateOfBirthAt(dateString string, now time.Time) string {
	if !dobRe.MatchString(dateString) {
		return "Please enter date in MM/DD/YYYY format"
	}

	// The regex admits impossible dates like 02/30; time.Parse rejects them.
	parsed, err := time.Parse("01/02/2006", dateString)
	if err != nil {
		return "Please enter a valid date"
	}

	if parsed.After(now) {
		return "Date of birth cannot be in the future"
	}

	age := now.Year() - parsed.Year()
	if now.Month() < parsed.Month() || (now.Month() == parsed.Month() && now.Day() < parsed.Day()) {
		age--
	}
	if age < 18 {
		return "You must be at least 18 years old to sign up"
	}

	return ""
}

// PIN requires exactly four digits.
func PIN(pin string) string {
	if strings.TrimSpace(pin) == "" {
		return "Security PIN is required"
	}
	if len(pin) != 4 {
		return "Security PIN must be exactly 4 digits"
	}
	if !pinRe.MatchString(pin) {
		return "Security PIN must contain only numbers"
	}
	return ""
}
