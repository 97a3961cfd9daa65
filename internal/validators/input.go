package validators

import (
	"regexp"
	"time"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// IsValidDate accepts calendar dates in YYYY-MM-DD form.
func IsValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsValidTime accepts 24h clock times in HH:MM form.
func IsValidTime(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
