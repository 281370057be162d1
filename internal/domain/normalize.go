package domain

import "strings"

// NormalizeHumanName trims leading/trailing whitespace and collapses internal
// whitespace runs. It is used for student and form name normalization.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// EmailLocalPart returns the part of an email address before the "@", used as
// the last-resort profile name. An empty email yields an empty string.
func EmailLocalPart(email string) string {
	if email == "" {
		return ""
	}
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
