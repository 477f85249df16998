package domain

import (
	"regexp"
	"strings"
	"time"
)

var (
	phoneRe   = regexp.MustCompile(`^(?:\+?234|0)\d{10}$`)
	phoneSub  = regexp.MustCompile(`(\+?234|0)\d{10}`)
	nonDigit  = regexp.MustCompile(`[^\d+]`)
	emailRe   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	requestRe = regexp.MustCompile(`^(ORD|ISS|CB|INQ)\d{4}$`)
)

// IsValidPhone accepts Nigerian local (0XXXXXXXXXX) and international
// (+234XXXXXXXXXX / 234XXXXXXXXXX) numbers. Separators and spaces are
// stripped before matching.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(nonDigit.ReplaceAllString(s, ""))
}

// ContainsPhone reports whether s contains a phone-number substring. Used by
// the callback-request flow, whose single step is free text around a number.
func ContainsPhone(s string) bool {
	return phoneSub.MatchString(strings.ReplaceAll(s, " ", ""))
}

// IsValidEmail applies the minimal single-@, dotted-domain check.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsRequestID reports whether s looks like a request identifier
// (variant prefix plus four digits). Matching is done on the upper-cased
// input so users may type ids in any case.
func IsRequestID(s string) bool {
	return requestRe.MatchString(strings.ToUpper(strings.TrimSpace(s)))
}

// BusinessZone is the timezone all request timestamps are recorded in.
var BusinessZone = time.FixedZone("WAT", 60*60)

const timestampLayout = "2006-01-02 15:04:05"

// Timestamp formats t in the business timezone for persistence and display.
func Timestamp(t time.Time) string {
	return t.In(BusinessZone).Format(timestampLayout)
}
