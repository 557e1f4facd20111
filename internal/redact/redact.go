// Package redact removes sensitive values from strings before they are
// logged or attached to error responses: connection strings, credentials,
// tokens and email addresses that may ride along in wrapped errors.
package redact

import "regexp"

// RedactionPlaceholder replaces any matched sensitive fragment.
const RedactionPlaceholder = "[REDACTED]"

// Precompiled redaction patterns.
var patterns = []*regexp.Regexp{
	// Database connection strings with embedded credentials
	regexp.MustCompile(`(?i)(postgres|postgresql|mysql)://[^@\s]+@`),

	// Passwords and secrets in key=value or key: value form
	regexp.MustCompile(`(?i)(password|passwd|pwd|secret)([=:\s]['"]?)[^'"&\s]{3,}`),

	// API keys and bearer tokens
	regexp.MustCompile(`(?i)(api[_-]?key|token|authorization)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),

	// Stripe keys (sk_live_..., sk_test_..., whsec_...)
	regexp.MustCompile(`(?i)\b(sk|rk|whsec)_[A-Za-z0-9_]{8,}\b`),

	// JWT tokens (three base64url segments)
	regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),

	// Email addresses
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
}

// String returns the input with all sensitive fragments replaced.
func String(s string) string {
	for _, pattern := range patterns {
		s = pattern.ReplaceAllString(s, RedactionPlaceholder)
	}
	return s
}

// Error returns the redacted message of err, or the empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
