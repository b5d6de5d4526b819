// Package redact strips sensitive fragments from strings before they are
// logged. Error messages coming out of the storage layer can carry
// connection strings, SQL text or file paths; nothing in this package's
// output should identify infrastructure internals.
package redact

import "regexp"

// Redaction placeholders
const (
	RedactedCredential = "[REDACTED_CREDENTIAL]"
	RedactedPath       = "[REDACTED_PATH]"
	RedactedSQL        = "[REDACTED_SQL]"
	RedactedJWT        = "[REDACTED_JWT]"
	RedactedEmail      = "[REDACTED_EMAIL]"
)

var (
	dbConnRegex   = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database)://[^@\s]+@`)
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd|secret|token)([=:\s]['"]?)[^'"&\s]{3,}`)
	jwtRegex      = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)
	emailRegex    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	sqlRegex      = regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE)(?:[\s\w,*()='"]+)?`)

	replacements = []struct {
		pattern     *regexp.Regexp
		placeholder string
	}{
		{dbConnRegex, RedactedCredential},
		{passwordRegex, RedactedCredential},
		{jwtRegex, RedactedJWT},
		{sqlRegex, RedactedSQL},
		{unixPathRegex, RedactedPath},
		{emailRegex, RedactedEmail},
	}
)

// String redacts sensitive fragments from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range replacements {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts an error's message. Returns the empty string for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
