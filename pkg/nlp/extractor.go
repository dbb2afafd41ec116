package nlp

import (
	"regexp"
	"strings"
)

// Slot patterns are tried in priority order and the first non-empty capture
// wins; there is no attempt to pick a "best" match among several. The capture
// class stops at the first character outside [a-zA-Z0-9\s], so a trailing
// period ends the slot.
var productPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)for product\s+([a-zA-Z0-9\s]+)`),
	regexp.MustCompile(`(?i)of product\s+([a-zA-Z0-9\s]+)`),
	regexp.MustCompile(`(?i)product\s+([a-zA-Z0-9\s]+)`),
}

var customerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)for customer\s+([a-zA-Z0-9\s]+)`),
	regexp.MustCompile(`(?i)of customer\s+([a-zA-Z0-9\s]+)`),
	regexp.MustCompile(`(?i)customer\s+([a-zA-Z0-9\s]+)`),
}

// ExtractProductName pulls a product slot out of free text. Empty string
// means the slot is missing; callers answer with a clarifying prompt instead
// of failing.
func ExtractProductName(text string) string {
	return extractFirst(productPatterns, text)
}

func ExtractCustomerName(text string) string {
	return extractFirst(customerPatterns, text)
}

func extractFirst(patterns []*regexp.Regexp, text string) string {
	for _, pattern := range patterns {
		match := pattern.FindStringSubmatch(text)
		if len(match) > 1 {
			if captured := strings.TrimSpace(match[1]); captured != "" {
				return captured
			}
		}
	}
	return ""
}
