package validators

import "strings"

func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

// SanitizeOptional trims an optional field, keeping nil as "not provided".
func SanitizeOptional(input *string) *string {
	if input == nil {
		return nil
	}
	out := strings.TrimSpace(*input)
	return &out
}
