package platform

import (
	"fmt"
	"regexp"
)

var OpenRouterTokenPattern = regexp.MustCompile(`^sk-or-[A-Za-z0-9\-_]{8,}$`)

// ValidateOpenRouterToken accepts an empty token: the catalog endpoint is
// public and the bearer header is only attached when a key is present.
func ValidateOpenRouterToken(token string) error {
	if token == "" {
		return nil
	}

	if !OpenRouterTokenPattern.MatchString(token) {
		return fmt.Errorf("invalid OpenRouter API token format: expected sk-or-...")
	}

	return nil
}

func ValidateNotEmpty(value string, fieldName string) error {
	if value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}
