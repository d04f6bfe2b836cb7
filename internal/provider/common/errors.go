package common

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidIdentifierFormat = errors.New("invalid PR identifier format")
	ErrProviderMismatch        = errors.New("provider type mismatch")
)

var apiMessageRegex = regexp.MustCompile(`Message:([^}\]]+)`)

// ExtractErrorMessage shortens provider errors for the status bar. GitHub
// validation errors carry the useful part in a Message field.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if matches := apiMessageRegex.FindStringSubmatch(msg); len(matches) == 2 {
		if extracted := strings.TrimSpace(matches[1]); extracted != "" {
			return extracted
		}
	}
	return msg
}
