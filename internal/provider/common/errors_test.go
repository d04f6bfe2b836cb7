package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestExtractErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "GitHub validation error",
			err:      errors.New("POST https://api.github.com/repos/o/r/pulls/6/comments: 422 Validation Failed [{Resource:PullRequestReviewComment Field:line Code:invalid Message:line must be part of the diff}]"),
			expected: "line must be part of the diff",
		},
		{
			name:     "empty message field",
			err:      errors.New("422 Unprocessable Entity [{Resource: Field: Code: Message:}]"),
			expected: "422 Unprocessable Entity [{Resource: Field: Code: Message:}]",
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to create comment: %w", errors.New("[{Message:Pull request is locked}]")),
			expected: "Pull request is locked",
		},
		{
			name:     "plain error",
			err:      errors.New("connection timeout"),
			expected: "connection timeout",
		},
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ExtractErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}
