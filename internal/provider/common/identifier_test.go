package common

import (
	"errors"
	"testing"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
)

func TestParsePRIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		provider   domain.ProviderType
		identifier string
		want       domain.PRIdentifier
		wantErr    error
	}{
		{
			name:       "github",
			provider:   domain.ProviderGitHub,
			identifier: "jaforsgren/lgtmthreads/42",
			want:       domain.PRIdentifier{Provider: domain.ProviderGitHub, Repository: "jaforsgren/lgtmthreads", Number: 42},
		},
		{
			name:       "azure devops",
			provider:   domain.ProviderAzureDevOps,
			identifier: "MyProject/MyRepo/123",
			want:       domain.PRIdentifier{Provider: domain.ProviderAzureDevOps, Repository: "MyProject/MyRepo", Number: 123},
		},
		{"too few parts", domain.ProviderGitHub, "owner/repo", domain.PRIdentifier{}, ErrInvalidIdentifierFormat},
		{"too many parts", domain.ProviderGitHub, "owner/repo/1/extra", domain.PRIdentifier{}, ErrInvalidIdentifierFormat},
		{"non-numeric", domain.ProviderGitHub, "owner/repo/abc", domain.PRIdentifier{}, ErrInvalidIdentifierFormat},
		{"zero", domain.ProviderAzureDevOps, "p/r/0", domain.PRIdentifier{}, ErrInvalidIdentifierFormat},
		{"negative", domain.ProviderAzureDevOps, "p/r/-1", domain.PRIdentifier{}, ErrInvalidIdentifierFormat},
		{"empty scope", domain.ProviderGitHub, "/repo/4", domain.PRIdentifier{}, ErrInvalidIdentifierFormat},
		{"empty repo", domain.ProviderGitHub, "owner//4", domain.PRIdentifier{}, ErrInvalidIdentifierFormat},
		{"empty string", domain.ProviderGitHub, "", domain.PRIdentifier{}, ErrInvalidIdentifierFormat},
		{"unknown provider", "gitlab", "owner/repo/1", domain.PRIdentifier{}, ErrProviderMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePRIdentifier(tt.provider, tt.identifier)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParsePRIdentifier() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePRIdentifier() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePRIdentifier() = %+v, want %+v", got, tt.want)
			}
			if formatted := FormatPRIdentifier(got); formatted != tt.identifier {
				t.Errorf("FormatPRIdentifier() = %q, want %q", formatted, tt.identifier)
			}
		})
	}
}

func TestSplitRepository(t *testing.T) {
	scope, repo, err := SplitRepository(domain.PRIdentifier{Repository: "owner/name"})
	if err != nil || scope != "owner" || repo != "name" {
		t.Errorf("SplitRepository() = %q, %q, %v", scope, repo, err)
	}

	for _, bad := range []string{"", "owner", "/name", "owner/", "a/b/c"} {
		if _, _, err := SplitRepository(domain.PRIdentifier{Repository: bad}); !errors.Is(err, ErrInvalidIdentifierFormat) {
			t.Errorf("SplitRepository(%q) error = %v, want ErrInvalidIdentifierFormat", bad, err)
		}
	}
}
