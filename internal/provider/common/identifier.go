package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
)

// ParsePRIdentifier parses "owner/repo/number" for GitHub and
// "project/repo/number" for Azure DevOps.
func ParsePRIdentifier(provider domain.ProviderType, identifier string) (domain.PRIdentifier, error) {
	switch provider {
	case domain.ProviderGitHub, domain.ProviderAzureDevOps:
	default:
		return domain.PRIdentifier{}, fmt.Errorf("%w: unknown provider %q", ErrProviderMismatch, provider)
	}

	scope, repo, number, err := splitIdentifier(identifier)
	if err != nil {
		return domain.PRIdentifier{}, err
	}
	return domain.PRIdentifier{
		Provider:   provider,
		Repository: scope + "/" + repo,
		Number:     number,
	}, nil
}

// SplitRepository returns the owner (or project) and repository name of id.
func SplitRepository(id domain.PRIdentifier) (scope, repo string, err error) {
	scope, repo, ok := strings.Cut(id.Repository, "/")
	if !ok || scope == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%w: repository %q is not 'scope/name'", ErrInvalidIdentifierFormat, id.Repository)
	}
	return scope, repo, nil
}

func splitIdentifier(identifier string) (scope, repo string, number int, err error) {
	parts := strings.Split(identifier, "/")
	if len(parts) != 3 {
		return "", "", 0, fmt.Errorf("%w: expected 'scope/repo/number', got '%s'", ErrInvalidIdentifierFormat, identifier)
	}

	number, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", "", 0, fmt.Errorf("%w: invalid PR number '%s'", ErrInvalidIdentifierFormat, parts[2])
	}
	if parts[0] == "" || parts[1] == "" || number <= 0 {
		return "", "", 0, fmt.Errorf("%w: scope, repo and number must be non-empty and positive", ErrInvalidIdentifierFormat)
	}
	return parts[0], parts[1], number, nil
}

func FormatPRIdentifier(id domain.PRIdentifier) string {
	return fmt.Sprintf("%s/%d", id.Repository, id.Number)
}
