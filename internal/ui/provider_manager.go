package ui

import (
	"fmt"
	"sync"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/logger"
	"github.com/johanforsgren/lgtmthreads/internal/provider/azuredevops"
	"github.com/johanforsgren/lgtmthreads/internal/provider/github"
)

// ProviderSettings holds the non-secret provider configuration.
type ProviderSettings struct {
	GitHubBaseURL string
	// AzureOrganization is used when the PAT does not name one.
	AzureOrganization string
}

// ProviderManager creates providers from PATs and caches them by PAT id.
type ProviderManager struct {
	mu        sync.Mutex
	settings  ProviderSettings
	providers map[string]domain.Provider
}

func NewProviderManager(settings ProviderSettings) *ProviderManager {
	return &ProviderManager{
		settings:  settings,
		providers: make(map[string]domain.Provider),
	}
}

// ProviderFor returns the cached provider for pat, creating it on first use.
func (pm *ProviderManager) ProviderFor(pat domain.PAT) (domain.Provider, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if provider, ok := pm.providers[pat.ID]; ok {
		return provider, nil
	}
	provider, err := pm.createProvider(pat)
	if err != nil {
		logger.LogError("CREATE_PROVIDER", pat.Name, err)
		return nil, err
	}
	pm.providers[pat.ID] = provider
	return provider, nil
}

// Forget drops the cached provider of a removed or changed PAT.
func (pm *ProviderManager) Forget(patID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.providers, patID)
}

func (pm *ProviderManager) ProviderCount() int {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return len(pm.providers)
}

func (pm *ProviderManager) createProvider(pat domain.PAT) (domain.Provider, error) {
	switch pat.Provider {
	case domain.ProviderGitHub:
		provider, err := github.NewProvider(pat.Token, pat.Username, pm.settings.GitHubBaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub provider: %w", err)
		}
		return provider, nil
	case domain.ProviderAzureDevOps:
		org := pat.Organization
		if org == "" {
			org = pm.settings.AzureOrganization
		}
		provider, err := azuredevops.NewProvider(pat.Token, org, pat.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure DevOps provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", pat.Provider)
	}
}
