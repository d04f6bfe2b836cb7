package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*LocalRepository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".lgtmthreads")
	repo, err := NewLocalRepository(dir)
	require.NoError(t, err)
	return repo, dir
}

func TestSaveAndLoadPAT(t *testing.T) {
	repo, dir := newTestRepo(t)

	pat := NewPAT("Test PAT", "ghp_test123", domain.ProviderGitHub, "testuser", "")
	require.NotEmpty(t, pat.ID)
	require.NoError(t, repo.SavePAT(pat))

	reopened, err := NewLocalRepository(dir)
	require.NoError(t, err)

	pats, err := reopened.ListPATs()
	require.NoError(t, err)
	require.Len(t, pats, 1)
	assert.Equal(t, pat.Name, pats[0].Name)
	assert.Equal(t, pat.Token, pats[0].Token)

	info, err := os.Stat(filepath.Join(dir, patFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestUpdatePAT(t *testing.T) {
	repo, _ := newTestRepo(t)

	original := domain.PAT{ID: "test-id", Name: "Original", Token: "ghp_original", Provider: domain.ProviderGitHub}
	require.NoError(t, repo.SavePAT(original))

	updated := original
	updated.Name = "Updated"
	updated.Token = "ghp_updated"
	require.NoError(t, repo.SavePAT(updated))

	pats, err := repo.ListPATs()
	require.NoError(t, err)
	require.Len(t, pats, 1)
	assert.Equal(t, "Updated", pats[0].Name)
	assert.Equal(t, "ghp_updated", pats[0].Token)
}

func TestDeletePAT(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.SavePAT(domain.PAT{ID: "a", Provider: domain.ProviderGitHub}))
	require.NoError(t, repo.SetActivePAT("a"))
	require.NoError(t, repo.DeletePAT("a"))

	pats, err := repo.ListPATs()
	require.NoError(t, err)
	assert.Empty(t, pats)

	_, err = repo.GetActivePAT()
	assert.ErrorIs(t, err, ErrNoActivePAT)

	assert.ErrorIs(t, repo.DeletePAT("a"), ErrPATNotFound)
}

func TestSetActivePAT(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.SavePAT(domain.PAT{ID: "a", Provider: domain.ProviderGitHub}))
	require.NoError(t, repo.SavePAT(domain.PAT{ID: "b", Provider: domain.ProviderAzureDevOps}))

	require.NoError(t, repo.SetActivePAT("b"))

	active, err := repo.GetActivePAT()
	require.NoError(t, err)
	assert.Equal(t, "b", active.ID)
	assert.True(t, active.IsActive)

	a, err := repo.GetPAT("a")
	require.NoError(t, err)
	assert.False(t, a.IsActive)

	assert.ErrorIs(t, repo.SetActivePAT("missing"), ErrPATNotFound)
}

func TestPATFor(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.SavePAT(domain.PAT{ID: "gh1", Provider: domain.ProviderGitHub}))
	require.NoError(t, repo.SavePAT(domain.PAT{ID: "gh2", Provider: domain.ProviderGitHub}))
	require.NoError(t, repo.SavePAT(domain.PAT{ID: "az", Provider: domain.ProviderAzureDevOps}))

	pat, err := repo.PATFor(domain.ProviderGitHub)
	require.NoError(t, err)
	assert.Equal(t, "gh1", pat.ID, "first stored PAT without an active one")

	require.NoError(t, repo.SetActivePAT("gh2"))
	pat, err = repo.PATFor(domain.ProviderGitHub)
	require.NoError(t, err)
	assert.Equal(t, "gh2", pat.ID, "active PAT wins")

	pat, err = repo.PATFor(domain.ProviderAzureDevOps)
	require.NoError(t, err)
	assert.Equal(t, "az", pat.ID, "active PAT of another provider is skipped")
}

func TestSavePATKeepsActiveFlag(t *testing.T) {
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.SavePAT(domain.PAT{ID: "a", Name: "old", Provider: domain.ProviderGitHub}))
	require.NoError(t, repo.SetActivePAT("a"))
	require.NoError(t, repo.SavePAT(domain.PAT{ID: "a", Name: "new", Provider: domain.ProviderGitHub}))

	active, err := repo.GetActivePAT()
	require.NoError(t, err)
	assert.Equal(t, "new", active.Name)
	assert.True(t, active.IsActive)
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, patFileName), []byte("{not json"), 0600))

	_, err := NewLocalRepository(dir)
	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}
