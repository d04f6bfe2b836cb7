package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/logger"
)

const patFileName = "pats.json"

var (
	ErrPATNotFound = errors.New("PAT not found")
	ErrNoActivePAT = errors.New("no active PAT set")
)

type LocalRepository struct {
	path string
	data *patFile
	mu   sync.RWMutex
}

// NewLocalRepository opens the PAT store in dir, creating dir if needed.
func NewLocalRepository(dir string) (*LocalRepository, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	repo := &LocalRepository{
		path: filepath.Join(dir, patFileName),
		data: &patFile{PATs: []domain.PAT{}},
	}

	if err := repo.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return repo, nil
}

func (r *LocalRepository) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger.LogFileOpen(r.path)
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.LogError("LOAD", r.path, err)
		}
		return err
	}

	if err := json.Unmarshal(data, r.data); err != nil {
		logger.LogError("UNMARSHAL", r.path, err)
		return fmt.Errorf("failed to parse %s: %w", r.path, err)
	}

	logger.Log("PATs loaded from %s", r.path)
	return nil
}

func (r *LocalRepository) save() error {
	data, err := json.MarshalIndent(r.data, "", "  ")
	if err != nil {
		logger.LogError("MARSHAL", r.path, err)
		return fmt.Errorf("failed to marshal PATs: %w", err)
	}

	logger.LogFileWrite(r.path)
	if err := os.WriteFile(r.path, data, 0600); err != nil {
		logger.LogError("SAVE", r.path, err)
		return err
	}
	return nil
}

// NewPAT fills in a fresh ID.
func NewPAT(name, token string, provider domain.ProviderType, username, organization string) domain.PAT {
	return domain.PAT{
		ID:           uuid.NewString(),
		Name:         name,
		Token:        token,
		Provider:     provider,
		Username:     username,
		Organization: organization,
	}
}

func (r *LocalRepository) ListPATs() ([]domain.PAT, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pats := make([]domain.PAT, len(r.data.PATs))
	copy(pats, r.data.PATs)
	return pats, nil
}

func (r *LocalRepository) GetPAT(id string) (*domain.PAT, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, pat := range r.data.PATs {
		if pat.ID == id {
			return &pat, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPATNotFound, id)
}

func (r *LocalRepository) SavePAT(pat domain.PAT) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pat.ID == "" {
		pat.ID = uuid.NewString()
	}
	pat.IsActive = pat.ID == r.data.ActivePAT

	for i, p := range r.data.PATs {
		if p.ID == pat.ID {
			r.data.PATs[i] = pat
			logger.Log("Updating PAT: %s (Provider: %s)", pat.Name, pat.Provider)
			return r.save()
		}
	}

	r.data.PATs = append(r.data.PATs, pat)
	logger.Log("Adding PAT: %s (Provider: %s)", pat.Name, pat.Provider)
	return r.save()
}

func (r *LocalRepository) DeletePAT(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, pat := range r.data.PATs {
		if pat.ID == id {
			logger.Log("Deleting PAT: %s (Provider: %s)", pat.Name, pat.Provider)
			r.data.PATs = append(r.data.PATs[:i], r.data.PATs[i+1:]...)
			if r.data.ActivePAT == id {
				r.data.ActivePAT = ""
			}
			return r.save()
		}
	}

	logger.LogError("DELETE_PAT", id, ErrPATNotFound)
	return fmt.Errorf("%w: %s", ErrPATNotFound, id)
}

func (r *LocalRepository) SetActivePAT(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, pat := range r.data.PATs {
		if pat.ID == id {
			logger.Log("Setting active PAT: %s (Provider: %s)", pat.Name, pat.Provider)
			for i := range r.data.PATs {
				r.data.PATs[i].IsActive = r.data.PATs[i].ID == id
			}
			r.data.ActivePAT = id
			return r.save()
		}
	}

	logger.LogError("SET_ACTIVE_PAT", id, ErrPATNotFound)
	return fmt.Errorf("%w: %s", ErrPATNotFound, id)
}

func (r *LocalRepository) GetActivePAT() (*domain.PAT, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.data.ActivePAT == "" {
		return nil, ErrNoActivePAT
	}
	for _, pat := range r.data.PATs {
		if pat.ID == r.data.ActivePAT {
			return &pat, nil
		}
	}
	return nil, fmt.Errorf("%w: active %s", ErrPATNotFound, r.data.ActivePAT)
}

// PATFor picks the credentials for provider: the active PAT when it
// matches, otherwise the first stored one.
func (r *LocalRepository) PATFor(provider domain.ProviderType) (*domain.PAT, error) {
	if active, err := r.GetActivePAT(); err == nil && active.Provider == provider {
		return active, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, pat := range r.data.PATs {
		if pat.Provider == provider {
			return &pat, nil
		}
	}
	return nil, fmt.Errorf("%w for provider %s", ErrPATNotFound, provider)
}
