package storage

import "github.com/johanforsgren/lgtmthreads/internal/domain"

type patFile struct {
	PATs      []domain.PAT `json:"pats"`
	ActivePAT string       `json:"active_pat"`
}
