package domain

type PAT struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Token        string       `json:"token"`
	Provider     ProviderType `json:"provider"`
	Username     string       `json:"username"`
	Organization string       `json:"organization,omitempty"`
	IsActive     bool         `json:"is_active"`
}

type Repository interface {
	ListPATs() ([]PAT, error)

	GetPAT(id string) (*PAT, error)

	SavePAT(pat PAT) error

	DeletePAT(id string) error

	SetActivePAT(id string) error

	GetActivePAT() (*PAT, error)
}
