package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/johanforsgren/lgtmthreads/internal/config"
	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/logger"
	"github.com/johanforsgren/lgtmthreads/internal/provider/common"
	"github.com/johanforsgren/lgtmthreads/internal/storage"
	"github.com/johanforsgren/lgtmthreads/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newOpenCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <provider> <scope/repo/number>",
		Short: "Open the comment threads of a pull request",
		Long: `Open a pull request diff with its comments.

Examples:
  lgtmthreads open github octocat/hello-world/42
  lgtmthreads open azuredevops MyProject/my-repo/1234 --pat work
  lgtmthreads open gh octocat/hello-world/42 --refresh 30 --protect-drafts`,
		GroupID: "review",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOpen(cmd, args)
		},
	}
	addReviewFlags(cmd.Flags())
	return cmd
}

func addReviewFlags(fs *pflag.FlagSet) {
	fs.String("pat", "", "name or id of the PAT to use (default: active PAT for the provider)")
	fs.Int("refresh", 0, "reload comments every N seconds, 0 disables (overrides review.refresh_seconds)")
	fs.Bool("protect-drafts", false, "skip reloads while an editor has unsent text (overrides review.suppress_refresh_while_editing)")
	fs.Int("markdown-width", 0, "wrap comment bodies at this width (overrides review.markdown_width)")
}

// reviewOptions merges the review section of cfg with flags the user set.
func reviewOptions(cfg *config.Config, fs *pflag.FlagSet) (ui.Options, error) {
	opts := ui.Options{
		SuppressRefreshWhileEditing: cfg.Review.SuppressRefreshWhileEditing,
		MarkdownWidth:               cfg.Review.MarkdownWidth,
		RefreshInterval:             time.Duration(cfg.Review.RefreshSeconds) * time.Second,
	}
	if fs.Changed("protect-drafts") {
		v, err := fs.GetBool("protect-drafts")
		if err != nil {
			return opts, err
		}
		opts.SuppressRefreshWhileEditing = v
	}
	if fs.Changed("refresh") {
		v, err := fs.GetInt("refresh")
		if err != nil {
			return opts, err
		}
		if v < 0 {
			return opts, fmt.Errorf("--refresh must not be negative, got %d", v)
		}
		opts.RefreshInterval = time.Duration(v) * time.Second
	}
	if fs.Changed("markdown-width") {
		v, err := fs.GetInt("markdown-width")
		if err != nil {
			return opts, err
		}
		opts.MarkdownWidth = v
	}
	return opts, nil
}

func (c *cli) runOpen(cmd *cobra.Command, args []string) error {
	providerType, err := parseProvider(args[0])
	if err != nil {
		return err
	}
	identifier, err := common.ParsePRIdentifier(providerType, args[1])
	if err != nil {
		return err
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	opts, err := reviewOptions(cfg, cmd.Flags())
	if err != nil {
		return err
	}

	repo, err := c.openRepository()
	if err != nil {
		return err
	}
	patName, _ := cmd.Flags().GetString("pat")
	pat, err := selectPAT(repo, providerType, patName)
	if err != nil {
		return err
	}
	opts.PATName = pat.Name

	manager := ui.NewProviderManager(providerSettings(cfg))
	provider, err := manager.ProviderFor(*pat)
	if err != nil {
		return err
	}

	logger.Log("CLI: opening %s with PAT %s", common.FormatPRIdentifier(identifier), pat.Name)
	program := tea.NewProgram(ui.NewModel(provider, identifier, opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.LogError("RUN_UI", common.FormatPRIdentifier(identifier), err)
		return err
	}
	return nil
}

func providerSettings(cfg *config.Config) ui.ProviderSettings {
	return ui.ProviderSettings{
		GitHubBaseURL:     cfg.GitHub.BaseURL,
		AzureOrganization: cfg.AzureDevOps.Organization,
	}
}

// selectPAT finds the PAT named (or with id) name, or the default PAT for
// the provider when name is empty.
func selectPAT(repo *storage.LocalRepository, provider domain.ProviderType, name string) (*domain.PAT, error) {
	if name == "" {
		return repo.PATFor(provider)
	}
	pat, err := findPAT(repo, name)
	if err != nil {
		return nil, err
	}
	if pat.Provider != provider {
		return nil, fmt.Errorf("PAT %s is for %s, not %s", pat.Name, pat.Provider, provider)
	}
	return pat, nil
}

func findPAT(repo *storage.LocalRepository, nameOrID string) (*domain.PAT, error) {
	pats, err := repo.ListPATs()
	if err != nil {
		return nil, err
	}
	for _, pat := range pats {
		if pat.Name == nameOrID || pat.ID == nameOrID {
			return &pat, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", storage.ErrPATNotFound, nameOrID)
}
