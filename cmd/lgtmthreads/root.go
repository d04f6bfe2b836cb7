package main

import (
	"fmt"
	"strings"

	"github.com/johanforsgren/lgtmthreads/internal/config"
	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/logger"
	"github.com/johanforsgren/lgtmthreads/internal/storage"
	"github.com/spf13/cobra"
)

// cli carries the persistent flags shared by all subcommands.
type cli struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "lgtmthreads",
		Short: "Read, write and answer pull request comments in the terminal",
		Long: `lgtmthreads shows the diff of a pull request with its comment threads
attached to the files and lines they belong to.

Supported providers are GitHub and Azure DevOps.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.lgtmthreads/config.toml)")

	root.AddGroup(
		&cobra.Group{ID: "review", Title: "Review Commands:"},
		&cobra.Group{ID: "setup", Title: "Setup Commands:"},
	)
	root.AddCommand(newOpenCmd(c), newPATCmd(c), newConfigCmd(c))
	root.SetHelpCommandGroupID("setup")
	root.SetCompletionCommandGroupID("setup")
	return root
}

func (c *cli) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Log.Path, cfg.LogLevel()); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *cli) openRepository() (*storage.LocalRepository, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return storage.NewLocalRepository(dir)
}

func parseProvider(name string) (domain.ProviderType, error) {
	switch strings.ToLower(name) {
	case "github", "gh":
		return domain.ProviderGitHub, nil
	case "azuredevops", "azure", "ado":
		return domain.ProviderAzureDevOps, nil
	default:
		return "", fmt.Errorf("unknown provider %q (use github or azuredevops)", name)
	}
}
