package main

import (
	"fmt"

	"github.com/johanforsgren/lgtmthreads/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage the configuration file",
		GroupID: "setup",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolveConfigPath()
			if err != nil {
				return err
			}
			if err := config.InitConfig(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "CREATED %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "log.path = %s\n", cfg.Log.Path)
			fmt.Fprintf(out, "log.level = %s\n", cfg.Log.Level)
			fmt.Fprintf(out, "review.suppress_refresh_while_editing = %v\n", cfg.Review.SuppressRefreshWhileEditing)
			fmt.Fprintf(out, "review.refresh_seconds = %d\n", cfg.Review.RefreshSeconds)
			fmt.Fprintf(out, "review.markdown_width = %d\n", cfg.Review.MarkdownWidth)
			fmt.Fprintf(out, "github.base_url = %s\n", cfg.GitHub.BaseURL)
			fmt.Fprintf(out, "azuredevops.organization = %s\n", cfg.AzureDevOps.Organization)
			return nil
		},
	})
	return cmd
}

func (c *cli) resolveConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultPath()
}
