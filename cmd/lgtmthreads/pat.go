package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/johanforsgren/lgtmthreads/internal/logger"
	"github.com/johanforsgren/lgtmthreads/internal/provider/common"
	"github.com/johanforsgren/lgtmthreads/internal/storage"
	"github.com/johanforsgren/lgtmthreads/internal/ui"
	"github.com/spf13/cobra"
)

func newPATCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pat",
		Short:   "Manage personal access tokens",
		GroupID: "setup",
	}
	cmd.AddCommand(newPATAddCmd(c), newPATListCmd(c), newPATRemoveCmd(c), newPATUseCmd(c), newPATVerifyCmd(c))
	return cmd
}

func newPATAddCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Store a personal access token",
		Long: `Store a personal access token.

Examples:
  lgtmthreads pat add personal --provider github --token ghp_xxx --username octocat
  lgtmthreads pat add work --provider azuredevops --token xxx --organization contoso --use`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			providerName, _ := cmd.Flags().GetString("provider")
			provider, err := parseProvider(providerName)
			if err != nil {
				return err
			}
			token, _ := cmd.Flags().GetString("token")
			username, _ := cmd.Flags().GetString("username")
			organization, _ := cmd.Flags().GetString("organization")
			use, _ := cmd.Flags().GetBool("use")

			repo, err := c.openRepository()
			if err != nil {
				return err
			}
			if _, err := findPAT(repo, args[0]); err == nil {
				return fmt.Errorf("a PAT named %s already exists", args[0])
			}

			pat := storage.NewPAT(args[0], token, provider, username, organization)
			if err := repo.SavePAT(pat); err != nil {
				return err
			}
			if use {
				if err := repo.SetActivePAT(pat.ID); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ADDED %s (%s)\n", pat.Name, pat.Provider)
			return nil
		},
	}
	cmd.Flags().String("provider", "github", "github or azuredevops")
	cmd.Flags().String("token", "", "the token")
	cmd.Flags().String("username", "", "account the token belongs to")
	cmd.Flags().String("organization", "", "Azure DevOps organization")
	cmd.Flags().Bool("use", false, "make this the active PAT")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func newPATListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List stored tokens",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := c.openRepository()
			if err != nil {
				return err
			}
			pats, err := repo.ListPATs()
			if err != nil {
				return err
			}
			if len(pats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No PATs stored")
				return nil
			}

			active := ""
			if pat, err := repo.GetActivePAT(); err == nil {
				active = pat.ID
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "\tNAME\tPROVIDER\tUSERNAME\tORGANIZATION")
			for _, pat := range pats {
				marker := ""
				if pat.ID == active {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", marker, pat.Name, pat.Provider, pat.Username, pat.Organization)
			}
			return w.Flush()
		},
	}
}

func newPATRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Short:   "Delete a stored token",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := c.openRepository()
			if err != nil {
				return err
			}
			pat, err := findPAT(repo, args[0])
			if err != nil {
				return err
			}
			if err := repo.DeletePAT(pat.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "REMOVED %s\n", pat.Name)
			return nil
		},
	}
}

func newPATUseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Make a stored token the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := c.openRepository()
			if err != nil {
				return err
			}
			pat, err := findPAT(repo, args[0])
			if err != nil {
				return err
			}
			if err := repo.SetActivePAT(pat.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ACTIVE %s\n", pat.Name)
			return nil
		},
	}
}

func newPATVerifyCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <name>",
		Short: "Check a stored token against its provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			defer logger.Close()

			repo, err := c.openRepository()
			if err != nil {
				return err
			}
			pat, err := findPAT(repo, args[0])
			if err != nil {
				return err
			}
			provider, err := ui.NewProviderManager(providerSettings(cfg)).ProviderFor(*pat)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := provider.ValidateCredentials(ctx); err != nil {
				return fmt.Errorf("PAT %s rejected: %s", pat.Name, common.ExtractErrorMessage(err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK %s\n", pat.Name)
			return nil
		},
	}
}
