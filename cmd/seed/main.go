// Command seed imports catalog dumps and manages login accounts.
package main

import (
	"fmt"
	"os"

	"github.com/cleitonzila/n64-checklist/auth"
	"github.com/cleitonzila/n64-checklist/config"
	"github.com/cleitonzila/n64-checklist/db"
	"github.com/cleitonzila/n64-checklist/seed"
	"github.com/cleitonzila/n64-checklist/utils"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// stores is filled by the root command's PersistentPreRunE.
type stores struct {
	ps1, n64, ownership *gorm.DB
}

// connect opens the configured databases. Tests replace it.
var connect = func(cfg *config.Config) (*stores, error) {
	if err := db.InitDB(cfg); err != nil {
		return nil, err
	}
	return &stores{ps1: db.PS1, n64: db.N64, ownership: db.Ownership}, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var s *stores

	root := &cobra.Command{
		Use:           "seed",
		Short:         "Load catalog data and accounts into the collection databases",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			utils.InitLogger(cfg.LogLevel, "", false)
			s, err = connect(cfg)
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) { db.Close() },
	}

	var coverRoot string
	root.PersistentFlags().StringVar(&coverRoot, "covers", ".", "directory cover_path values are relative to")

	var ps1File string
	ps1Cmd := &cobra.Command{
		Use:   "ps1",
		Short: "Import a PS1 catalog dump (upsert by serial)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := seed.LoadJSON[seed.PS1Record](ps1File)
			if err != nil {
				return err
			}
			res, err := seed.ImportPS1(cmd.Context(), s.ps1, records, coverRoot)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PS1: %d created, %d skipped\n", res.Created, res.Skipped)
			return nil
		},
	}
	ps1Cmd.Flags().StringVarP(&ps1File, "file", "f", "", "path to the JSON dump")
	_ = ps1Cmd.MarkFlagRequired("file")

	var n64File string
	n64Cmd := &cobra.Command{
		Use:   "n64",
		Short: "Import an N64 catalog dump",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := seed.LoadJSON[seed.N64Record](n64File)
			if err != nil {
				return err
			}
			res, err := seed.ImportN64(cmd.Context(), s.n64, records, coverRoot)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "N64: %d created, %d skipped\n", res.Created, res.Skipped)
			return nil
		},
	}
	n64Cmd.Flags().StringVarP(&n64File, "file", "f", "", "path to the JSON dump")
	_ = n64Cmd.MarkFlagRequired("file")

	var username, password string
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Create a login or reset its password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(password) < 6 {
				return fmt.Errorf("password must be at least 6 characters")
			}
			user, err := auth.NewAuthenticator(s.ownership).UpsertUser(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %s ready (id %s)\n", user.Username, user.ID)
			return nil
		},
	}
	userCmd.Flags().StringVarP(&username, "username", "u", "", "login name")
	userCmd.Flags().StringVarP(&password, "password", "p", "", "plain-text password, hashed with bcrypt")
	_ = userCmd.MarkFlagRequired("username")
	_ = userCmd.MarkFlagRequired("password")

	dupCmd := &cobra.Command{
		Use:   "duplicates",
		Short: "List PS1 titles with more than one regional release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dups, err := seed.Duplicates(cmd.Context(), s.ps1)
			if err != nil {
				return err
			}
			for _, d := range dups {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", d.Count, d.Title)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d titles with variants\n", len(dups))
			return nil
		},
	}

	root.AddCommand(ps1Cmd, n64Cmd, userCmd, dupCmd)
	return root
}
