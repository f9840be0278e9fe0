package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/servit/config"
	"github.com/sagarc03/servit/report"
)

var lsProfile string

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the files that would be served",
	Long: `List every regular file below the served directory with its size,
content type and whether it is eligible for compression.`,
	Example: `  servit ls
  servit ls --dir ./dist --json
  servit ls --profile 2 -q`,
	Args: cobra.NoArgs,
	RunE: runLs,
}

func init() {
	lsCmd.Flags().StringVar(&lsProfile, "profile", "", "list the directory of a named profile")
}

func runLs(cmd *cobra.Command, args []string) error {
	formatter := getFormatter()

	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	opts, err := optionsFor(cfg, lsProfile)
	if err != nil {
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	s, err := openSite(workDir, opts)
	if err != nil {
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}
	defer func() { _ = s.Close() }()

	assets, err := s.store.List(cmd.Context())
	if err != nil {
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	return formatter.FormatListing(os.Stdout, &report.Listing{
		Root:   s.resolver.Base(),
		Assets: assets,
	})
}
