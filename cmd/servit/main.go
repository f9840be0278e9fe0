package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/servit"
	"github.com/sagarc03/servit/config"
	"github.com/sagarc03/servit/report"
)

var (
	version = "dev"

	cfgFiles   []string
	jsonOutput bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "servit",
	Short:   "Static file server with conditional, ranged and compressed delivery",
	Long: `servit serves a directory over HTTP.

Every request is resolved below the served directory, answered with 304 when
the client copy is still current, with 206 for a single byte range, and
optionally compressed with br, gzip or deflate based on Accept-Encoding.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFiles, cmd.Flags())
		if err != nil {
			return err
		}
		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&cfgFiles, "config", "c", nil, "config file path, repeatable; later files override earlier ones (default: ./servit.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: SERVIT_LOG_LEVEL)")

	rootCmd.PersistentFlags().String("dir", "", "directory to serve, relative to the working directory (env: SERVIT_DELIVERY_DIR)")
	rootCmd.PersistentFlags().Int("max-age", servit.DefaultMaxAge, "Cache-Control max-age in seconds (env: SERVIT_DELIVERY_MAX_AGE)")
	rootCmd.PersistentFlags().String("index-file", servit.DefaultIndexFile, "file served for paths ending in / (env: SERVIT_DELIVERY_INDEX_FILE)")
	rootCmd.PersistentFlags().Bool("compress", false, "negotiate br, gzip or deflate compression (env: SERVIT_DELIVERY_COMPRESS)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() report.Formatter {
	return report.NewFormatter(jsonOutput, quiet)
}
