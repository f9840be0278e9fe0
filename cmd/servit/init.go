package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sagarc03/servit"
	"github.com/sagarc03/servit/config"
)

var initOutput string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long: `Walk through the delivery settings and write them to a config file.

The file is read by every other command when it sits in the working
directory as servit.yaml, or when passed with --config.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", config.DefaultConfigName+".yaml", "path of the config file to write")
}

// initFile is the subset of Config the wizard asks about.
type initFile struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Delivery servit.Options `yaml:"delivery"`
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(initOutput); statErr == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("%s already exists. Overwrite it", initOutput),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	dirPrompt := promptui.Prompt{
		Label:   "Directory to serve",
		Default: orDot(cfg.Delivery.RootDir),
		Validate: func(input string) error {
			info, statErr := os.Stat(input)
			if statErr != nil {
				return fmt.Errorf("cannot use directory: %w", statErr)
			}
			if !info.IsDir() {
				return errors.New("not a directory")
			}
			return nil
		},
	}
	dir, err := dirPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	indexPrompt := promptui.Prompt{
		Label:   "Index file",
		Default: cfg.Delivery.IndexFile,
		Validate: func(input string) error {
			if !servit.IsValidIndexFile(input) {
				return errors.New("index file must be a single file name")
			}
			return nil
		},
	}
	indexFile, err := indexPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	maxAgePrompt := promptui.Prompt{
		Label:    "Cache max-age (seconds)",
		Default:  strconv.Itoa(cfg.Delivery.MaxAge),
		Validate: validateNonNegative,
	}
	maxAgeVal, err := maxAgePrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	portPrompt := promptui.Prompt{
		Label:   "Port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(input string) error {
			n, convErr := strconv.Atoi(input)
			if convErr != nil || n < 1 || n > 65535 {
				return errors.New("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portVal, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	compress := false
	compressPrompt := promptui.Prompt{
		Label:     "Compress responses (br, gzip, deflate)",
		IsConfirm: true,
	}
	if _, promptErr := compressPrompt.Run(); promptErr == nil {
		compress = true
	}

	// Validated by the prompts above.
	maxAge, _ := strconv.Atoi(maxAgeVal)
	port, _ := strconv.Atoi(portVal)

	var out initFile
	out.Server.Port = port
	out.Delivery = servit.Options{
		RootDir:   dir,
		MaxAge:    maxAge,
		IndexFile: indexFile,
		Compress:  compress,
	}

	if err := writeInitFile(initOutput, &out); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", initOutput)
	fmt.Println("Start the server with: servit serve")
	return nil
}

func writeInitFile(path string, out *initFile) error {
	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // config file is not secret
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func validateNonNegative(input string) error {
	n, err := strconv.Atoi(input)
	if err != nil {
		return errors.New("must be a whole number")
	}
	if n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func orDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
