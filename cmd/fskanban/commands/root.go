package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fskanban/cmd/fskanban/output"
	"fskanban/internal/di"
	"fskanban/internal/infrastructure/config"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// Global flags
	outputFormat string
	configPath   string
	dataPath     string
	quiet        bool

	// Shared instances
	loader    *config.Loader
	cfg       *config.Config
	container *di.Container
	printer   *output.Printer
	formatter *output.Formatter
)

// skipContainer marks commands that only need the configuration
const skipContainer = "skip-container"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fskanban",
	Short: "Kanban board stored as plain directories and markdown files",
	Long: `fskanban keeps a kanban board in a directory tree that sync tools and
editors can change underneath it.

Rows are directories under board/, each holding one directory per column.
Tasks are markdown files inside the column directories. Card titles and
bodies live in tasks/<id>/. Archived rows are kept in archive.jsonl.

Examples:
  # Show the board
  fskanban board show

  # Add a row and a task
  fskanban row create "Backend"
  fskanban task create 1 "Write docs"

  # Move task 2 to Done
  fskanban task move 2 Done

  # Repair ids duplicated by a sync conflict
  fskanban board check`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			loader = config.NewLoaderWithPath(configPath)
		} else if loader, err = config.NewLoader(); err != nil {
			return fmt.Errorf("failed to create config loader: %w", err)
		}

		cfg, err = loader.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataPath != "" {
			cfg.Storage.DataPath = dataPath
		}

		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		formatter = output.NewFormatter(format, os.Stdout)
		printer = output.DefaultPrinter()
		printer.SetQuiet(quiet)

		if cmd.Annotations[skipContainer] == "true" {
			return nil
		}

		container, err = di.InitializeContainer(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			printVersion()
			return nil
		}
		return boardShowCmd.RunE(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.NewPrinter(os.Stderr).Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml, fzf, path")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "Data directory (overrides storage.data_path)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("fskanban version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Built:      %s\n", BuildDate)
}

// getContext returns a context for command execution
func getContext() context.Context {
	return context.Background()
}
