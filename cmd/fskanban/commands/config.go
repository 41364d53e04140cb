package commands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"fskanban/cmd/fskanban/output"
	"fskanban/internal/infrastructure/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage fskanban configuration settings.

Configuration is stored in YAML format at:
  ~/.config/fskanban/config.yml

Every key can be overridden with an FSKANBAN_ environment variable,
for example FSKANBAN_STORAGE_DATA_PATH or FSKANBAN_LOG_LEVEL.

Examples:
  # Show current configuration
  fskanban config show

  # Edit config in editor
  fskanban config edit

  # Show config file location
  fskanban config path

  # Reset config to defaults
  fskanban config reset`,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current configuration",
	Annotations: map[string]string{skipContainer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if formatter.Structured() {
			return formatter.Print(cfg)
		}
		return output.NewFormatter(output.FormatYAML, os.Stdout).Print(cfg)
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit config in editor",
	Long: `Open the configuration file in your default editor.

The editor is determined by the EDITOR environment variable (default: vi).`,
	Annotations: map[string]string{skipContainer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := loader.GetConfigPath()

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		printer.Info("Opening config file: %s", path)
		printer.Subtle("Editor: %s", editor)

		editorCmd := exec.Command(editor, path)
		editorCmd.Stdin = os.Stdin
		editorCmd.Stdout = os.Stdout
		editorCmd.Stderr = os.Stderr

		if err := editorCmd.Run(); err != nil {
			return fmt.Errorf("failed to run editor: %w", err)
		}

		if _, err := loader.Load(); err != nil {
			printer.Warning("Config no longer loads: %v", err)
			return nil
		}
		printer.Success("Config file edited")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Show config file location",
	Annotations: map[string]string{skipContainer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(loader.GetConfigPath())
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Reset config to defaults",
	Annotations: map[string]string{skipContainer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path := loader.GetConfigPath()

		if !force && !confirm(fmt.Sprintf("Overwrite %s with defaults", path)) {
			printer.Info("Reset cancelled")
			return nil
		}

		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		if err := loader.Save(config.Default(homeDir)); err != nil {
			return err
		}
		printer.Success("Config reset: %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configResetCmd)

	configResetCmd.Flags().BoolP("force", "f", false, "Reset without confirmation")
}
