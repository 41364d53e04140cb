package commands

import (
	"os"

	"github.com/spf13/cobra"

	"fskanban/internal/domain/entity"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for fskanban.

To load completions:

Bash:
  $ source <(fskanban completion bash)

  # To load completions for each session, execute once:
  $ fskanban completion bash > /etc/bash_completion.d/fskanban

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ fskanban completion zsh > "${fpath[1]}/_fskanban"

Fish:
  $ fskanban completion fish | source

  # To load completions for each session, execute once:
  $ fskanban completion fish > ~/.config/fish/completions/fskanban.fish

PowerShell:
  PS> fskanban completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Annotations:           map[string]string{skipContainer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		default:
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

// columnNames completes column arguments
func columnNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, c := range entity.DefaultColumns() {
		names = append(names, c.Title)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// moveArgs completes the column argument of task move
func moveArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return columnNames(cmd, args, toComplete)
}
