package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell, covering every schematic
command and flag.

Load it for the current session:

  Bash:        source <(schematic completion bash)
  Fish:        schematic completion fish | source
  PowerShell:  schematic completion powershell | Out-String | Invoke-Expression

Or install it permanently:

  Bash (Linux):   schematic completion bash > /etc/bash_completion.d/schematic
  Bash (macOS):   schematic completion bash > $(brew --prefix)/etc/bash_completion.d/schematic
  Zsh:            schematic completion zsh > "${fpath[1]}/_schematic"
  Fish:           schematic completion fish > ~/.config/fish/completions/schematic.fish

Zsh needs completion enabled first ("autoload -U compinit; compinit" in
~/.zshrc); open a new shell after installing.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
