package cli

import (
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/starmap/pkg/pipeline"
)

var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	shells := make([]string, 0, len(completionGenerators))
	for shell := range completionGenerators {
		shells = append(shells, shell)
	}
	slices.Sort(shells)

	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for starmap.

Bash:       source <(starmap completion bash)
Zsh:        starmap completion zsh > "${fpath[1]}/_starmap"
Fish:       starmap completion fish | source
PowerShell: starmap completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionGenerators[args[0]](cmd.Root(), os.Stdout)
		},
	}
}

// registerRenderCompletions completes the enumerated render flags.
func registerRenderCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("type", fixedCompletion(pipeline.ValidVizTypes))
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(pipeline.ValidFormats))
	_ = cmd.MarkFlagFilename("config", "toml")
}

func fixedCompletion(valid map[string]bool) cobra.CompletionFunc {
	values := make([]string, 0, len(valid))
	for v := range valid {
		values = append(values, v)
	}
	slices.Sort(values)
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
