package main

import (
	"github.com/Abraxas-365/inputassist/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [source]",
	Short: "Browse and copy chunks interactively",
	Long: `Launch a terminal UI that lists the chunks of a document and previews
the selected one with the prefix applied.

Key bindings:
  Up/Down, j/k  Move in the chunk list
  Enter         Select chunk and preview it
  c             Copy the selected chunk to the clipboard
  p             Edit the prefix (Esc to return)
  o             Open another source (path, URL or s3:// URI)
  s             Change the chunk size
  Tab           Cycle focus
  q, Ctrl+C     Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAssistant(cfg)
		if err != nil {
			return err
		}

		var source string
		if len(args) == 1 {
			source = args[0]
		}

		return tui.Run(tui.ModelConfig{
			Assistant: a,
			Open:      sourceOpener(cmd.Context(), cfg),
			Source:    source,
			Context:   cmd.Context(),
		})
	},
}
