package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Abraxas-365/inputassist/assistant"
	"github.com/Abraxas-365/inputassist/config"
	"github.com/Abraxas-365/inputassist/document"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	chunksOutput     string
	chunksWithText   bool
	chunksWithTokens bool
)

// chunkListing is the structured form of the chunks command.
type chunkListing struct {
	Source    string           `json:"source" yaml:"source"`
	LoadID    string           `json:"load_id" yaml:"load_id"`
	ChunkSize int              `json:"chunk_size" yaml:"chunk_size"`
	Chunks    []document.Chunk `json:"chunks" yaml:"chunks"`
}

var chunksCmd = &cobra.Command{
	Use:   "chunks <source>",
	Short: "List the chunks of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var counter document.TokenCounter
		if wantTokenCounts(cfg, chunksWithTokens) {
			counter = tokenCounter(cfg)
		}

		a, err := loadSession(cmd.Context(), args[0], assistant.WithTokenCounter(counter))
		if err != nil {
			return err
		}
		return writeChunks(cmd.OutOrStdout(), a, chunksOutput, chunksWithText, counter != nil)
	},
}

func init() {
	chunksCmd.Flags().StringVarP(&chunksOutput, "output", "o", "text", "output format: text, json or yaml")
	chunksCmd.Flags().BoolVar(&chunksWithText, "text", false, "include chunk text in json and yaml output")
	chunksCmd.Flags().BoolVar(&chunksWithTokens, "tokens", false, "count tokens per chunk (always on with --unit tokens)")
}

// wantTokenCounts reports whether the tokenizer has to be loaded. Loading it
// may download the encoding, so plain rune listings skip it.
func wantTokenCounts(c *config.Config, requested bool) bool {
	return requested || c.Chunk.Unit == document.UnitTokens
}

func writeChunks(w io.Writer, a *assistant.Assistant, format string, withText, withTokens bool) error {
	chunks := a.Chunks()
	if !withText {
		for i := range chunks {
			chunks[i].Text = ""
		}
	}

	listing := chunkListing{
		Source:    a.Source(),
		LoadID:    a.LoadID(),
		ChunkSize: a.ChunkSize(),
		Chunks:    chunks,
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(listing); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		if withTokens {
			fmt.Fprintln(tw, "CHUNK\tRUNES\tTOKENS")
		} else {
			fmt.Fprintln(tw, "CHUNK\tRUNES")
		}
		for _, c := range chunks {
			if withTokens {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", c.Label(), c.Runes, c.Tokens)
			} else {
				fmt.Fprintf(tw, "%s\t%d\n", c.Label(), c.Runes)
			}
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
