package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/inputassist/assistant"
	"github.com/Abraxas-365/inputassist/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	// Resolved in PersistentPreRunE.
	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inputassist",
	Short: "Split documents into prompt sized chunks",
	Long: `inputassist extracts the text of a PDF, DOCX, HTML or plain text document,
splits it into fixed size chunks and hands out one chunk at a time with
an optional prefix, ready to paste into a chat model.

A source is a local path, an http(s) URL or an s3://bucket/key URI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}
		if verbose {
			c.Log.Level = "debug"
		}
		cfg = c
		logger = config.NewLogger(os.Stderr, c.Log)
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file path (default ./inputassist.yaml or the user config dir)")
	pf.Int("size", assistant.DefaultChunkSize, "chunk size")
	pf.String("unit", "runes", "chunk size unit: runes or tokens")
	pf.String("prefix", "", "text placed before every chunk")
	pf.String("token-model", "gpt-4", "tokenizer model for the tokens unit")
	pf.Duration("timeout", 0, "timeout of a web fetch (0 waits forever)")
	pf.String("region", "", "AWS region for s3:// sources and bedrock")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(chunksCmd, showCmd, copyCmd, sendCmd, tuiCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
