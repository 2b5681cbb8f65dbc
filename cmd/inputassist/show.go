package main

import (
	"errors"
	"fmt"

	"github.com/Abraxas-365/inputassist/assistant"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <source> <n>",
	Short: "Print chunk n with the prefix",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		i, err := chunkIndex(args[1], a)
		if err != nil {
			return err
		}

		text, err := a.Select(i)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <source> <n>",
	Short: "Copy chunk n with the prefix to the clipboard",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		i, err := chunkIndex(args[1], a)
		if err != nil {
			return err
		}

		if err := a.Copy(i); err != nil {
			if errors.Is(err, assistant.ErrNoClipboard) {
				return fmt.Errorf("no system clipboard available, use show instead")
			}
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Copied chunk %d of %d\n", i+1, a.Len())
		return nil
	},
}
