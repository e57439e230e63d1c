package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/tkb/internal/input"
)

func sampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print the built-in sample timetable page",
		Long: `Print a small two-week UMS timetable page. Useful for trying the tool:
  tkb sample | tkb analyze -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), input.Sample())
			return err
		},
	}
}
