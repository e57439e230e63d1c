package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/tkb/internal/analysis"
	"github.com/Zuo-Peng/tkb/internal/config"
	"github.com/Zuo-Peng/tkb/internal/input"
	"github.com/Zuo-Peng/tkb/internal/parse"
	"github.com/Zuo-Peng/tkb/internal/render"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: show the resolved config and analyze the sample",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "=== Config ===")
			if cfg.Path == "" {
				fmt.Fprintln(out, "  File: (none, using defaults)")
			} else {
				fmt.Fprintf(out, "  File: %s\n", cfg.Path)
			}
			fmt.Fprintf(out, "  Week marker:      %s\n", cfg.WeekMarker)
			fmt.Fprintf(out, "  Afternoon marker: %s\n", cfg.AfternoonMarker)
			fmt.Fprintf(out, "  Evening marker:   %s\n", cfg.EveningMarker)
			fmt.Fprintf(out, "  Min cells:        %d\n", cfg.MinCells)
			fmt.Fprintf(out, "  Day offset:       %d\n", cfg.DayColumnOffset)
			fmt.Fprintf(out, "  Day names:        %s\n", strings.Join(cfg.DayNames, ", "))
			fmt.Fprintf(out, "  Listen address:   %s\n", cfg.ListenAddress)

			fmt.Fprintln(out, "\n=== Sample ===")
			extractor := parse.NewExtractor(parse.OptionsFromConfig(cfg), newLogger())
			res := analysis.Run(extractor, input.Sample(), cfg.TopRooms)
			fmt.Fprintf(out, "  %s\n", res.Summary())
			if res.Empty {
				fmt.Fprintln(out, "  Status: NO DATA (check the markers above)")
				return nil
			}
			if day := res.Statistics.BusiestDay(); day >= 0 {
				fmt.Fprintf(out, "  Busiest day: %s\n", render.DayName(cfg.DayNames, day))
			}

			outside := 0
			for _, c := range res.Sessions {
				if c.DayOfWeek < 0 || c.DayOfWeek > 6 {
					outside++
				}
			}
			if outside > 0 {
				fmt.Fprintf(out, "  Status: %d sessions outside Monday-Sunday (check day offset)\n", outside)
			} else {
				fmt.Fprintln(out, "  Status: OK")
			}
			return nil
		},
	}
}
