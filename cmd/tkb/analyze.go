package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/tkb/internal/analysis"
	"github.com/Zuo-Peng/tkb/internal/config"
	"github.com/Zuo-Peng/tkb/internal/input"
	"github.com/Zuo-Peng/tkb/internal/parse"
	"github.com/Zuo-Peng/tkb/internal/render"
	"github.com/Zuo-Peng/tkb/internal/tui"
)

var errNoData = errors.New("no timetable data found")

func analyzeCmd() *cobra.Command {
	var format string
	var top, dayOffset int
	var useSample, noTUI bool

	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Extract sessions from a timetable page and show statistics",
		Long: `Analyze a saved UMS timetable page. The page is read from the given file,
or from stdin when the argument is "-" or missing.

When stdout is a terminal an interactive dashboard is shown; otherwise a plain
report is printed. Use --format tsv or --format json for machine output:
  tkb analyze tkb.html --format json | jq '.statistics.totalPeriods'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "tsv", "json":
			default:
				return fmt.Errorf("unknown format %q (want text, tsv or json)", format)
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if cmd.Flags().Changed("day-offset") {
				if dayOffset < 0 {
					return fmt.Errorf("day offset must be >= 0, got %d", dayOffset)
				}
				cfg.DayColumnOffset = dayOffset
			}
			if cmd.Flags().Changed("top") {
				cfg.TopRooms = top
			}

			src, err := readSource(args, useSample, cmd.InOrStdin())
			if err != nil {
				return err
			}

			logger := newLogger()
			extractor := parse.NewExtractor(parse.OptionsFromConfig(cfg), logger)
			res := analysis.Run(extractor, src, cfg.TopRooms)
			logger.Debug("analysis done", "summary", res.Summary())
			if res.Empty {
				return errNoData
			}

			out := cmd.OutOrStdout()
			tty, width := terminal(out)
			opts := render.Options{
				DayNames:      cfg.DayNames,
				WeekLabelTrim: cfg.WeekLabelTrim,
				Width:         width,
				Color:         tty,
			}

			switch format {
			case "tsv":
				return render.TSV(out, res.Sessions)
			case "json":
				return writeJSON(out, res)
			}

			// Interactive dashboard when stdout is a terminal; plain report for pipes
			if !noTUI && tty {
				return tui.Run(res, opts)
			}
			_, err = io.WriteString(out, render.Report(res, opts))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format (text/tsv/json)")
	cmd.Flags().IntVar(&top, "top", 0, "Entries in the room and subject rankings (default from config)")
	cmd.Flags().BoolVar(&useSample, "sample", false, "Analyze the built-in sample timetable")
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "Print the plain report even on a terminal")
	cmd.Flags().IntVar(&dayOffset, "day-offset", 1, "Columns before Monday in each row (label column)")

	return cmd
}

// terminal reports whether w is a terminal and, if so, its width in columns.
func terminal(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return true, 0
	}
	return true, width
}

func readSource(args []string, useSample bool, stdin io.Reader) (string, error) {
	if useSample {
		if len(args) > 0 {
			return "", errors.New("--sample takes no file argument")
		}
		return input.Sample(), nil
	}
	arg := input.Stdin
	if len(args) > 0 {
		arg = args[0]
	}
	src, err := input.Read(arg, stdin)
	if errors.Is(err, input.ErrEmpty) {
		return "", errNoData
	}
	return src, err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
