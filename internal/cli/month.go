package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/sakeena/internal/display"
	"github.com/smokyabdulrahman/sakeena/internal/locale"
	"github.com/smokyabdulrahman/sakeena/internal/view"
)

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show the 30-day schedule",
		Long:  "Print up to 30 days of the current month as a table, with today highlighted.",
		Args:  cobra.NoArgs,
		RunE:  runMonth,
	}
}

func runMonth(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := loadState(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		return printMonthJSON(out, s)
	}
	printMonthTable(out, s)
	return nil
}

func printMonthTable(w io.Writer, s *view.State) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  %s\n", display.Bold(s.Locale.Text(locale.ThirtyDaySchedule)), display.Gray(s.LocationLabel()))
	fmt.Fprintln(w)

	rows := s.Rows()
	if len(rows) == 0 {
		fmt.Fprintf(w, "  %s\n\n", display.Dim("-"))
		return
	}

	tbl := display.NewTable(s.Headers())
	tbl.SetRTL(s.Locale.RTL())
	for i, r := range rows {
		tbl.AddRow(append([]string{r.Gregorian, r.Hijri}, r.Times...))
		if r.Today {
			tbl.SetHighlightRow(i)
		}
	}
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
}

// monthJSON is one schedule row in JSON output.
type monthJSON struct {
	Gregorian string   `json:"gregorian"`
	Hijri     string   `json:"hijri"`
	Times     []string `json:"times"`
	Today     bool     `json:"today,omitempty"`
}

func printMonthJSON(w io.Writer, s *view.State) error {
	rows := s.Rows()
	out := make([]monthJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, monthJSON{
			Gregorian: r.Gregorian,
			Hijri:     r.Hijri,
			Times:     r.Times,
			Today:     r.Today,
		})
	}
	return writeJSON(w, out)
}
