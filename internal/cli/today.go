package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/sakeena/internal/display"
	"github.com/smokyabdulrahman/sakeena/internal/locale"
	"github.com/smokyabdulrahman/sakeena/internal/prayer"
	"github.com/smokyabdulrahman/sakeena/internal/view"
)

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's prayer times",
		Long:  "Print today's five prayers with the next one highlighted, the Hijri and Gregorian dates, and the Ramadan greeting during Ramadan.",
		Args:  cobra.NoArgs,
		RunE:  runToday,
	}
}

func runToday(cmd *cobra.Command, args []string) error {
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
		return printTodayJSON(out, s)
	}
	printTodayRich(out, s)
	return nil
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(w io.Writer, s *view.State) {
	l := s.Locale

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s  %s\n", display.Bold(l.Text(locale.AppName)), display.Gray(s.LocationLabel()))
	fmt.Fprintf(w, "  %s: %s\n", l.Text(locale.HijriDate), display.Green(s.HijriLabel()))
	fmt.Fprintf(w, "  %s: %s\n", l.Text(locale.GregorianDate), s.GregorianLabel())
	fmt.Fprintf(w, "  %s\n", display.Cyan(s.ClockLabel()))

	if s.Ramadan() {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  %s\n", display.Gold(l.Text(locale.RamadanTitle)))
		fmt.Fprintf(w, "  %s\n", display.Gold(l.Text(locale.RamadanGreeting)))
	}
	fmt.Fprintln(w)

	cards := s.Cards()
	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = c.Label
	}
	width := maxWidth(labels)

	current := prayer.Current(s.Today.Times, s.Now)
	for _, c := range cards {
		line := fmt.Sprintf("  %s  %s", padRight(c.Label, width), c.Time)
		switch {
		case c.Next:
			suffix := "  <- " + l.Text(locale.NextPrayer)
			if u, ok := s.Upcoming(); ok {
				suffix += " " + l.Digits(prayer.FormatRemaining(u.Remaining))
			}
			fmt.Fprintln(w, display.Accent(line+suffix))
		case c.Name == current:
			fmt.Fprintln(w, display.Dim(line))
		default:
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w)
}

// todayJSON is the JSON output structure for the today command. Times are
// raw "HH:MM" values; labels are localized.
type todayJSON struct {
	Locale    string            `json:"locale"`
	Location  string            `json:"location"`
	Gregorian string            `json:"gregorian"`
	Hijri     string            `json:"hijri"`
	Ramadan   bool              `json:"ramadan"`
	Timezone  string            `json:"timezone,omitempty"`
	Timings   map[string]string `json:"timings"`
	Current   string            `json:"current"`
	Next      *todayJSONNext    `json:"next"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Label     string `json:"label"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, s *view.State) error {
	timings := make(map[string]string, len(prayer.Names))
	for _, name := range prayer.Names {
		raw, _ := s.Today.Times.Get(name)
		if norm, err := prayer.Normalize(raw); err == nil {
			raw = norm
		}
		timings[strings.ToLower(name)] = raw
	}

	out := todayJSON{
		Locale:    s.Locale.String(),
		Location:  s.LocationLabel(),
		Gregorian: s.GregorianLabel(),
		Hijri:     s.HijriLabel(),
		Ramadan:   s.Ramadan(),
		Timezone:  s.Today.Timezone,
		Timings:   timings,
		Current:   strings.ToLower(prayer.Current(s.Today.Times, s.Now)),
	}
	if u, ok := s.Upcoming(); ok {
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(u.Name),
			Label:     u.Label,
			Time:      u.Time,
			Remaining: prayer.FormatRemaining(u.Remaining),
		}
	}

	return writeJSON(w, out)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
