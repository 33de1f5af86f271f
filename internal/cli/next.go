package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/sakeena/internal/prayer"
)

var flagFormat string

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Print the next upcoming prayer on one line, for status bars such as tmux.",
		Args:  cobra.NoArgs,
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	s, err := loadState(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	u, ok := s.Upcoming()
	if !ok {
		return fmt.Errorf("could not determine next prayer")
	}
	fmt.Fprint(cmd.OutOrStdout(), prayer.FormatOutput(u, flagFormat))
	return nil
}
