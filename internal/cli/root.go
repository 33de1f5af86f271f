package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/sakeena/internal/config"
	"github.com/smokyabdulrahman/sakeena/internal/locale"
	"github.com/smokyabdulrahman/sakeena/internal/logging"
)

// Global flags shared across all subcommands.
var (
	FlagLang       string
	FlagCity       string
	FlagCountry    string
	FlagLatitude   float64
	FlagLongitude  float64
	FlagMethod     int
	FlagSchool     int
	FlagJSON       bool
	FlagTimeFormat string
	FlagNoGeo      bool
	FlagLogLevel   string
	FlagLogFile    string
)

// loadedConfig holds the config loaded during PersistentPreRunE, with the
// environment applied. Available to all subcommand handlers.
var loadedConfig *config.Config

// logger is built during PersistentPreRunE. closeLog releases its file.
var (
	logger   = zerolog.Nop()
	closeLog = func() error { return nil }
)

// NewRootCmd creates the root command. The version parameter is set by the
// calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sakeena",
		Short: "Prayer times in English and Arabic",
		Long: "Sakeena shows today's prayer times, the next prayer, the Hijri date and a\n" +
			"30-day schedule, in English or Arabic, powered by the Al Adhan API.\n\n" +
			"Run without a subcommand for the interactive screen.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.ApplyEnv(nil); err != nil {
				return fmt.Errorf("invalid environment: %w", err)
			}
			loadedConfig = cfg
			return setupLogging(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeLog()
		},
		// Default action: the interactive screen.
		RunE:          runInteractive,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagLang, "lang", "", "Display language: english, arabic or a tag like ar-EG (overrides config)")
	pf.StringVar(&FlagCity, "city", "", "Override city (takes precedence over config)")
	pf.StringVar(&FlagCountry, "country", "", "Override country")
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude")
	pf.IntVar(&FlagMethod, "method", 5, "Override calculation method (0-23)")
	pf.IntVar(&FlagSchool, "school", -1, "Override school (0=Shafi, 1=Hanafi)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.BoolVar(&FlagNoGeo, "no-geolocation", false, "Do not locate by IP; fall back to Cairo, Egypt")
	pf.StringVar(&FlagLogLevel, "log-level", logging.DefaultLevel, "Log level: debug, info, warn, error")
	pf.StringVar(&FlagLogFile, "log-file", "", "Write logs to this file (the interactive screen logs nowhere otherwise)")

	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newLangCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())

	return rootCmd
}

// setupLogging logs to stderr for subcommands. The interactive screen owns
// the terminal, so it logs only to --log-file.
func setupLogging(cmd *cobra.Command) error {
	var (
		log zerolog.Logger
		err error
	)
	switch {
	case FlagLogFile != "":
		log, closeLog, err = logging.Open(FlagLogLevel, FlagLogFile)
	case cmd == cmd.Root():
		log, err = logging.New(FlagLogLevel, io.Discard, false)
	default:
		log, err = logging.New(FlagLogLevel, os.Stderr, true)
	}
	if err != nil {
		return err
	}
	logger = log
	return nil
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > environment > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Config{}
	if loadedConfig != nil {
		cfg = *loadedConfig
	}
	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "lang") {
		l, err := locale.Parse(FlagLang)
		if err != nil {
			return nil, err
		}
		cfg.SetLocale(l)
	}
	if flagWasSet(flags, root, "city") {
		cfg.City = FlagCity
	}
	if flagWasSet(flags, root, "country") {
		cfg.Country = FlagCountry
	}
	if flagWasSet(flags, root, "latitude") {
		cfg.Latitude = FlagLatitude
	}
	if flagWasSet(flags, root, "longitude") {
		cfg.Longitude = FlagLongitude
	}
	if flagWasSet(flags, root, "method") {
		method := FlagMethod
		cfg.Method = &method
	} else if cfg.Method == nil {
		cfg.Method = defaults.Method
	}
	if flagWasSet(flags, root, "school") {
		school := FlagSchool
		cfg.School = &school
	} else if cfg.School == nil {
		cfg.School = defaults.School
	}
	if flagWasSet(flags, root, "time-format") {
		if FlagTimeFormat != "12h" && FlagTimeFormat != "24h" {
			return nil, fmt.Errorf("invalid --time-format %q: must be \"12h\" or \"24h\"", FlagTimeFormat)
		}
		cfg.TimeFormat = FlagTimeFormat
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}
	if cfg.Language == "" {
		cfg.Language = defaults.Language
	}
	if cfg.Refresh == "" {
		cfg.Refresh = defaults.Refresh
	}

	return &cfg, nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
