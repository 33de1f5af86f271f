// Package ui is the interactive prayer schedule screen.
package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/sakeena/internal/config"
	"github.com/smokyabdulrahman/sakeena/internal/display"
	"github.com/smokyabdulrahman/sakeena/internal/locale"
	"github.com/smokyabdulrahman/sakeena/internal/source"
	"github.com/smokyabdulrahman/sakeena/internal/view"
)

// loadTimeout bounds one load, all of its fetches included.
const loadTimeout = 30 * time.Second

// Mode selects what the keyboard drives.
type Mode int

const (
	ModeSchedule Mode = iota
	ModeForm
)

// Form fields.
const (
	fieldCountry = iota
	fieldCity
)

// Options wires the screen to its collaborators.
type Options struct {
	Config     *config.Config
	ConfigPath string // where locale changes are saved; empty disables saving
	Loader     *view.Loader
	Place      *source.Place // configured place; nil locates the user
	Watcher    *config.Watcher
	Log        zerolog.Logger
	Now        func() time.Time
}

// Model is the bubbletea model of the prayer schedule screen.
type Model struct {
	state      *view.State
	loader     *view.Loader
	cfg        *config.Config
	cfgPath    string
	configured *source.Place
	watcher    *config.Watcher
	log        zerolog.Logger
	now        func() time.Time

	schedule    cron.Schedule
	nextRefresh time.Time

	// UI state
	mode     Mode
	fields   [2]string
	focus    int
	topRow   int
	width    int
	height   int
	message  string
	quitting bool

	styles Styles
}

// Styles holds the lipgloss styles used by the view.
type Styles struct {
	Title    lipgloss.Style
	Tagline  lipgloss.Style
	Badge    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Clock    lipgloss.Style
	Card     lipgloss.Style
	NextCard lipgloss.Style
	Banner   lipgloss.Style
	Input    lipgloss.Style
	Focused  lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
}

// NewModel creates the screen. Nothing is fetched until Init runs.
func NewModel(opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	cfg := opts.Config
	if cfg == nil {
		d := config.Defaults()
		cfg = &d
	}

	m := &Model{
		state:      view.New(cfg.Locale(), cfg.TwentyFour(), opts.Now()),
		loader:     opts.Loader,
		cfg:        cfg,
		cfgPath:    opts.ConfigPath,
		configured: opts.Place,
		watcher:    opts.Watcher,
		log:        opts.Log.With().Str("component", "ui").Logger(),
		now:        opts.Now,
		styles:     DefaultStyles(),
	}

	sched, err := cfg.RefreshSchedule()
	if err != nil {
		m.log.Warn().Err(err).Msg("refresh disabled")
	} else {
		m.schedule = sched
		m.nextRefresh = sched.Next(m.state.Now)
	}

	return m
}

// DefaultStyles returns the emerald and gold theme.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(display.ColorEmerald).
			Bold(true),
		Tagline: lipgloss.NewStyle().
			Foreground(display.ColorGray).
			Italic(true),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("29")).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(display.ColorGray),
		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true),
		Clock: lipgloss.NewStyle().
			Foreground(display.ColorSky).
			Bold(true),
		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			Align(lipgloss.Center),
		NextCard: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(display.ColorEmerald).
			Foreground(display.ColorEmerald).
			Bold(true).
			Padding(0, 1).
			Align(lipgloss.Center),
		Banner: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(display.ColorGold).
			Foreground(display.ColorGold).
			Padding(0, 2).
			Align(lipgloss.Center),
		Input: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		Focused: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(display.ColorGold).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Message: lipgloss.NewStyle().
			Foreground(display.ColorGold).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
	}
}

// State exposes the view-model, for tests.
func (m *Model) State() *view.State { return m.state }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.tickCmd(),
		m.loadInitial(),
		m.watchCmd(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		m.state.Tick(time.Time(msg))
		cmds := []tea.Cmd{m.tickCmd()}
		// A due refresh waits for a running load instead of superseding it.
		if m.schedule != nil && !m.nextRefresh.IsZero() && !m.state.Loading && !m.state.Now.Before(m.nextRefresh) {
			m.nextRefresh = m.schedule.Next(m.state.Now)
			m.log.Info().Time("next", m.nextRefresh).Msg("scheduled refresh")
			cmds = append(cmds, m.refresh())
		}
		return m, tea.Batch(cmds...)

	case loadedMsg:
		r := view.Result(msg)
		if !m.state.Apply(r) {
			m.log.Debug().Int("seq", r.Seq).Msg("dropped superseded load")
			return m, nil
		}
		m.clampScroll()
		return m, nil

	case configChangedMsg:
		m.applyConfig(msg.cfg)
		return m, m.watchCmd()
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.mode == ModeForm {
		return m.handleFormKeys(msg)
	}

	m.message = ""
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "l", "L":
		m.toggleLocale()

	case "c", "C":
		m.mode = ModeForm
		m.focus = fieldCountry

	case "r", "R":
		return m, m.refresh()

	case "j", "down":
		m.topRow++
		m.clampScroll()

	case "k", "up":
		m.topRow--
		m.clampScroll()

	case "g", "home":
		m.topRow = 0
	}

	return m, nil
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeSchedule
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.focus = 1 - m.focus

	case tea.KeyEnter:
		city := strings.TrimSpace(m.fields[fieldCity])
		country := strings.TrimSpace(m.fields[fieldCountry])
		if city == "" || country == "" {
			return m, nil
		}
		m.mode = ModeSchedule
		return m, m.search(city, country)

	case tea.KeyBackspace:
		f := []rune(m.fields[m.focus])
		if len(f) > 0 {
			m.fields[m.focus] = string(f[:len(f)-1])
		}

	case tea.KeySpace:
		m.fields[m.focus] += " "

	case tea.KeyRunes:
		m.fields[m.focus] += string(msg.Runes)
	}

	return m, nil
}

// toggleLocale switches the language and stores the preference. Only the
// language is written back; other settings in the file stay as they are.
func (m *Model) toggleLocale() {
	l := m.state.ToggleLocale()
	m.cfg.SetLocale(l)
	if m.cfgPath == "" {
		return
	}
	if err := saveLocale(m.cfgPath, l); err != nil {
		m.log.Warn().Err(err).Msg("saving language preference")
		m.message = err.Error()
	}
}

func saveLocale(path string, l locale.Locale) error {
	stored, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	stored.SetLocale(l)
	return stored.SaveTo(path)
}

// applyConfig takes over display settings changed by another process.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.Language != "" {
		m.cfg.Language = cfg.Language
		m.state.Locale = m.cfg.Locale()
	}
	if cfg.TimeFormat != "" {
		m.cfg.TimeFormat = cfg.TimeFormat
		m.state.TwentyFour = m.cfg.TwentyFour()
	}
}

func (m *Model) clampScroll() {
	maxTop := len(m.state.Month) - m.visibleRows()
	if m.topRow > maxTop {
		m.topRow = maxTop
	}
	if m.topRow < 0 {
		m.topRow = 0
	}
}

func (m *Model) loadInitial() tea.Cmd {
	seq := m.state.Begin()
	loader, place := m.loader, m.configured
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return loadedMsg(loader.Initial(ctx, seq, place))
	}
}

func (m *Model) search(city, country string) tea.Cmd {
	seq := m.state.Begin()
	loader := m.loader
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return loadedMsg(loader.Search(ctx, seq, city, country))
	}
}

// refresh fetches the shown place again, or starts over when nothing has
// been shown yet.
func (m *Model) refresh() tea.Cmd {
	if m.state.Today == nil {
		return m.loadInitial()
	}
	seq := m.state.Begin()
	loader, place := m.loader, m.state.Place
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return loadedMsg(loader.Refresh(ctx, seq, place))
	}
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) watchCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		cfg, ok := <-changes
		if !ok {
			return nil
		}
		return configChangedMsg{cfg: cfg}
	}
}

// Message types
type tickMsg time.Time
type loadedMsg view.Result
type configChangedMsg struct {
	cfg *config.Config
}
