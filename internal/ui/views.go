package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/smokyabdulrahman/sakeena/internal/display"
	"github.com/smokyabdulrahman/sakeena/internal/locale"
)

// Minimum width for laying the five prayer cards side by side.
const cardsMinWidth = 5 * 18

// Lines used around the schedule rows: a blank line, the heading, the header
// row and the separator above; the footer below.
const (
	tableChrome  = 4
	footerHeight = 2
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return m.state.Locale.Text(locale.Loading)
	}

	sections := []string{m.renderTop()}
	if table := m.renderSchedule(); table != "" {
		sections = append(sections, table)
	}
	sections = append(sections, m.renderFooter())

	return m.align(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// align pushes every line to the right edge for right-to-left locales.
func (m *Model) align(block string) string {
	if !m.state.Locale.RTL() {
		return block
	}
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, l)
	}
	return strings.Join(lines, "\n")
}

// renderTop renders everything above the schedule table.
func (m *Model) renderTop() string {
	l := m.state.Locale
	var sections []string

	sections = append(sections,
		m.styles.Title.Render(l.Text(locale.AppName)),
		m.styles.Tagline.Render(l.Text(locale.Tagline)),
		"",
	)

	badge := truncate.StringWithTail(m.state.LocationLabel(), uint(max(10, m.width-4)), "…")
	sections = append(sections, m.styles.Badge.Render(badge), "")

	if m.state.Ramadan() {
		sections = append(sections, m.renderBanner(), "")
	}

	if m.state.Today == nil {
		sections = append(sections, m.styles.Label.Render(l.Text(locale.Loading)))
	} else {
		sections = append(sections,
			m.renderField(l.Text(locale.HijriDate), m.state.HijriLabel()),
			m.renderField(l.Text(locale.GregorianDate), m.state.GregorianLabel()),
		)
	}
	sections = append(sections, m.styles.Clock.Render(m.state.ClockLabel()), "")

	if cards := m.renderCards(); cards != "" {
		sections = append(sections, m.styles.Value.Render(l.Text(locale.TodaysPrayers)), cards)
	}

	if m.mode == ModeForm {
		sections = append(sections, "", m.renderForm())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderField(label, value string) string {
	return m.styles.Label.Render(label+": ") + m.styles.Value.Render(value)
}

func (m *Model) renderBanner() string {
	l := m.state.Locale
	width := min(m.width-2, 64)
	inner := max(10, width-6)

	text := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Bold(true).Render(l.Text(locale.RamadanTitle)),
		wordwrap.String(l.Text(locale.RamadanGreeting), inner),
	)
	return m.styles.Banner.Width(width - 2).Render(text)
}

func (m *Model) renderCards() string {
	cards := m.state.Cards()
	if len(cards) == 0 {
		return ""
	}
	nextCaption := m.state.Locale.Text(locale.NextPrayer)

	if m.width < cardsMinWidth {
		var lines []string
		for _, c := range cards {
			line := c.Label + "  " + c.Time
			if c.Next {
				line = display.Accent("▸ "+line) + "  " + m.styles.Label.Render(nextCaption)
			} else {
				line = "  " + line
			}
			lines = append(lines, line)
		}
		return strings.Join(lines, "\n")
	}

	width := m.width/len(cards) - 4
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		caption := " "
		style := m.styles.Card
		if c.Next {
			caption = nextCaption
			style = m.styles.NextCard
		}
		rendered = append(rendered, style.Width(width).Render(
			lipgloss.JoinVertical(lipgloss.Center, caption, c.Label, c.Time),
		))
	}
	if m.state.Locale.RTL() {
		for i, j := 0, len(rendered)-1; i < j; i, j = i+1, j-1 {
			rendered[i], rendered[j] = rendered[j], rendered[i]
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderForm() string {
	l := m.state.Locale
	labels := [2]string{l.Text(locale.CountryName), l.Text(locale.CityName)}

	labelWidth := max(lipgloss.Width(labels[0]), lipgloss.Width(labels[1]))
	lines := []string{m.styles.Value.Render(l.Text(locale.ChangeLocation))}
	for i, label := range labels {
		value := m.fields[i]
		style := m.styles.Input
		if i == m.focus {
			value += "█"
			style = m.styles.Focused
		}
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(label))
		lines = append(lines, m.styles.Label.Render(label+pad+"  ")+style.Width(30).Render(value))
	}
	lines = append(lines, m.styles.Help.Render("enter "+l.Text(locale.Search)+" · tab · esc"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// visibleRows is the number of schedule rows that fit under the top part.
func (m *Model) visibleRows() int {
	if m.height == 0 {
		return len(m.state.Month)
	}
	return max(3, m.height-lipgloss.Height(m.renderTop())-tableChrome-footerHeight)
}

func (m *Model) renderSchedule() string {
	rows := m.state.Rows()
	if len(rows) == 0 {
		return ""
	}

	start := min(m.topRow, len(rows))
	end := min(start+m.visibleRows(), len(rows))

	tbl := display.NewTable(m.state.Headers())
	tbl.SetRTL(m.state.Locale.RTL())
	for i, r := range rows[start:end] {
		tbl.AddRow(append([]string{r.Gregorian, r.Hijri}, r.Times...))
		if r.Today {
			tbl.SetHighlightRow(i)
		}
	}

	title := m.styles.Value.Render(m.state.Locale.Text(locale.ThirtyDaySchedule))
	return lipgloss.JoinVertical(lipgloss.Left, "", title, strings.TrimRight(tbl.Render(), "\n"))
}

func (m *Model) renderFooter() string {
	l := m.state.Locale
	left := l.Text(locale.Help)
	if m.message != "" {
		left = m.styles.Message.Render(m.message)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		m.styles.Help.Render(left+"  ·  "+l.Text(locale.PoweredBy)),
	)
}
