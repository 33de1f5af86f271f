package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Format constants for status-line output.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatFull               = "full"
)

// Upcoming describes the next prayer ready for display. Label and Time are
// already localized by the caller; Name stays canonical.
type Upcoming struct {
	Name      string
	Label     string
	Time      string
	Remaining time.Duration
}

// FormatData is the data passed to custom templates.
type FormatData struct {
	Name      string // Canonical name, e.g. "Asr"
	Label     string // Localized name, e.g. "العصر"
	ShortName string // e.g. "A"
	Time      string // e.g. "3:45 PM"
	Remaining string // e.g. "2h 15m"
	Hours     int
	Minutes   int
}

// FormatOutput renders u in the given mode. A mode containing "{{" is a
// text/template over FormatData, e.g. "{{.Label}} in {{.Remaining}}".
func FormatOutput(u Upcoming, mode string) string {
	remaining := FormatRemaining(u.Remaining)
	label := u.Label
	if label == "" {
		label = u.Name
	}
	short := ShortNames[u.Name]

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, FormatData{
			Name:      u.Name,
			Label:     label,
			ShortName: short,
			Time:      u.Time,
			Remaining: remaining,
			Hours:     int(u.Remaining.Hours()),
			Minutes:   int(u.Remaining.Minutes()) % 60,
		})
	}

	switch mode {
	case FormatTimeRemaining:
		return remaining
	case FormatNextPrayerTime:
		return u.Time
	case FormatNameAndRemaining:
		return fmt.Sprintf("%s %s", label, remaining)
	case FormatShortNameAndTime:
		return fmt.Sprintf("%s %s", short, u.Time)
	case FormatShortNameAndRemain:
		return fmt.Sprintf("%s %s", short, remaining)
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", label, u.Time, remaining)
	default:
		return fmt.Sprintf("%s %s", label, u.Time)
	}
}

func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
