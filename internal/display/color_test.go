package display

import (
	"strings"
	"testing"
)

func withColor(t *testing.T, on bool) {
	t.Helper()
	orig := Enabled()
	SetEnabled(on)
	t.Cleanup(func() { SetEnabled(orig) })
}

func TestStyles_Disabled(t *testing.T) {
	withColor(t, false)

	styles := map[string]func(string) string{
		"Bold":   Bold,
		"Dim":    Dim,
		"Green":  Green,
		"Gold":   Gold,
		"Cyan":   Cyan,
		"Gray":   Gray,
		"Accent": Accent,
	}
	for name, fn := range styles {
		if got := fn("الفجر"); got != "الفجر" {
			t.Errorf("%s(%q) = %q, want plain text", name, "الفجر", got)
		}
	}
}

func TestStyles_Enabled(t *testing.T) {
	withColor(t, true)

	for name, fn := range map[string]func(string) string{"Bold": Bold, "Accent": Accent, "Gold": Gold} {
		got := fn("Asr")
		if !strings.Contains(got, "Asr") {
			t.Errorf("%s lost its text: %q", name, got)
		}
		if !strings.Contains(got, "\x1b[") {
			t.Errorf("%s(%q) = %q, want ANSI styling", name, "Asr", got)
		}
	}
}

func TestEnabled_ReportsState(t *testing.T) {
	withColor(t, true)
	if !Enabled() {
		t.Error("Enabled() = false after SetEnabled(true)")
	}
	SetEnabled(false)
	if Enabled() {
		t.Error("Enabled() = true after SetEnabled(false)")
	}
}
