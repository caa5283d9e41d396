package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newTestOutput(t *testing.T) (*Output, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.Flags().Bool("json", false, "")
	cmd.SetOut(buf)
	return NewOutput(cmd), buf
}

func TestOutputJSONMode(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.Flags().Bool("json", true, "")
	if err := cmd.Flags().Set("json", "true"); err != nil {
		t.Fatal(err)
	}
	cmd.SetOut(buf)

	out := NewOutput(cmd)
	if !out.IsJSON() {
		t.Fatal("expected JSON mode")
	}
	if err := out.JSON(map[string]string{"ticker": "TCS.NS"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"ticker": "TCS.NS"`) {
		t.Errorf("output = %q, want indented JSON", buf.String())
	}
}

func TestOutputMessagesWithoutColor(t *testing.T) {
	out, buf := newTestOutput(t)

	out.Success("done %d", 3)
	out.Warning("careful")

	got := buf.String()
	if strings.Contains(got, "\033[") {
		t.Errorf("output = %q, want no ANSI codes off-terminal", got)
	}
	if !strings.Contains(got, "done 3") || !strings.Contains(got, "careful") {
		t.Errorf("output = %q, missing messages", got)
	}
}

func TestSignalFormatting(t *testing.T) {
	out, _ := newTestOutput(t)

	tests := []struct {
		signal string
		want   string
	}{
		{"strong_buy", "STRONG BUY"},
		{"death_cross_sell", "DEATH CROSS SELL"},
		{"hold", "HOLD"},
	}
	for _, tt := range tests {
		if got := out.Signal(tt.signal); got != tt.want {
			t.Errorf("Signal(%q) = %q, want %q", tt.signal, got, tt.want)
		}
	}
}

func TestTableRender(t *testing.T) {
	out, buf := newTestOutput(t)

	table := NewTable(out, "Ticker", "Action")
	table.AddRow("RELIANCE.NS", "Buy")
	table.AddRow("TCS.NS", "Hold")
	table.Render()

	got := buf.String()
	for _, want := range []string{"Ticker", "Action", "RELIANCE.NS", "Buy", "TCS.NS", "Hold"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) < 4 {
		t.Errorf("table output has %d lines, want header, separator and two rows", len(lines))
	}
}

func TestStripANSI(t *testing.T) {
	colored := ColorGreen + "BUY" + ColorReset
	if got := stripANSI(colored); got != "BUY" {
		t.Errorf("stripANSI(%q) = %q, want BUY", colored, got)
	}
	if got := stripANSI("plain"); got != "plain" {
		t.Errorf("stripANSI(plain) = %q", got)
	}
}
