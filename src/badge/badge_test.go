package badge

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	svg := New(nil).Generate(Badge{
		Label: "pipeline",
		Value: "succeeded",
		Color: StatusColor("succeeded"),
	})

	for _, want := range []string{"<svg", "pipeline", "succeeded", "#4c1", "</svg>"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q:\n%s", want, svg)
		}
	}
}

func TestGenerateEscapesText(t *testing.T) {
	svg := New(nil).Generate(Badge{Label: "a<b", Value: `x&"y`, Color: "#4c1"})

	if strings.Contains(svg, "a<b") {
		t.Error("label not escaped")
	}
	if !strings.Contains(svg, "a&lt;b") || !strings.Contains(svg, "x&amp;&quot;y") {
		t.Errorf("escaped text missing:\n%s", svg)
	}
}

func TestStatusColor(t *testing.T) {
	cases := map[string]string{
		"succeeded": "#4c1",
		"failed":    "#e05d44",
		"advisory":  "#dfb317",
		"unknown":   "#9f9f9f",
	}
	for status, want := range cases {
		if got := StatusColor(status); got != want {
			t.Errorf("StatusColor(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestWidthGrowsWithText(t *testing.T) {
	e := New(nil)
	short := e.Generate(Badge{Label: "a", Value: "b", Color: "#4c1"})
	long := e.Generate(Badge{Label: "a much longer label", Value: "b", Color: "#4c1"})

	if len(long) <= len(short) {
		t.Error("longer label should produce a wider badge")
	}
}

func TestApproxMetrics(t *testing.T) {
	m := approxMetrics{}
	if m.TextWidth("iii") >= m.TextWidth("WWW") {
		t.Error("narrow glyphs should measure less than wide glyphs")
	}
	if m.FontFamily() == "" {
		t.Error("font family should not be empty")
	}
}
