package core

import "testing"

func TestColorANSI(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorDefault, ""},
		{ColorRed, "1"},
		{ColorBrightCyan, "14"},
		{ColorOrange, "208"},
		{ColorGray, "245"},
		{Color(200), ""},
	}

	for _, tt := range tests {
		if got := tt.c.ANSI(); got != tt.want {
			t.Errorf("Color(%d).ANSI() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestColorsCoversPalette(t *testing.T) {
	all := Colors()
	if len(all) != int(ColorGray)+1 {
		t.Fatalf("Colors() has %d entries, want %d", len(all), int(ColorGray)+1)
	}
	for i, c := range all {
		if c != Color(i) {
			t.Errorf("Colors()[%d] = %d", i, c)
		}
		if c != ColorDefault && c.ANSI() == "" {
			t.Errorf("color %d has no ANSI code", c)
		}
	}
}
