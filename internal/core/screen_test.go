package core

import (
	"strings"
	"testing"
)

// rows splits a screen dump for line-wise comparison.
func rows(s *Screen) []string {
	return strings.Split(s.String(), "\n")
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	for _, r := range rows(s) {
		if r != "      " {
			t.Errorf("row %q is not blank", r)
		}
	}
}

func TestScreenCellBounds(t *testing.T) {
	s := NewScreen(4, 2)

	tests := []struct {
		name   string
		x, y   int
		inside bool
	}{
		{"origin", 0, 0, true},
		{"last cell", 3, 1, true},
		{"left", -1, 0, false},
		{"right", 4, 0, false},
		{"above", 0, -1, false},
		{"below", 0, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Clear()
			s.SetColored(tt.x, tt.y, '#', ColorRed)
			got := s.GetCell(tt.x, tt.y)
			if tt.inside {
				if got != (Cell{Rune: '#', Color: ColorRed}) {
					t.Errorf("GetCell = %+v", got)
				}
				return
			}
			if got.Rune != ' ' {
				t.Errorf("out-of-bounds GetCell = %q, want blank", got.Rune)
			}
			if strings.ContainsRune(s.String(), '#') {
				t.Error("out-of-bounds write landed in the buffer")
			}
		})
	}
}

func TestScreenText(t *testing.T) {
	tests := []struct {
		name string
		draw func(s *Screen)
		want string // row 0
	}{
		{"plain", func(s *Screen) { s.DrawText(1, 0, "tile") }, " tile   "},
		{"clipped right", func(s *Screen) { s.DrawText(5, 0, "storm") }, "     sto"},
		{"clipped left", func(s *Screen) { s.DrawText(-2, 0, "beam") }, "am      "},
		{"centered", func(s *Screen) { s.DrawTextCentered(0, "HUD") }, "  HUD   "},
		{"multibyte", func(s *Screen) { s.DrawText(0, 0, "◆◇") }, "◆◇      "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(8, 1)
			tt.draw(s)
			if got := s.Row(0); got != tt.want {
				t.Errorf("row = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScreenShapes(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawRect(NewRect(1, 1, 3, 2), '.')
	want := []string{
		"     ",
		" ... ",
		" ... ",
		"     ",
	}
	if got := rows(s); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("DrawRect:\n%s", s.String())
	}

	s.Clear()
	s.DrawBox(NewRect(0, 0, 5, 4))
	want = []string{
		"┌───┐",
		"│   │",
		"│   │",
		"└───┘",
	}
	if got := rows(s); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("DrawBox:\n%s", s.String())
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.DrawText(0, 1, "efgh")

	s.Resize(2, 3)
	want := []string{"ab", "ef", "  "}
	if got := rows(s); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("after shrink = %q, want %q", got, want)
	}

	s.Resize(3, 1)
	if got := s.Row(0); got != "ab " {
		t.Errorf("after grow = %q", got)
	}

	if got := s.Row(7); got != "   " {
		t.Errorf("Row out of range = %q", got)
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawTextColored(0, 0, "ok", ColorGreen)
	s.Set(2, 0, 'x')

	if c := s.GetCell(1, 0); c.Color != ColorGreen {
		t.Errorf("colored text cell = %+v", c)
	}
	if c := s.GetCell(2, 0); c.Color != ColorDefault {
		t.Errorf("Set should use the default color, got %v", c.Color)
	}
	if got := s.String(); got != "okx   " {
		t.Errorf("String drops colors: got %q", got)
	}

	s.Clear()
	if c := s.GetCell(0, 0); c != (Cell{Rune: ' '}) {
		t.Errorf("Clear left %+v", c)
	}
}
