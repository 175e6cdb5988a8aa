package hint

import (
	"slices"
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		guess    string
		solution string
		want     []Hint
	}{
		{"all correct", "CRANE", "CRANE", []Hint{Correct, Correct, Correct, Correct, Correct}},
		{"one wrong letter", "CRATE", "CRANE", []Hint{Correct, Correct, Correct, Incorrect, Correct}},
		{"shuffled", "REACT", "CRANE", []Hint{Misplaced, Misplaced, Correct, Misplaced, Incorrect}},
		{"nothing shared", "BUMPY", "CRANE", []Hint{Incorrect, Incorrect, Incorrect, Incorrect, Incorrect}},
		{"case insensitive", "crate", "CrAnE", []Hint{Correct, Correct, Correct, Incorrect, Correct}},
		{"repeated letters not deducted", "EERIE", "CRANE", []Hint{Misplaced, Misplaced, Misplaced, Incorrect, Correct}},
		{"short guess", "CR", "CRANE", []Hint{Correct, Correct}},
		{"empty guess", "", "CRANE", []Hint{}},
		{"long guess", "CRANES", "CRANE", []Hint{Correct, Correct, Correct, Correct, Correct}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.guess, tt.solution)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Compute(%q, %q) = %v, want %v", tt.guess, tt.solution, got, tt.want)
			}
		})
	}
}

func TestComputeMatchesPositionalRule(t *testing.T) {
	solution := "PLANT"
	for _, guess := range []string{"PANEL", "TAPAS", "ALPHA", "plant", "LLAMA", "ZZZZZ"} {
		got := Compute(guess, solution)
		g, s := strings.ToUpper(guess), strings.ToUpper(solution)
		for i, h := range got {
			var want Hint
			switch {
			case g[i] == s[i]:
				want = Correct
			case strings.IndexByte(s, g[i]) >= 0:
				want = Misplaced
			default:
				want = Incorrect
			}
			if h != want {
				t.Errorf("Compute(%q, %q)[%d] = %v, want %v", guess, solution, i, h, want)
			}
		}
	}
}

func TestHintRendering(t *testing.T) {
	cases := []struct {
		h     Hint
		class string
		glyph string
	}{
		{Correct, "correct", "🟩"},
		{Misplaced, "misplaced", "🟧"},
		{Incorrect, "incorrect", "⬛"},
	}
	for _, c := range cases {
		if c.h.String() != c.class {
			t.Errorf("%d.String() = %q, want %q", c.h, c.h.String(), c.class)
		}
		if c.h.Glyph() != c.glyph {
			t.Errorf("%d.Glyph() = %q, want %q", c.h, c.h.Glyph(), c.glyph)
		}
	}
	if !(Correct.Rank() > Misplaced.Rank() && Misplaced.Rank() > Incorrect.Rank()) {
		t.Error("hint ranks out of order")
	}
}
