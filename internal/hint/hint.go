// Package hint scores a guess against a solution letter by letter.
package hint

import "strings"

// Hint is the per-letter verdict for a guess.
type Hint int

const (
	Correct Hint = iota
	Misplaced
	Incorrect
)

// String returns the CSS class used to render the hint.
func (h Hint) String() string {
	switch h {
	case Correct:
		return "correct"
	case Misplaced:
		return "misplaced"
	default:
		return "incorrect"
	}
}

// Glyph returns the emoji square used in share text.
func (h Hint) Glyph() string {
	switch h {
	case Correct:
		return "🟩"
	case Misplaced:
		return "🟧"
	default:
		return "⬛"
	}
}

// Rank orders hints by how much they reveal; higher is stronger.
func (h Hint) Rank() int {
	switch h {
	case Correct:
		return 3
	case Misplaced:
		return 2
	case Incorrect:
		return 1
	default:
		return 0
	}
}

// Compute zips guess and solution positionally, case-insensitively, and
// returns one hint per position of the shorter of the two.
//
// A letter that is not in place is Misplaced whenever the solution contains
// it anywhere. Letter counts are not deducted, so a repeated guess letter can
// score Misplaced more than once against a single occurrence.
func Compute(guess, solution string) []Hint {
	g := []rune(strings.ToUpper(guess))
	s := []rune(strings.ToUpper(solution))
	upper := string(s)

	n := min(len(g), len(s))
	hints := make([]Hint, n)
	for i := range n {
		switch {
		case g[i] == s[i]:
			hints[i] = Correct
		case strings.ContainsRune(upper, g[i]):
			hints[i] = Misplaced
		default:
			hints[i] = Incorrect
		}
	}
	return hints
}
