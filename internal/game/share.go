package game

import (
	"fmt"
	"strings"
)

// ShareText renders the spoiler-free summary copied to the clipboard.
func (g Game) ShareText(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d/%d\n\n", name, g.Tries(), MaxTries)
	for _, guess := range g.Guesses {
		for _, h := range guess.Hints(g.Solution) {
			b.WriteString(h.Glyph())
		}
		b.WriteString("\n")
	}
	return b.String()
}
