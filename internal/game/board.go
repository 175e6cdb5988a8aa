package game

import (
	"strings"

	"nerdle/internal/hint"
)

// DefaultWidth is used to lay out the board before a puzzle is known.
const DefaultWidth = 5

// Cell is one tile of the board.
type Cell struct {
	Letter string
	Class  string
}

// Row is one line of the board.
type Row struct {
	Cells   []Cell
	Current bool
}

// Rows lays out MaxTries rows: scored guesses, the in-progress guess while
// the game is not lost, then empty padding.
func (g Game) Rows() []Row {
	width := g.Width()
	if width == 0 {
		width = DefaultWidth
	}
	rows := make([]Row, 0, MaxTries)
	for _, guess := range g.Guesses {
		hints := guess.Hints(g.Solution)
		letters := guess.Letters()
		row := Row{Cells: padCells(width)}
		for i := 0; i < len(letters) && i < width; i++ {
			row.Cells[i].Letter = letters[i]
			if i < len(hints) {
				row.Cells[i].Class = hints[i].String()
			}
		}
		rows = append(rows, row)
	}
	if g.State != Loss && len(rows) < MaxTries {
		row := Row{Cells: padCells(width), Current: g.State == Running}
		for i, letter := range g.Current.Letters() {
			if i >= width {
				break
			}
			row.Cells[i] = Cell{Letter: letter, Class: "typed"}
		}
		rows = append(rows, row)
	}
	for len(rows) < MaxTries {
		rows = append(rows, Row{Cells: padCells(width)})
	}
	return rows
}

func padCells(width int) []Cell {
	cells := make([]Cell, width)
	for i := range cells {
		cells[i].Class = "pad"
	}
	return cells
}

// KeyboardLayout is the on-screen keyboard, top row first.
var KeyboardLayout = [][]string{
	{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"},
	{"A", "S", "D", "F", "G", "H", "J", "K", "L"},
	{"ENTER", "Z", "X", "C", "V", "B", "N", "M", "BKSP"},
}

// Key is one keyboard button with its colouring.
type Key struct {
	Glyph string
	Class string
}

// LetterHints returns the strongest hint seen for every guessed letter,
// keyed by upper-case letter.
func (g Game) LetterHints() map[string]hint.Hint {
	seen := make(map[string]hint.Hint)
	for _, guess := range g.Guesses {
		letters := strings.Split(strings.ToUpper(string(guess)), "")
		for i, h := range guess.Hints(g.Solution) {
			if prev, ok := seen[letters[i]]; ok && prev.Rank() >= h.Rank() {
				continue
			}
			seen[letters[i]] = h
		}
	}
	return seen
}

// Keyboard returns KeyboardLayout coloured by LetterHints.
func (g Game) Keyboard() [][]Key {
	hints := g.LetterHints()
	rows := make([][]Key, len(KeyboardLayout))
	for i, layout := range KeyboardLayout {
		rows[i] = make([]Key, len(layout))
		for j, glyph := range layout {
			class := "unused"
			if h, ok := hints[glyph]; ok {
				class = h.String()
			}
			rows[i][j] = Key{Glyph: glyph, Class: class}
		}
	}
	return rows
}
