// Package game holds the puzzle attempt model: guesses, the running/win/loss
// state machine and the views derived from it.
package game

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"nerdle/internal/hint"
)

// MaxTries is the number of guesses a player gets per puzzle.
const MaxTries = 6

// KeyPrefix namespaces game records in a store.
const KeyPrefix = "game:"

// Guess is a word typed by the player. Comparison is case-insensitive.
type Guess string

// Matches reports whether the guess equals solution, ignoring case.
func (g Guess) Matches(solution string) bool {
	return strings.ToUpper(string(g)) == strings.ToUpper(solution)
}

// Hints scores the guess against solution.
func (g Guess) Hints(solution string) []hint.Hint {
	return hint.Compute(string(g), solution)
}

// Len returns the number of letters in the guess.
func (g Guess) Len() int {
	return utf8.RuneCountInString(string(g))
}

// Letters splits the guess into single-letter strings.
func (g Guess) Letters() []string {
	letters := make([]string, 0, len(g))
	for _, r := range string(g) {
		letters = append(letters, string(r))
	}
	return letters
}

func (g Guess) String() string { return string(g) }

// State is the lifecycle position of a game.
type State int

const (
	Running State = iota
	Win
	Loss
)

var stateNames = map[State]string{
	Running: "Running",
	Win:     "Win",
	Loss:    "Loss",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// CSSClass returns the lower-case class used by the board.
func (s State) CSSClass() string {
	return strings.ToLower(s.String())
}

// Terminal reports whether the state accepts no further guesses.
func (s State) Terminal() bool {
	return s == Win || s == Loss
}

func (s State) MarshalJSON() ([]byte, error) {
	name, ok := stateNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown game state %d", int(s))
	}
	return json.Marshal(name)
}

func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for state, n := range stateNames {
		if n == name {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", name)
}

// Game is one attempt at a daily puzzle. An ID of 0 marks a game that has
// not been bound to a puzzle yet; such games are never persisted.
type Game struct {
	ID       uint32  `json:"id"`
	Solution string  `json:"solution"`
	Guesses  []Guess `json:"guesses"`
	Current  Guess   `json:"current"`
	State    State   `json:"state"`
}

// New returns a fresh, unbound game for solution.
func New(solution string) Game {
	return Game{Solution: solution}.Update()
}

// KeyFor returns the store key of the game with the given id.
func KeyFor(id uint32) string {
	return KeyPrefix + strconv.FormatUint(uint64(id), 10)
}

// Key returns the store key of g.
func (g Game) Key() string {
	return KeyFor(g.ID)
}

// Persistable reports whether g is bound to a puzzle.
func (g Game) Persistable() bool {
	return g.ID != 0
}

// Tries returns the number of submitted guesses.
func (g Game) Tries() int {
	return len(g.Guesses)
}

// Width returns the solution length in letters.
func (g Game) Width() int {
	return utf8.RuneCountInString(g.Solution)
}

// LastGuess returns the most recent submitted guess.
func (g Game) LastGuess() (Guess, bool) {
	if len(g.Guesses) == 0 {
		return "", false
	}
	return g.Guesses[len(g.Guesses)-1], true
}

// Update recomputes State from the guesses. It does not touch storage.
func (g Game) Update() Game {
	next := g.clone()
	last, ok := next.LastGuess()
	switch {
	case !ok:
		next.State = Running
	case last.Matches(next.Solution):
		next.State = Win
	case next.Tries() >= MaxTries:
		next.State = Loss
	default:
		next.State = Running
	}
	return next
}

// Equal reports whether g and other hold the same record.
func (g Game) Equal(other Game) bool {
	if g.ID != other.ID || g.Solution != other.Solution || g.Current != other.Current || g.State != other.State {
		return false
	}
	if len(g.Guesses) != len(other.Guesses) {
		return false
	}
	for i := range g.Guesses {
		if g.Guesses[i] != other.Guesses[i] {
			return false
		}
	}
	return true
}

func (g Game) clone() Game {
	out := g
	if g.Guesses != nil {
		out.Guesses = append([]Guess(nil), g.Guesses...)
	}
	return out
}
