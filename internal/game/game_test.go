package game

import (
	"encoding/json"
	"strings"
	"testing"

	"nerdle/internal/hint"
)

func playGuesses(g Game, words ...string) Game {
	for _, w := range words {
		g = Reduce(g, SetCurrent{Text: w})
		g = Reduce(g, AddGuess{})
	}
	return g
}

func TestNewGameIsRunningAndUnbound(t *testing.T) {
	g := New("CRANE")
	if g.State != Running {
		t.Errorf("State = %v, want Running", g.State)
	}
	if g.Persistable() {
		t.Error("fresh game should not be persistable")
	}
	if g.Tries() != 0 || g.Current != "" {
		t.Errorf("fresh game should be empty, got tries=%d current=%q", g.Tries(), g.Current)
	}
}

func TestUpdateStateInvariants(t *testing.T) {
	tests := []struct {
		name    string
		guesses []Guess
		want    State
	}{
		{"no guesses", nil, Running},
		{"one miss", []Guess{"CRATE"}, Running},
		{"win first try", []Guess{"crane"}, Win},
		{"win last try", []Guess{"A", "B", "C", "D", "E", "CRANE"}, Win},
		{"six misses", []Guess{"A", "B", "C", "D", "E", "F"}, Loss},
		{"five misses", []Guess{"A", "B", "C", "D", "E"}, Running},
		{"earlier match does not count", []Guess{"CRANE", "CRATE"}, Running},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Game{ID: 1, Solution: "CRANE", Guesses: tt.guesses}.Update()
			if g.State != tt.want {
				t.Errorf("State = %v, want %v", g.State, tt.want)
			}
		})
	}
}

func TestUpdateIsIdempotent(t *testing.T) {
	g := playGuesses(Game{ID: 7, Solution: "CRANE"}, "CRATE", "CRANE")
	again := g.Update()
	if !again.Equal(g) {
		t.Errorf("Update changed a consistent game: %+v vs %+v", again, g)
	}
	a, _ := json.Marshal(g)
	b, _ := json.Marshal(again)
	if string(a) != string(b) {
		t.Errorf("serialised records differ:\n%s\n%s", a, b)
	}
}

func TestReduce(t *testing.T) {
	g := New("")
	g = Reduce(g, SetSolution{ID: 42, Solution: "CRANE"})
	if g.ID != 42 || g.Solution != "CRANE" {
		t.Fatalf("SetSolution not applied: %+v", g)
	}

	g = Reduce(g, SetCurrent{Text: "CRA"})
	if g.Current != "CRA" || g.Tries() != 0 {
		t.Errorf("SetCurrent: current=%q tries=%d", g.Current, g.Tries())
	}

	g = Reduce(g, SetCurrent{Text: "CRATE"})
	before := g
	g = Reduce(g, AddGuess{})
	if g.Tries() != 1 || g.Guesses[0] != "CRATE" || g.Current != "" {
		t.Errorf("AddGuess: %+v", g)
	}
	if before.Tries() != 0 {
		t.Error("Reduce mutated its input")
	}

	g = playGuesses(g, "CRANE")
	if g.State != Win {
		t.Errorf("State = %v, want Win", g.State)
	}

	same := Reduce(g, SetSolution{ID: 42, Solution: "crane"})
	if same.Tries() != 2 || same.Solution != "crane" {
		t.Errorf("rebinding the same id should keep guesses: %+v", same)
	}
	next := Reduce(g, SetSolution{ID: 43, Solution: "SLATE"})
	if next.Tries() != 0 || next.Current != "" || next.State != Running {
		t.Errorf("a new id should start a fresh game: %+v", next)
	}
}

func TestSixIncorrectGuessesLose(t *testing.T) {
	g := playGuesses(Game{ID: 3, Solution: "CRANE"}, "BUMPY", "FIGHT", "SLOTH", "WHISK", "JUMPY", "GIDDY")
	if g.State != Loss {
		t.Errorf("State = %v, want Loss", g.State)
	}
	if g.Tries() != MaxTries {
		t.Errorf("Tries = %d, want %d", g.Tries(), MaxTries)
	}
}

func TestGameJSONRoundTrip(t *testing.T) {
	g := playGuesses(Game{ID: 9, Solution: "CRANE"}, "CRATE")
	g = Reduce(g, SetCurrent{Text: "CR"})
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{`"id":9`, `"solution":"CRANE"`, `"guesses":["CRATE"]`, `"current":"CR"`, `"state":"Running"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("encoded game %s missing %s", data, field)
		}
	}
	var back Game
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(g) {
		t.Errorf("round trip mismatch: %+v vs %+v", back, g)
	}
}

func TestStateUnmarshalRejectsUnknown(t *testing.T) {
	var s State
	if err := json.Unmarshal([]byte(`"Draw"`), &s); err == nil {
		t.Error("expected error for unknown state")
	}
	if err := json.Unmarshal([]byte(`"Loss"`), &s); err != nil || s != Loss {
		t.Errorf("Loss: state=%v err=%v", s, err)
	}
}

func TestKey(t *testing.T) {
	if KeyFor(1234) != "game:1234" {
		t.Errorf("KeyFor = %q", KeyFor(1234))
	}
	if (Game{ID: 5}).Key() != "game:5" {
		t.Errorf("Key = %q", Game{ID: 5}.Key())
	}
}

func TestShareText(t *testing.T) {
	g := playGuesses(Game{ID: 1, Solution: "CRANE"}, "BUMPY", "CRATE", "CRANE")
	want := "Nerdle 3/6\n\n" +
		"⬛⬛⬛⬛⬛\n" +
		"🟩🟩🟩⬛🟩\n" +
		"🟩🟩🟩🟩🟩\n"
	if got := g.ShareText("Nerdle"); got != want {
		t.Errorf("ShareText =\n%s\nwant\n%s", got, want)
	}
	if got := New("CRANE").ShareText("Nerdle"); got != "Nerdle 0/6\n\n" {
		t.Errorf("empty ShareText = %q", got)
	}
}

func TestRows(t *testing.T) {
	g := playGuesses(Game{ID: 1, Solution: "CRANE"}, "CRATE")
	g = Reduce(g, SetCurrent{Text: "CR"})
	rows := g.Rows()
	if len(rows) != MaxTries {
		t.Fatalf("len(rows) = %d, want %d", len(rows), MaxTries)
	}
	if rows[0].Cells[3].Letter != "T" || rows[0].Cells[3].Class != "incorrect" {
		t.Errorf("scored row cell = %+v", rows[0].Cells[3])
	}
	if !rows[1].Current || rows[1].Cells[1].Letter != "R" || rows[1].Cells[2].Class != "pad" {
		t.Errorf("current row = %+v", rows[1])
	}
	if rows[5].Current || rows[5].Cells[0].Class != "pad" {
		t.Errorf("padding row = %+v", rows[5])
	}

	lost := playGuesses(Game{ID: 2, Solution: "CRANE"}, "A", "B", "C", "D", "E", "F")
	for _, r := range lost.Rows() {
		if r.Current {
			t.Error("lost game should have no current row")
		}
	}

	if w := len(New("").Rows()[0].Cells); w != DefaultWidth {
		t.Errorf("unbound board width = %d, want %d", w, DefaultWidth)
	}
}

func TestLetterHintsKeepStrongest(t *testing.T) {
	g := playGuesses(Game{ID: 1, Solution: "CRANE"}, "REACT", "CRATE")
	hints := g.LetterHints()
	cases := map[string]hint.Hint{
		"R": hint.Correct,
		"C": hint.Correct,
		"E": hint.Correct,
		"T": hint.Incorrect,
		"A": hint.Correct,
	}
	for letter, want := range cases {
		if hints[letter] != want {
			t.Errorf("LetterHints[%s] = %v, want %v", letter, hints[letter], want)
		}
	}
	kb := g.Keyboard()
	if kb[0][3].Glyph != "R" || kb[0][3].Class != "correct" {
		t.Errorf("keyboard R = %+v", kb[0][3])
	}
	if kb[1][0].Class != "correct" || kb[2][0].Class != "unused" {
		t.Errorf("keyboard A/ENTER = %+v / %+v", kb[1][0], kb[2][0])
	}
}
