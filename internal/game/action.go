package game

// Action is a transition request for a game.
type Action interface {
	action()
}

// SetSolution binds the game to a puzzle. A different id starts a fresh game;
// callers restore any stored record for the new id after reducing.
type SetSolution struct {
	ID       uint32
	Solution string
}

// SetCurrent replaces the in-progress guess.
type SetCurrent struct {
	Text string
}

// AddGuess submits the in-progress guess.
type AddGuess struct{}

func (SetSolution) action() {}
func (SetCurrent) action()  {}
func (AddGuess) action()    {}

// Reduce applies action to g and recomputes the state. Gating on state,
// dictionary and length is the caller's job.
func Reduce(g Game, action Action) Game {
	next := g.clone()
	switch a := action.(type) {
	case SetSolution:
		if a.ID != next.ID {
			next = Game{}
		}
		next.ID = a.ID
		next.Solution = a.Solution
	case SetCurrent:
		next.Current = Guess(a.Text)
	case AddGuess:
		next.Guesses = append(next.Guesses, next.Current)
		next.Current = ""
	}
	return next.Update()
}
