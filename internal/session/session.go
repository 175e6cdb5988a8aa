// Package session owns the live game of one device and gates every player
// action before it reaches the game model and the store.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"nerdle/internal/game"
	"nerdle/internal/history"
	"nerdle/internal/logging"
	"nerdle/internal/puzzle"
	"nerdle/internal/storage"
)

// ErrRejected wraps every reason an action was not accepted. Rejected
// actions leave the game untouched.
var ErrRejected = errors.New("not accepted")

var (
	ErrGameOver        = fmt.Errorf("%w: game is over", ErrRejected)
	ErrNoPuzzle        = fmt.Errorf("%w: puzzle not loaded", ErrRejected)
	ErrGuessTooLong    = fmt.Errorf("%w: guess is too long", ErrRejected)
	ErrIncompleteGuess = fmt.Errorf("%w: not enough letters", ErrRejected)
	ErrNotInWordList   = fmt.Errorf("%w: not in word list", ErrRejected)
	ErrUnknownKey      = fmt.Errorf("%w: unknown key", ErrRejected)
)

// Keys understood by Input besides single letters.
const (
	KeyEnter     = "ENTER"
	KeyBackspace = "BKSP"
)

// Dictionary tells whether a word may be submitted as a guess.
type Dictionary interface {
	Contains(word string) bool
}

// Controller is the state machine for one device's live game. Transitions
// are serialised by an internal lock, persisted synchronously, and visible
// to the next call as soon as Dispatch returns.
type Controller struct {
	mu     sync.Mutex
	games  *storage.Games
	words  Dictionary
	game   game.Game
	synced *puzzle.Puzzle
}

// New returns a controller holding an empty, unbound game.
func New(games *storage.Games, words Dictionary) *Controller {
	return &Controller{
		games: games,
		words: words,
		game:  game.New(""),
	}
}

// Game returns a snapshot of the live game.
func (c *Controller) Game() game.Game {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game
}

// Sync binds the controller to p. SetSolution is dispatched only when p
// differs from the puzzle seen on the previous call.
func (c *Controller) Sync(ctx context.Context, p puzzle.Puzzle) (game.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.synced != nil && c.synced.ID == p.ID && c.synced.Solution == p.Solution {
		return c.game, nil
	}
	next, err := c.dispatch(ctx, game.SetSolution{ID: p.ID, Solution: p.Solution})
	if err != nil {
		return next, err
	}
	c.synced = &p
	return next, nil
}

// Dispatch applies action if it is accepted, then persists the result.
// Rejections wrap ErrRejected; any other error comes from the store.
func (c *Controller) Dispatch(ctx context.Context, action game.Action) (game.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatch(ctx, action)
}

func (c *Controller) dispatch(ctx context.Context, action game.Action) (game.Game, error) {
	if err := c.accept(action); err != nil {
		return c.game, err
	}

	next := game.Reduce(c.game, action)
	if _, ok := action.(game.SetSolution); ok {
		restored, err := c.games.Restore(ctx, next)
		switch {
		case errors.Is(err, storage.ErrCorrupt):
			logging.WarnCtx(ctx, "Could not restore game %d, starting fresh: %v", next.ID, err)
		case err != nil:
			return c.game, fmt.Errorf("restore game %d: %w", next.ID, err)
		default:
			next = restored
		}
	}

	committed, err := c.games.Commit(ctx, next)
	if err != nil {
		return c.game, err
	}
	c.game = committed
	return committed, nil
}

func (c *Controller) accept(action game.Action) error {
	switch a := action.(type) {
	case game.SetSolution:
		return nil
	case game.SetCurrent:
		if err := c.acceptInput(); err != nil {
			return err
		}
		if utf8.RuneCountInString(a.Text) > c.game.Width() {
			return ErrGuessTooLong
		}
		return nil
	case game.AddGuess:
		if err := c.acceptInput(); err != nil {
			return err
		}
		if c.game.Current.Len() < c.game.Width() {
			return ErrIncompleteGuess
		}
		if c.words == nil || !c.words.Contains(string(c.game.Current)) {
			return ErrNotInWordList
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported action %T", ErrRejected, action)
	}
}

func (c *Controller) acceptInput() error {
	if c.game.State.Terminal() {
		return ErrGameOver
	}
	if c.game.Solution == "" {
		return ErrNoPuzzle
	}
	return nil
}

// Input handles one key press: ENTER submits, BKSP deletes the last letter
// and any single letter is appended to the current guess.
func (c *Controller) Input(ctx context.Context, key string) (game.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key = strings.ToUpper(strings.TrimSpace(key))
	switch key {
	case KeyEnter:
		return c.dispatch(ctx, game.AddGuess{})
	case KeyBackspace, "BACKSPACE":
		letters := []rune(string(c.game.Current))
		if len(letters) > 0 {
			letters = letters[:len(letters)-1]
		}
		return c.dispatch(ctx, game.SetCurrent{Text: string(letters)})
	}

	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || size != len(key) || !unicode.IsLetter(r) {
		return c.game, ErrUnknownKey
	}
	return c.dispatch(ctx, game.SetCurrent{Text: string(c.game.Current) + key})
}

// Submit replaces the current guess with word and submits it. When the
// submission is rejected the typed word stays in place for editing.
func (c *Controller) Submit(ctx context.Context, word string) (game.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	word = strings.ToUpper(strings.TrimSpace(word))
	if _, err := c.dispatch(ctx, game.SetCurrent{Text: word}); err != nil {
		return c.game, err
	}
	return c.dispatch(ctx, game.AddGuess{})
}

// History recomputes statistics from every game in the store.
func (c *Controller) History(ctx context.Context) (history.Stats, error) {
	games, err := c.games.LoadAll(ctx)
	if err != nil {
		return history.Stats{}, err
	}
	return history.Compute(games), nil
}
