// Package history derives play statistics from the stored games.
package history

import (
	"github.com/samber/lo"

	"nerdle/internal/game"
)

// History is an id-ordered view over every stored game. It is rebuilt from
// the store each time statistics are needed.
type History struct {
	games []game.Game
}

// New wraps games, which must already be sorted by id.
func New(games []game.Game) History {
	return History{games: games}
}

// Games returns the underlying games.
func (h History) Games() []game.Game {
	return h.games
}

// Played counts games with at least one guess.
func (h History) Played() int {
	return lo.CountBy(h.games, func(g game.Game) bool { return g.Tries() > 0 })
}

// Won counts games in the Win state.
func (h History) Won() int {
	return lo.CountBy(h.games, isWin)
}

// WinPercentage is Won over Played, rounded down, or 0 before any play.
func (h History) WinPercentage() int {
	played := h.Played()
	if played == 0 {
		return 0
	}
	return h.Won() * 100 / played
}

// Histogram has MaxTries+1 buckets; bucket n counts wins in exactly n tries.
// Bucket 0 is always zero.
func (h History) Histogram() []int {
	histogram := make([]int, game.MaxTries+1)
	for _, g := range lo.Filter(h.games, func(g game.Game, _ int) bool { return isWin(g) }) {
		if tries := g.Tries(); tries > 0 && tries <= game.MaxTries {
			histogram[tries]++
		}
	}
	return histogram
}

// Streak counts consecutive wins ending at the most recent game.
func (h History) Streak() int {
	streak := 0
	for i := len(h.games) - 1; i >= 0 && isWin(h.games[i]); i-- {
		streak++
	}
	return streak
}

// MaxStreak is the longest run of consecutive wins.
func (h History) MaxStreak() int {
	maxStreak, streak := 0, 0
	for _, g := range h.games {
		if !isWin(g) {
			streak = 0
			continue
		}
		streak++
		maxStreak = max(maxStreak, streak)
	}
	return maxStreak
}

func isWin(g game.Game) bool {
	return g.State == game.Win
}

// Stats is a serialisable snapshot of a History.
type Stats struct {
	Played        int   `json:"played"`
	Won           int   `json:"won"`
	WinPercentage int   `json:"winPercentage"`
	Streak        int   `json:"currentStreak"`
	MaxStreak     int   `json:"maxStreak"`
	Histogram     []int `json:"histogram"`
}

// Compute builds the statistics for games.
func Compute(games []game.Game) Stats {
	h := New(games)
	return Stats{
		Played:        h.Played(),
		Won:           h.Won(),
		WinPercentage: h.WinPercentage(),
		Streak:        h.Streak(),
		MaxStreak:     h.MaxStreak(),
		Histogram:     h.Histogram(),
	}
}

// Bar is one histogram bucket prepared for rendering.
type Bar struct {
	Tries   int
	Count   int
	Percent int
}

// Bars returns buckets 1..MaxTries with their share of played games.
func (s Stats) Bars() []Bar {
	bars := make([]Bar, 0, game.MaxTries)
	for tries := 1; tries < len(s.Histogram); tries++ {
		bar := Bar{Tries: tries, Count: s.Histogram[tries]}
		if s.Played > 0 {
			bar.Percent = bar.Count * 100 / s.Played
		}
		bars = append(bars, bar)
	}
	return bars
}
