// Package puzzle loads the daily puzzle descriptor.
package puzzle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"nerdle/internal/fetch"
)

// DateLayout names puzzle files, one per UTC day.
const DateLayout = "2006-01-02"

// Puzzle describes one daily puzzle.
type Puzzle struct {
	ID              uint32 `json:"id"`
	Solution        string `json:"solution"`
	PrintDate       string `json:"print_date"`
	Editor          string `json:"editor"`
	DaysSinceLaunch int    `json:"days_since_launch"`
}

// Location returns where the puzzle for date lives under base.
func Location(base string, date time.Time) string {
	return fetch.Join(base, date.UTC().Format(DateLayout)+".json")
}

// Parse decodes and validates a puzzle descriptor.
func Parse(data []byte) (Puzzle, error) {
	var p Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return Puzzle{}, fmt.Errorf("decode puzzle: %w", err)
	}
	if p.ID == 0 {
		return Puzzle{}, fmt.Errorf("puzzle has no id")
	}
	p.Solution = strings.TrimSpace(p.Solution)
	if p.Solution == "" {
		return Puzzle{}, fmt.Errorf("puzzle %d has no solution", p.ID)
	}
	return p, nil
}

// Load fetches the puzzle for date from base.
func Load(ctx context.Context, base string, date time.Time) (Puzzle, error) {
	data, err := fetch.Read(ctx, Location(base, date))
	if err != nil {
		return Puzzle{}, err
	}
	return Parse(data)
}
