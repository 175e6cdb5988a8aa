// Package wordlist holds the dictionary of accepted guesses.
package wordlist

import (
	"bufio"
	"context"
	"strings"

	"github.com/samber/lo"

	"nerdle/internal/fetch"
)

// Wordlist is a set of accepted lower-case words.
type Wordlist struct {
	words map[string]struct{}
}

// New builds a Wordlist from words, normalising case and spacing.
func New(words []string) *Wordlist {
	cleaned := lo.FilterMap(words, func(w string, _ int) (string, bool) {
		w = strings.ToLower(strings.TrimSpace(w))
		return w, w != ""
	})
	return &Wordlist{words: lo.Associate(cleaned, func(w string) (string, struct{}) {
		return w, struct{}{}
	})}
}

// Parse reads one word per line.
func Parse(text string) *Wordlist {
	var words []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	return New(words)
}

// Contains reports whether word is accepted, ignoring case.
func (w *Wordlist) Contains(word string) bool {
	if w == nil {
		return false
	}
	_, ok := w.words[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

// Len returns the number of distinct words.
func (w *Wordlist) Len() int {
	if w == nil {
		return 0
	}
	return len(w.words)
}

// Load fetches and parses the newline-delimited list at location.
func Load(ctx context.Context, location string) (*Wordlist, error) {
	data, err := fetch.Read(ctx, location)
	if err != nil {
		return nil, err
	}
	return Parse(string(data)), nil
}
