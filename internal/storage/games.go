package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"nerdle/internal/game"
	"nerdle/internal/logging"
)

// Games persists game records under "game:<id>" keys of a Storage.
type Games struct {
	store Storage
}

func NewGames(store Storage) *Games {
	return &Games{store: store}
}

// Save overwrites the record for g. Unbound games are skipped.
func (r *Games) Save(ctx context.Context, g game.Game) error {
	if !g.Persistable() {
		return nil
	}
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %d: %w", g.ID, err)
	}
	if err := r.store.Set(ctx, g.Key(), data); err != nil {
		return fmt.Errorf("save game %d: %w", g.ID, err)
	}
	return nil
}

// Load returns the stored game for id, or ErrNotFound.
func (r *Games) Load(ctx context.Context, id uint32) (game.Game, error) {
	return r.loadKey(ctx, game.KeyFor(id))
}

func (r *Games) loadKey(ctx context.Context, key string) (game.Game, error) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		return game.Game{}, err
	}
	var g game.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return game.Game{}, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, key, err)
	}
	return g, nil
}

// ListKeys returns all stored keys starting with prefix.
func (r *Games) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	return r.store.Keys(ctx, prefix)
}

// LoadAll returns every stored game ordered by id. Records that cannot be
// decoded are logged and skipped.
func (r *Games) LoadAll(ctx context.Context) ([]game.Game, error) {
	keys, err := r.ListKeys(ctx, game.KeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	games := make([]game.Game, 0, len(keys))
	for _, key := range keys {
		g, err := r.loadKey(ctx, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logging.WarnCtx(ctx, "Skipping corrupt game record %s: %v", key, err)
			continue
		}
		games = append(games, g)
	}
	sort.SliceStable(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

// Restore returns the stored record for candidate's id when one exists, in
// place of candidate. Otherwise candidate is returned unchanged.
func (r *Games) Restore(ctx context.Context, candidate game.Game) (game.Game, error) {
	if !candidate.Persistable() {
		return candidate, nil
	}
	stored, err := r.Load(ctx, candidate.ID)
	if errors.Is(err, ErrNotFound) {
		return candidate, nil
	}
	if err != nil {
		return candidate, err
	}
	if stored.Solution != candidate.Solution {
		logging.WarnCtx(ctx, "Restored game %d has a different solution than the puzzle source", candidate.ID)
	}
	return stored, nil
}

// Commit recomputes g's state and saves it.
func (r *Games) Commit(ctx context.Context, g game.Game) (game.Game, error) {
	next := g.Update()
	if err := r.Save(ctx, next); err != nil {
		return next, err
	}
	return next, nil
}
