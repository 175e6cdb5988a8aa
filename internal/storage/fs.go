package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"nerdle/internal/logging"
)

const recordExt = ".json"

// FS stores every record as its own file under <dir>/<device>/.
type FS struct {
	dir string
}

func NewFS(dir string) *FS {
	return &FS{dir: dir}
}

func (f *FS) Scope(device string) Storage {
	return &fsScope{dir: filepath.Join(f.dir, safeSegment(device))}
}

func (f *FS) Close() error { return nil }

// safeSegment keeps a device id from escaping the data directory.
func safeSegment(device string) string {
	device = strings.TrimSpace(device)
	switch device {
	case "", ".", "..":
		return "_" + device
	}
	return url.PathEscape(device)
}

type fsScope struct {
	dir string
}

func (s *fsScope) pathFor(key string) string {
	return filepath.Join(s.dir, url.QueryEscape(key)+recordExt)
}

func (s *fsScope) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", key, err)
	}
	return data, nil
}

// Set writes to a temporary file and renames it over the record so a failed
// write never leaves a truncated record behind.
func (s *fsScope) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}
	target := s.pathFor(key)
	tmp := filepath.Join(s.dir, ".tmp-"+uuid.NewString())
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write record %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace record %s: %w", key, err)
	}
	return nil
}

func (s *fsScope) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		key, err := url.QueryUnescape(strings.TrimSuffix(name, recordExt))
		if err != nil {
			logging.Warn("Skipping unreadable record file name %s: %v", name, err)
			continue
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
