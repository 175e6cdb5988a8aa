// Package fetch reads a resource from a local path or an http(s) URL.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// MaxBodySize caps how much of a remote response is read. Larger bodies are
// an error.
var MaxBodySize = 8 << 20

// Client is used for remote locations. Tests may replace it.
var Client = &http.Client{}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Read returns the content at location.
func Read(ctx context.Context, location string) ([]byte, error) {
	if !IsRemote(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", location, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", location, err)
	}
	resp, err := Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", location, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, int64(MaxBodySize)+1))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", location, err)
	}
	if len(data) > MaxBodySize {
		return nil, fmt.Errorf("fetch %s: body exceeds %d bytes", location, MaxBodySize)
	}
	return data, nil
}

// Join appends name to a directory path or URL base.
func Join(base, name string) string {
	if base == "" {
		return name
	}
	return strings.TrimRight(base, "/") + "/" + name
}
