package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"app-inventory/core/utils"
	"app-inventory/feature/inventory/models"

	"github.com/tidwall/gjson"
)

// ErrNotFound is returned when a store has no listing for the identifier.
var ErrNotFound = errors.New("app not found in store")

// maxPageSize caps how much of a store response is read.
const maxPageSize = 10 * 1024 * 1024

// Provider looks up the public store listing of one application.
type Provider interface {
	// Name identifies the store in logs.
	Name() string
	// Lookup returns the listing's metadata for a store identifier.
	Lookup(ctx context.Context, appID string) (*models.Metadata, error)
}

// StatusError is a non-success response from a store.
type StatusError struct {
	Store      string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with HTTP %d", e.Store, e.StatusCode)
}

// get performs a GET and returns the body of a 2xx response.
func get(ctx context.Context, client *http.Client, store, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", store, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Store: store, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", store, err)
	}
	return body, nil
}

// stringField returns the first non-empty string among paths.
func stringField(doc gjson.Result, paths ...string) *string {
	for _, p := range paths {
		if v := strings.TrimSpace(doc.Get(p).String()); v != "" {
			return &v
		}
	}
	return nil
}

func intField(doc gjson.Result, path string) *int64 {
	v := doc.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	n := utils.ToInt64(v.Value())
	return &n
}

func floatField(doc gjson.Result, path string) *float64 {
	v := doc.Get(path)
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	f := v.Float()
	return &f
}

// timestampField normalizes an ISO string or epoch-millis number to epoch seconds.
func timestampField(doc gjson.Result, path string) *int64 {
	v := doc.Get(path)
	if !v.Exists() {
		return nil
	}
	if secs, ok := utils.ToEpochSeconds(v.Value()); ok {
		return &secs
	}
	return nil
}
