// Package capture extracts Coverflex bearer tokens from artifacts the user
// can export from their browser session. The platform never hands out a
// token through any API, so it has to be scavenged from the web app's own
// client storage or its own traffic.
package capture

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// StorageKey is the localStorage key the Coverflex web app keeps its session
// token under.
const StorageKey = "cvrflx_flightdeck_token"

const bearerPrefix = "Bearer "

// ErrNotFound is returned when an artifact contains no usable token.
var ErrNotFound = errors.New("no token found")

// FromStorageExport reads a JSON object exported from the host page's
// localStorage (devtools "copy object" produces one) and returns the value
// under StorageKey. Values that were stored JSON-quoted are unquoted.
func FromStorageExport(r io.Reader) (string, error) {
	var entries map[string]string
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return "", fmt.Errorf("parsing storage export: %w", err)
	}

	raw, ok := entries[StorageKey]
	if !ok {
		return "", fmt.Errorf("%w: key %q absent from export", ErrNotFound, StorageKey)
	}

	// Some storage inspectors re-encode string values as JSON.
	if strings.HasPrefix(raw, `"`) {
		var unquoted string
		if err := json.Unmarshal([]byte(raw), &unquoted); err == nil {
			raw = unquoted
		}
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: key %q is empty", ErrNotFound, StorageKey)
	}
	return raw, nil
}

// harFile is the subset of the HAR 1.2 format we care about.
type harFile struct {
	Log struct {
		Entries []struct {
			Request struct {
				URL     string `json:"url"`
				Headers []struct {
					Name  string `json:"name"`
					Value string `json:"value"`
				} `json:"headers"`
			} `json:"request"`
		} `json:"entries"`
	} `json:"log"`
}

// FromHAR scans a browser HAR capture for requests sent to apiHost and
// returns the bearer token of the last matching Authorization header. The
// last one wins because the newest token in a capture supersedes any the
// session rotated away from.
func FromHAR(r io.Reader, apiHost string) (string, error) {
	var har harFile
	if err := json.NewDecoder(r).Decode(&har); err != nil {
		return "", fmt.Errorf("parsing HAR: %w", err)
	}

	var found string
	for _, entry := range har.Log.Entries {
		u, err := url.Parse(entry.Request.URL)
		if err != nil || !strings.EqualFold(u.Host, apiHost) {
			continue
		}
		for _, h := range entry.Request.Headers {
			if !strings.EqualFold(h.Name, "authorization") {
				continue
			}
			if strings.HasPrefix(h.Value, bearerPrefix) {
				if tok := strings.TrimSpace(h.Value[len(bearerPrefix):]); tok != "" {
					found = tok
				}
			}
		}
	}

	if found == "" {
		return "", fmt.Errorf("%w: no bearer request to %s in capture", ErrNotFound, apiHost)
	}
	return found, nil
}
