// Package coverflex talks to the Coverflex employee API and merges its three
// transaction-bearing endpoints into one unified list.
package coverflex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mikeseventeen/coverflex-downloader/internal/httpclient"
	"github.com/mikeseventeen/coverflex-downloader/internal/token"
)

// DefaultBaseURL is the production employee API.
const DefaultBaseURL = "https://menhir-api.coverflex.com/api/employee"

// Client issues authenticated calls against the Coverflex employee API.
// It is stateless apart from reading (and on auth failure, clearing) the
// injected token store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     token.Store
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests and self-hosted
// mirrors.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the client logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a Client reading bearer tokens from tokens.
func New(tokens token.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		tokens:  tokens,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = httpclient.New()
	}
	return c
}

// FetchOperations fetches benefit operations and meal movements for the
// range, tags each record with its source, and returns the merged list
// sorted by execution time descending.
//
// The three calls are strictly sequential: the movements call needs the meal
// pocket id discovered from the pockets call. A meal-side failure degrades
// to benefits-only data; only an empty result combined with a failed primary
// call is reported as an upstream error. Any 401 clears the token store and
// fails the whole fetch.
func (c *Client) FetchOperations(ctx context.Context, r DateRange) ([]Transaction, error) {
	tok, ok := c.tokens.Get()
	if !ok {
		return nil, ErrAuthMissing
	}

	var merged []Transaction

	// 1. Benefit operations, the primary endpoint.
	var opsResp operationsResponse
	opsErr := c.getJSON(ctx, tok, "/operations", url.Values{
		"pagination":             {"no"},
		"usage":                  {"all"},
		"filters[executed_from]": {r.fromISO()},
		"filters[executed_to]":   {r.toISO()},
	}, &opsResp)
	if opsErr != nil {
		if err := c.checkExpired(opsErr); err != nil {
			return nil, err
		}
		c.log.Warn().Err(opsErr).Msg("benefit operations fetch failed")
	} else {
		for _, op := range opsResp.Operations.List {
			merged = append(merged, Transaction{Operation: op, Source: SourceBenefits})
		}
	}

	// 2. Pockets, to discover the meal pocket. 3. Its movements.
	if pocket, err := c.findMealPocket(ctx, tok); err != nil {
		if expErr := c.checkExpired(err); expErr != nil {
			return nil, expErr
		}
		c.log.Warn().Err(err).Msg("pocket listing failed; skipping meal movements")
	} else if pocket != nil {
		var movResp movementsResponse
		err := c.getJSON(ctx, tok, "/movements", url.Values{
			"pocket_id":              {pocket.ID},
			"pagination":             {"no"},
			"filters[movement_from]": {r.fromDay()},
			"filters[movement_to]":   {r.toDay()},
		}, &movResp)
		if err != nil {
			if expErr := c.checkExpired(err); expErr != nil {
				return nil, expErr
			}
			c.log.Warn().Err(err).Str("pocket_id", pocket.ID).Msg("meal movements fetch failed")
		} else {
			for _, op := range movResp.Movements.List {
				merged = append(merged, Transaction{Operation: op, Source: SourceMeals})
			}
		}
	}

	// An empty merge is only a legitimate empty window when the primary
	// call succeeded.
	if len(merged) == 0 && opsErr != nil {
		var se *statusError
		if errors.As(opsErr, &se) {
			return nil, &UpstreamError{StatusCode: se.code}
		}
		return nil, &UpstreamError{Err: opsErr}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ExecutedAt.After(merged[j].ExecutedAt)
	})
	return merged, nil
}

// findMealPocket returns the pocket of type "meals", or nil when the account
// has none.
func (c *Client) findMealPocket(ctx context.Context, tok string) (*Pocket, error) {
	var resp pocketsResponse
	if err := c.getJSON(ctx, tok, "/pockets", nil, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Pockets {
		if resp.Pockets[i].Type == "meals" {
			return &resp.Pockets[i], nil
		}
	}
	return nil, nil
}

// checkExpired converts a 401 into ErrAuthExpired, clearing the token store
// so the next attempt forces recapture instead of retrying a dead token.
// Returns nil for any other error.
func (c *Client) checkExpired(err error) error {
	var se *statusError
	if errors.As(err, &se) && se.code == http.StatusUnauthorized {
		c.tokens.Clear()
		return ErrAuthExpired
	}
	return nil
}

// statusError is a non-2xx response from the API.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// getJSON issues one authenticated GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, tok, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
