// Package catalog issues individual Spotify Web API calls on behalf of the
// discovery layer. Every operation translates one typed request into exactly
// one remote call and returns the item collection in the API's own order.
// Errors are never swallowed here; they are wrapped with the operation name
// and propagated for the discovery layer to convert into bundle errors.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Spotify Web API root.
const DefaultBaseURL = "https://api.spotify.com/v1"

// requestTimeout bounds each remote call so a stalled upstream cannot hold a
// bundle open indefinitely.
const requestTimeout = 10 * time.Second

// TokenSource supplies a valid bearer token for outbound calls. It is
// satisfied by *auth.Store; the store refreshes single-flight, so a parallel
// fan-out over an expired token costs one exchange, not one per call.
type TokenSource interface {
	Bearer(ctx context.Context) (string, error)
}

// OpError wraps a failure with the catalog operation that produced it.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return e.Op + ": " + e.Err.Error() }

// Unwrap exposes the underlying cause so errors.As can still reach typed
// auth or transport errors.
func (e *OpError) Unwrap() error { return e.Err }

// Client provides access to the catalog endpoints. Construct with New; the
// zero value has no transport or token source.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
}

// Option customises a Client at construction time.
type Option func(*Client)

// WithBaseURL points the client at an alternate API root, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient substitutes the transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLimiter replaces the outbound rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// New returns a Client authenticated through ts. The default transport uses a
// 10 second timeout and outbound calls are paced at 10 requests per second
// with a small burst to keep fan-outs under the remote API's rate limits.
func New(ts TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
		tokens:  ts,
		limiter: rate.NewLimiter(rate.Limit(10), 10),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SearchOptions narrow a search request. Zero values are omitted from the
// query string so the remote defaults apply.
type SearchOptions struct {
	Market string
	Limit  int
}

func (o SearchOptions) apply(q url.Values) {
	if o.Market != "" {
		q.Set("market", o.Market)
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
}

// get performs one authenticated GET against the API and decodes the body
// into dst. All failures are returned as *OpError named after op.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &OpError{Op: op, Err: err}
	}
	bearer, err := c.tokens.Bearer(ctx)
	if err != nil {
		observe(op, outcomeAuthError)
		return &OpError{Op: op, Err: err}
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &OpError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		observe(op, outcomeTransportError)
		return &OpError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observe(op, outcomeAPIError)
		return &OpError{Op: op, Err: apiError(resp)}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		observe(op, outcomeDecodeError)
		return &OpError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	observe(op, outcomeOK)
	return nil
}

// apiError extracts the remote error message where the API provided one.
func apiError(resp *http.Response) error {
	var body struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Message != "" {
		return fmt.Errorf("api error: %s (status %d)", body.Error.Message, resp.StatusCode)
	}
	return fmt.Errorf("api error: status %d", resp.StatusCode)
}

// SearchArtists returns artists matching the query in the API's own ranking.
func (c *Client) SearchArtists(ctx context.Context, query string, opts SearchOptions) ([]Artist, error) {
	q := url.Values{"q": {query}, "type": {"artist"}}
	opts.apply(q)
	var body struct {
		Artists artistPage `json:"artists"`
	}
	if err := c.get(ctx, "search artists", "/search", q, &body); err != nil {
		return nil, err
	}
	return body.Artists.Items, nil
}

// SearchTracks returns tracks matching the query.
func (c *Client) SearchTracks(ctx context.Context, query string, opts SearchOptions) ([]Track, error) {
	q := url.Values{"q": {query}, "type": {"track"}}
	opts.apply(q)
	var body struct {
		Tracks trackPage `json:"tracks"`
	}
	if err := c.get(ctx, "search tracks", "/search", q, &body); err != nil {
		return nil, err
	}
	return body.Tracks.Items, nil
}

// SearchAlbums returns albums matching the query.
func (c *Client) SearchAlbums(ctx context.Context, query string, opts SearchOptions) ([]Album, error) {
	q := url.Values{"q": {query}, "type": {"album"}}
	opts.apply(q)
	var body struct {
		Albums albumPage `json:"albums"`
	}
	if err := c.get(ctx, "search albums", "/search", q, &body); err != nil {
		return nil, err
	}
	return body.Albums.Items, nil
}

// SearchPlaylists returns playlists matching the query. Entries can be
// sparsely populated; the discovery layer filters unusable ones.
func (c *Client) SearchPlaylists(ctx context.Context, query string, opts SearchOptions) ([]Playlist, error) {
	q := url.Values{"q": {query}, "type": {"playlist"}}
	opts.apply(q)
	var body struct {
		Playlists playlistPage `json:"playlists"`
	}
	if err := c.get(ctx, "search playlists", "/search", q, &body); err != nil {
		return nil, err
	}
	return body.Playlists.Items, nil
}

// GetArtist looks up a single artist by ID. Invalid IDs surface as the remote
// API's not-found error.
func (c *Client) GetArtist(ctx context.Context, id string) (Artist, error) {
	var a Artist
	if err := c.get(ctx, "get artist", "/artists/"+url.PathEscape(id), nil, &a); err != nil {
		return Artist{}, err
	}
	return a, nil
}

// GetArtists looks up several artists in one call, preserving input order.
func (c *Client) GetArtists(ctx context.Context, ids []string) ([]Artist, error) {
	q := url.Values{"ids": {strings.Join(ids, ",")}}
	var body struct {
		Artists []Artist `json:"artists"`
	}
	if err := c.get(ctx, "get artists", "/artists", q, &body); err != nil {
		return nil, err
	}
	return body.Artists, nil
}

// GetArtistTopTracks returns the artist's top tracks for the given market.
// The market parameter is required by the remote endpoint.
func (c *Client) GetArtistTopTracks(ctx context.Context, id, market string) ([]Track, error) {
	q := url.Values{"market": {market}}
	var body struct {
		Tracks []Track `json:"tracks"`
	}
	if err := c.get(ctx, "get artist top tracks", "/artists/"+url.PathEscape(id)+"/top-tracks", q, &body); err != nil {
		return nil, err
	}
	return body.Tracks, nil
}

// GetArtistAlbums returns the artist's albums.
func (c *Client) GetArtistAlbums(ctx context.Context, id string) ([]Album, error) {
	var body albumPage
	if err := c.get(ctx, "get artist albums", "/artists/"+url.PathEscape(id)+"/albums", nil, &body); err != nil {
		return nil, err
	}
	return body.Items, nil
}

// GetAlbum looks up a full album including its track listing.
func (c *Client) GetAlbum(ctx context.Context, id string) (Album, error) {
	var a Album
	if err := c.get(ctx, "get album", "/albums/"+url.PathEscape(id), nil, &a); err != nil {
		return Album{}, err
	}
	return a, nil
}

// GetCategories returns browse categories for the given country.
func (c *Client) GetCategories(ctx context.Context, country string, limit int) ([]Category, error) {
	q := url.Values{}
	if country != "" {
		q.Set("country", country)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var body struct {
		Categories categoryPage `json:"categories"`
	}
	if err := c.get(ctx, "get categories", "/browse/categories", q, &body); err != nil {
		return nil, err
	}
	return body.Categories.Items, nil
}

// GetNewReleases returns recently released albums for the given country.
func (c *Client) GetNewReleases(ctx context.Context, country string, limit int) ([]Album, error) {
	q := url.Values{}
	if country != "" {
		q.Set("country", country)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var body struct {
		Albums albumPage `json:"albums"`
	}
	if err := c.get(ctx, "get new releases", "/browse/new-releases", q, &body); err != nil {
		return nil, err
	}
	return body.Albums.Items, nil
}
