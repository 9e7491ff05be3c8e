// Package handlers contains the HTTP surface of Music-Scout-Go: the JSON
// endpoints serving discovery bundles to the front end, the token proxy, and
// the favorites/share/session endpoints. Handlers never receive raw upstream
// errors for the composite views; the discovery layer has already converted
// those into bundle error fields, so a bundle endpoint always renders JSON.

package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"Music-Scout-Go/pkg/auth"
	"Music-Scout-Go/pkg/catalog"
	"Music-Scout-Go/pkg/db"
	"Music-Scout-Go/pkg/discovery"
)

// DiscoveryService is the aggregation surface the handlers consume. The
// concrete *discovery.Service satisfies it; tests substitute fakes.
type DiscoveryService interface {
	Home(ctx context.Context) discovery.HomeBundle
	Artist(ctx context.Context, id string) (discovery.ArtistBundle, error)
	Album(ctx context.Context, id string) (catalog.Album, error)
	Search(ctx context.Context, query string) discovery.SearchBundle
	SearchFiltered(ctx context.Context, query string, f discovery.Filters) discovery.FilteredBundle
}

// TokenSource exposes the current application token for the proxy endpoint.
type TokenSource interface {
	Token(ctx context.Context) (auth.Token, error)
}

// Application bundles the dependencies used by the HTTP handlers. All fields
// are injected at startup; there is no global service state.
type Application struct {
	Discovery DiscoveryService
	Tokens    TokenSource
	DB        *db.DB
	SignKey   []byte
	Log       *logrus.Logger
}

// logger returns the injected logger, falling back to the standard one so a
// partially constructed Application in tests still logs somewhere.
func (app *Application) logger() *logrus.Logger {
	if app.Log != nil {
		return app.Log
	}
	return logrus.StandardLogger()
}

// HomeJSON serves the home page bundle. Failures arrive as the bundle's
// error field, so the response is always 200 with the bundle shape.
func (app *Application) HomeJSON(w http.ResponseWriter, r *http.Request) {
	bundle := app.Discovery.Home(r.Context())
	respondJSON(w, http.StatusOK, bundle)
}

// ArtistJSON serves the artist detail bundle. Any upstream failure aborts
// the whole page, so the handler maps errors to a dedicated error response
// rather than a partial bundle.
func (app *Application) ArtistJSON(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	bundle, err := app.Discovery.Artist(r.Context(), id)
	if err != nil {
		respondJSONError(w, http.StatusBadGateway, "failed to fetch artist details")
		return
	}
	respondJSON(w, http.StatusOK, bundle)
}

// AlbumJSON serves a single album lookup.
func (app *Application) AlbumJSON(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	album, err := app.Discovery.Album(r.Context(), id)
	if err != nil {
		respondJSONError(w, http.StatusBadGateway, "failed to fetch album details")
		return
	}
	respondJSON(w, http.StatusOK, album)
}

// SearchJSON serves the combined artist and track search. The query is
// trimmed here; the discovery layer passes it through untouched.
func (app *Application) SearchJSON(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondJSONError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	bundle := app.Discovery.Search(r.Context(), query)
	if app.DB != nil && bundle.Error == "" {
		// Best effort; the rollup is a convenience, not part of the search.
		if err := app.DB.AddSearch(r.Context(), query, time.Now()); err != nil {
			app.logger().WithError(err).Warn("record search query")
		}
	}
	respondJSON(w, http.StatusOK, bundle)
}

// FilteredSearchJSON serves the type-filtered search. types is a comma
// separated subset of artist,track,album; omitting it searches all three.
func (app *Application) FilteredSearchJSON(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		respondJSONError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	f := discovery.Filters{
		Market: r.URL.Query().Get("market"),
		Genre:  r.URL.Query().Get("genre"),
	}
	if raw := r.URL.Query().Get("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			t = strings.TrimSpace(t)
			switch t {
			case "artist", "track", "album":
				f.Types = append(f.Types, t)
			default:
				respondJSONError(w, http.StatusBadRequest, "unknown search type: "+t)
				return
			}
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 50 {
			respondJSONError(w, http.StatusBadRequest, "limit must be between 1 and 50")
			return
		}
		f.Limit = n
	}
	bundle := app.Discovery.SearchFiltered(r.Context(), query, f)
	respondJSON(w, http.StatusOK, bundle)
}

// TrendingSearchesJSON returns the most frequent search queries of the last
// week.
func (app *Application) TrendingSearchesJSON(w http.ResponseWriter, r *http.Request) {
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	since := time.Now().AddDate(0, 0, -7)
	res, err := app.DB.TopSearchesSince(r.Context(), since, 10)
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "failed to load trending searches")
		return
	}
	if res == nil {
		res = []db.QueryCount{}
	}
	respondJSON(w, http.StatusOK, res)
}
