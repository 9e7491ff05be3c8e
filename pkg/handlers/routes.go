// Route registration. Kept next to the handlers so tests can mount the full
// router with in-memory dependencies.

package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the application router with all endpoints, instrumentation
// and security headers attached.
func (app *Application) Routes() http.Handler {
	log := app.logger()
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/home", Instrument(log, "home", app.HomeJSON)).Methods(http.MethodGet)
	api.HandleFunc("/artists/{id}", Instrument(log, "artist", app.ArtistJSON)).Methods(http.MethodGet)
	api.HandleFunc("/albums/{id}", Instrument(log, "album", app.AlbumJSON)).Methods(http.MethodGet)
	api.HandleFunc("/search", Instrument(log, "search", app.SearchJSON)).Methods(http.MethodGet)
	api.HandleFunc("/search/filtered", Instrument(log, "search_filtered", app.FilteredSearchJSON)).Methods(http.MethodGet)
	api.HandleFunc("/searches/trending", Instrument(log, "trending_searches", app.TrendingSearchesJSON)).Methods(http.MethodGet)
	api.HandleFunc("/spotify/token", Instrument(log, "token", app.TokenJSON)).Methods(http.MethodGet)

	api.HandleFunc("/session", Instrument(log, "session", app.StartSession)).Methods(http.MethodPost)
	api.HandleFunc("/favorites", Instrument(log, "favorites_list", app.FavoritesJSON)).Methods(http.MethodGet)
	api.HandleFunc("/favorites", Instrument(log, "favorites_add", app.AddFavorite)).Methods(http.MethodPost)
	api.HandleFunc("/favorites/{trackID}", Instrument(log, "favorites_delete", app.DeleteFavorite)).Methods(http.MethodDelete)
	api.HandleFunc("/shares", Instrument(log, "share_add", app.AddShare)).Methods(http.MethodPost)
	api.HandleFunc("/shares/{id}", Instrument(log, "share_get", app.ShareJSON)).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return SecurityHeaders(r)
}
