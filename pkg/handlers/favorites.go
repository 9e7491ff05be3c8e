// Favorites endpoints. A favorite is user state keyed by the anonymous
// session, storing just enough track metadata to render the list without a
// catalog round trip.

package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"Music-Scout-Go/pkg/db"
)

// AddFavorite saves a track to the session's favorites list.
func (app *Application) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	var req struct {
		TrackID    string `json:"track_id"`
		TrackName  string `json:"track_name"`
		ArtistName string `json:"artist_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TrackID == "" || req.TrackName == "" || req.ArtistName == "" {
		respondJSONError(w, http.StatusBadRequest, "track_id, track_name and artist_name are required")
		return
	}
	if err := app.DB.AddFavorite(r.Context(), userID, req.TrackID, req.TrackName, req.ArtistName); err != nil {
		app.logger().WithError(err).Error("save favorite")
		respondJSONError(w, http.StatusInternalServerError, "failed to save favorite")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// FavoritesJSON returns the session's favorites.
func (app *Application) FavoritesJSON(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	favs, err := app.DB.ListFavorites(r.Context(), userID)
	if err != nil {
		app.logger().WithError(err).Error("load favorites")
		respondJSONError(w, http.StatusInternalServerError, "failed to load favorites")
		return
	}
	if favs == nil {
		favs = []db.Favorite{}
	}
	respondJSON(w, http.StatusOK, favs)
}

// DeleteFavorite removes one track from the session's favorites.
func (app *Application) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := app.requireUser(w, r)
	if !ok {
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	trackID := mux.Vars(r)["trackID"]
	if err := app.DB.DeleteFavorite(r.Context(), userID, trackID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondJSONError(w, http.StatusNotFound, "favorite not found")
			return
		}
		app.logger().WithError(err).Error("delete favorite")
		respondJSONError(w, http.StatusInternalServerError, "failed to delete favorite")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
