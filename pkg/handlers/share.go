// Share link endpoints. A share stores a small metadata record under an
// unguessable ID so anyone with the link can view the item without a
// session.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// AddShare creates a shareable link for a track or album. The request body
// carries kind, item_id, item_name and, for tracks, artist_name. The full
// URL is returned for the front end to copy.
func (app *Application) AddShare(w http.ResponseWriter, r *http.Request) {
	_, ok := app.requireUser(w, r)
	if !ok {
		return
	}
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	var req struct {
		Kind       string `json:"kind"`
		ItemID     string `json:"item_id"`
		ItemName   string `json:"item_name"`
		ArtistName string `json:"artist_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Kind != "track" && req.Kind != "album" {
		respondJSONError(w, http.StatusBadRequest, "kind must be track or album")
		return
	}
	if req.ItemID == "" || req.ItemName == "" {
		respondJSONError(w, http.StatusBadRequest, "item_id and item_name are required")
		return
	}
	id, err := app.DB.CreateShare(r.Context(), req.Kind, req.ItemID, req.ItemName, req.ArtistName)
	if err != nil {
		app.logger().WithError(err).Error("store share")
		respondJSONError(w, http.StatusInternalServerError, "failed to store share")
		return
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	respondJSON(w, http.StatusCreated, map[string]string{
		"id":  id,
		"url": fmt.Sprintf("%s://%s/api/shares/%s", scheme, r.Host, id),
	})
}

// ShareJSON returns the metadata behind a share ID. Missing IDs produce a
// 404 to keep links unguessable.
func (app *Application) ShareJSON(w http.ResponseWriter, r *http.Request) {
	if app.DB == nil {
		respondJSONError(w, http.StatusInternalServerError, "db not configured")
		return
	}
	id := mux.Vars(r)["id"]
	share, err := app.DB.GetShare(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondJSONError(w, http.StatusNotFound, "share not found")
			return
		}
		app.logger().WithError(err).Error("load share")
		respondJSONError(w, http.StatusInternalServerError, "failed to load share")
		return
	}
	respondJSON(w, http.StatusOK, share)
}
