// Package db provides the persistence layer for user state: favorite tracks,
// shareable links and recent search queries. It wraps a SQLite database whose
// schema is created on open. Catalog data is never persisted here; every row
// belongs to a user action, not to the remote catalog.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a sql.DB connection and exposes helper methods for the
// application's persistence layer.
type DB struct {
	*sql.DB
}

// New opens the SQLite database located at path, creating the file and the
// schema when they do not exist. Callers open a single DB instance and reuse
// it for all operations.
func New(path string) (*DB, error) {
	d, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS favorites (id INTEGER PRIMARY KEY AUTOINCREMENT, user_id TEXT, track_id TEXT, track_name TEXT, artist_name TEXT)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_fav_user_track ON favorites(user_id, track_id)`,
		`CREATE TABLE IF NOT EXISTS shares (id TEXT PRIMARY KEY, kind TEXT, item_id TEXT, item_name TEXT, artist_name TEXT)`,
		`CREATE TABLE IF NOT EXISTS search_history (id INTEGER PRIMARY KEY AUTOINCREMENT, query TEXT, searched_at TIMESTAMP)`,
	}
	for _, s := range stmts {
		if _, err := d.Exec(s); err != nil {
			d.Close()
			return nil, fmt.Errorf("init db: %w", err)
		}
	}
	return &DB{d}, nil
}

// Favorite represents a track saved by a user.
type Favorite struct {
	TrackID    string `json:"track_id"`
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
}

// AddFavorite saves a track to the user's favorites. Duplicate entries for
// the same user and track are ignored so favorites remain unique.
func (db *DB) AddFavorite(ctx context.Context, userID, trackID, trackName, artistName string) error {
	_, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO favorites(user_id, track_id, track_name, artist_name) VALUES(?, ?, ?, ?)`, userID, trackID, trackName, artistName)
	return err
}

// DeleteFavorite removes a track from the user's favorites. sql.ErrNoRows is
// returned when the favorite does not exist so handlers can respond with 404.
func (db *DB) DeleteFavorite(ctx context.Context, userID, trackID string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id=? AND track_id=?`, userID, trackID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListFavorites returns the user's favorites, most recently saved first.
func (db *DB) ListFavorites(ctx context.Context, userID string) ([]Favorite, error) {
	rows, err := db.QueryContext(ctx, `SELECT track_id, track_name, artist_name FROM favorites WHERE user_id=? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs []Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.TrackID, &f.TrackName, &f.ArtistName); err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	return fs, rows.Err()
}

// Share holds the metadata behind a shareable link. Kind is "track" or
// "album"; ArtistName may be empty for album shares.
type Share struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	ItemID     string `json:"item_id"`
	ItemName   string `json:"item_name"`
	ArtistName string `json:"artist_name,omitempty"`
}

// CreateShare stores the item metadata under a fresh unguessable ID and
// returns the ID for link construction.
func (db *DB) CreateShare(ctx context.Context, kind, itemID, itemName, artistName string) (string, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx, `INSERT INTO shares(id, kind, item_id, item_name, artist_name) VALUES(?,?,?,?,?)`, id, kind, itemID, itemName, artistName)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetShare looks up the item referenced by a share ID. sql.ErrNoRows is
// returned when the ID does not exist.
func (db *DB) GetShare(ctx context.Context, id string) (Share, error) {
	var s Share
	err := db.QueryRowContext(ctx, `SELECT id, kind, item_id, item_name, artist_name FROM shares WHERE id=?`, id).Scan(&s.ID, &s.Kind, &s.ItemID, &s.ItemName, &s.ArtistName)
	if err != nil {
		return Share{}, err
	}
	return s, nil
}

// AddSearch records a search query for the trending-queries rollup.
func (db *DB) AddSearch(ctx context.Context, query string, at time.Time) error {
	_, err := db.ExecContext(ctx, `INSERT INTO search_history(query, searched_at) VALUES(?, ?)`, query, at)
	return err
}

// QueryCount represents how often a query was searched.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// TopSearchesSince returns the most frequent queries since the given time,
// limited to n entries.
func (db *DB) TopSearchesSince(ctx context.Context, since time.Time, n int) ([]QueryCount, error) {
	rows, err := db.QueryContext(ctx, `SELECT query, COUNT(*) c FROM search_history WHERE searched_at>=? GROUP BY query ORDER BY c DESC LIMIT ?`, since, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []QueryCount
	for rows.Next() {
		var qc QueryCount
		if err := rows.Scan(&qc.Query, &qc.Count); err != nil {
			return nil, err
		}
		res = append(res, qc)
	}
	return res, rows.Err()
}
