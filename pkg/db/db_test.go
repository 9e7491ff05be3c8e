package db

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

// TestAddAndListFavorites verifies that favorites round-trip and duplicates
// are ignored.
func TestAddAndListFavorites(t *testing.T) {
	d, err := New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	ctx := context.Background()
	if err := d.AddFavorite(ctx, "u", "1", "Song", "Artist"); err != nil {
		t.Fatal(err)
	}
	if err := d.AddFavorite(ctx, "u", "1", "Song", "Artist"); err != nil {
		t.Fatal(err)
	}
	favs, err := d.ListFavorites(ctx, "u")
	if err != nil {
		t.Fatal(err)
	}
	if len(favs) != 1 || favs[0].TrackID != "1" {
		t.Fatalf("unexpected favorites: %+v", favs)
	}
}

// TestDeleteFavorite removes an entry and reports missing ones.
func TestDeleteFavorite(t *testing.T) {
	d, err := New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	ctx := context.Background()
	if err := d.AddFavorite(ctx, "u", "1", "Song", "Artist"); err != nil {
		t.Fatal(err)
	}
	if err := d.DeleteFavorite(ctx, "u", "1"); err != nil {
		t.Fatal(err)
	}
	if err := d.DeleteFavorite(ctx, "u", "1"); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

// TestShares stores and retrieves share metadata under a generated ID.
func TestShares(t *testing.T) {
	d, err := New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	ctx := context.Background()
	id, err := d.CreateShare(ctx, "track", "t1", "Song", "Artist")
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("empty share id")
	}
	s, err := d.GetShare(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if s.Kind != "track" || s.ItemID != "t1" || s.ItemName != "Song" {
		t.Fatalf("unexpected share: %+v", s)
	}
	if _, err := d.GetShare(ctx, "missing"); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

// TestTopSearches aggregates the search history by query.
func TestTopSearches(t *testing.T) {
	d, err := New(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()

	ctx := context.Background()
	now := time.Now()
	for _, q := range []string{"jazz", "jazz", "rock"} {
		if err := d.AddSearch(ctx, q, now); err != nil {
			t.Fatal(err)
		}
	}
	res, err := d.TopSearchesSince(ctx, now.Add(-time.Hour), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 2 || res[0].Query != "jazz" || res[0].Count != 2 {
		t.Fatalf("unexpected rollup: %+v", res)
	}
}
