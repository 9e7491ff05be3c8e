// Package discovery assembles the composite views the front end renders:
// the home page, artist detail and search result bundles. Each bundle is the
// join of several independent catalog calls issued in parallel. This file
// defines the bundle shapes; a bundle is either fully populated with no
// error, or carries an error string with every collection empty — partial
// success is never presented as full success, so consumers only check the
// top-level error field.

package discovery

import "Music-Scout-Go/pkg/catalog"

// SimplifiedPlaylist is the normalized playlist shape shown on the home
// page. Raw playlist search results are filtered and truncated before being
// mapped into this form.
type SimplifiedPlaylist struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Images      []catalog.Image `json:"images"`
	URI         string          `json:"uri"`
	TrackCount  int             `json:"trackCount"`
}

// HomeBundle aggregates the five home page sections.
type HomeBundle struct {
	FeaturedArtists   []catalog.Artist     `json:"featuredArtists"`
	TrendingTracks    []catalog.Track      `json:"trendingTracks"`
	Categories        []catalog.Category   `json:"categories"`
	FeaturedPlaylists []SimplifiedPlaylist `json:"featuredPlaylists"`
	NewReleases       []catalog.Album      `json:"newReleases"`
	Error             string               `json:"error,omitempty"`
}

// emptyHome returns a bundle with every collection present but empty and the
// error marker set. Slices are non-nil so JSON consumers see [] rather than
// null.
func emptyHome(msg string) HomeBundle {
	return HomeBundle{
		FeaturedArtists:   []catalog.Artist{},
		TrendingTracks:    []catalog.Track{},
		Categories:        []catalog.Category{},
		FeaturedPlaylists: []SimplifiedPlaylist{},
		NewReleases:       []catalog.Album{},
		Error:             msg,
	}
}

// ArtistBundle is the artist detail view: the artist record plus top tracks
// and albums. Unlike the home page this bundle is all-or-nothing; an artist
// page without its artist record is meaningless, so failures propagate as
// errors instead of degrading.
type ArtistBundle struct {
	Artist    catalog.Artist  `json:"artist"`
	TopTracks []catalog.Track `json:"topTracks"`
	Albums    []catalog.Album `json:"albums"`
}

// SearchBundle holds combined artist and track search results.
type SearchBundle struct {
	Artists []catalog.Artist `json:"artists"`
	Tracks  []catalog.Track  `json:"tracks"`
	Error   string           `json:"error,omitempty"`
}

// FilteredBundle holds type-filtered search results. Types that were not
// requested stay as empty slices.
type FilteredBundle struct {
	Artists []catalog.Artist `json:"artists"`
	Tracks  []catalog.Track  `json:"tracks"`
	Albums  []catalog.Album  `json:"albums"`
	Error   string           `json:"error,omitempty"`
}

func emptyFiltered(msg string) FilteredBundle {
	return FilteredBundle{
		Artists: []catalog.Artist{},
		Tracks:  []catalog.Track{},
		Albums:  []catalog.Album{},
		Error:   msg,
	}
}
