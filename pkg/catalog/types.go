// Package catalog is a thin typed client for the Spotify Web API. The types
// in this file are read-only projections of the remote response shapes; they
// carry no identity beyond the remote-assigned ID and are created fresh for
// each response.
//
// Field coverage follows https://developer.spotify.com/documentation/web-api/reference/
// but only the attributes the discovery layer and UI consume are mapped.
package catalog

// Image is an image resource in one of the remote API's image sets.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Followers carries an artist's follower count.
type Followers struct {
	Total int `json:"total"`
}

// Artist represents a catalog artist.
type Artist struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Genres     []string  `json:"genres"`
	Images     []Image   `json:"images"`
	Followers  Followers `json:"followers"`
	Popularity int       `json:"popularity"`
	URI        string    `json:"uri"`
}

// Track represents a catalog track. Album is the simplified album object the
// API embeds in track responses.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []Artist `json:"artists"`
	Album      Album    `json:"album"`
	DurationMS int      `json:"duration_ms"`
	Popularity int      `json:"popularity"`
	PreviewURL string   `json:"preview_url"`
	URI        string   `json:"uri"`
}

// Album represents a catalog album. Tracks is only populated on full album
// lookups; list and search responses return the simplified shape.
type Album struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	AlbumType   string     `json:"album_type"`
	Artists     []Artist   `json:"artists"`
	Images      []Image    `json:"images"`
	ReleaseDate string     `json:"release_date"`
	TotalTracks int        `json:"total_tracks"`
	URI         string     `json:"uri"`
	Tracks      *trackPage `json:"tracks,omitempty"`
}

// AlbumTracks returns the track listing of a full album lookup, or nil for
// simplified albums.
func (a Album) AlbumTracks() []Track {
	if a.Tracks == nil {
		return nil
	}
	return a.Tracks.Items
}

// Category is a browse category such as "Pop" or "Hip-Hop".
type Category struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Icons []Image `json:"icons"`
}

// Playlist is the simplified playlist object returned by playlist search.
type Playlist struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Images      []Image      `json:"images"`
	URI         string       `json:"uri"`
	Tracks      PlaylistRefs `json:"tracks"`
}

// PlaylistRefs carries the track count of a playlist without its items.
type PlaylistRefs struct {
	Total int `json:"total"`
}

// Paging envelopes used by search and browse responses. The remote API wraps
// every collection in one of these; callers receive the Items in the API's
// own ranking order.
type artistPage struct {
	Items []Artist `json:"items"`
}

type trackPage struct {
	Items []Track `json:"items"`
}

type albumPage struct {
	Items []Album `json:"items"`
}

type playlistPage struct {
	Items []Playlist `json:"items"`
}

type categoryPage struct {
	Items []Category `json:"items"`
}
