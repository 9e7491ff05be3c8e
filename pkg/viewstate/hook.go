// Hook bundles the discovery view cells the front end binds to, mirroring
// the trigger surface the UI expects: searchMusic, searchWithFilters,
// getArtist, getAlbum and getHomePageData. Bundle-level error markers are
// folded into the cell's Error field so consumers read a single shape.

package viewstate

import (
	"context"
	"errors"

	"Music-Scout-Go/pkg/catalog"
	"Music-Scout-Go/pkg/discovery"
)

// Discoverer is the subset of the discovery service the hook drives.
type Discoverer interface {
	Home(ctx context.Context) discovery.HomeBundle
	Artist(ctx context.Context, id string) (discovery.ArtistBundle, error)
	Album(ctx context.Context, id string) (catalog.Album, error)
	Search(ctx context.Context, query string) discovery.SearchBundle
	SearchFiltered(ctx context.Context, query string, f discovery.Filters) discovery.FilteredBundle
}

// Hook owns one view cell per composite view. Construct with NewHook.
type Hook struct {
	svc Discoverer

	SearchResults   View[discovery.SearchBundle]
	FilteredResults View[discovery.FilteredBundle]
	ArtistDetails   View[discovery.ArtistBundle]
	AlbumDetails    View[catalog.Album]
	HomePageData    View[discovery.HomeBundle]
}

// NewHook returns a Hook driving svc.
func NewHook(svc Discoverer) *Hook {
	return &Hook{svc: svc}
}

// SearchMusic triggers the combined artist and track search.
func (h *Hook) SearchMusic(ctx context.Context, query string) {
	h.SearchResults.Trigger(ctx, func(ctx context.Context) (discovery.SearchBundle, error) {
		b := h.svc.Search(ctx, query)
		if b.Error != "" {
			return b, errors.New(b.Error)
		}
		return b, nil
	})
}

// SearchWithFilters triggers a type-filtered search.
func (h *Hook) SearchWithFilters(ctx context.Context, query string, f discovery.Filters) {
	h.FilteredResults.Trigger(ctx, func(ctx context.Context) (discovery.FilteredBundle, error) {
		b := h.svc.SearchFiltered(ctx, query, f)
		if b.Error != "" {
			return b, errors.New(b.Error)
		}
		return b, nil
	})
}

// GetArtist triggers the artist detail load.
func (h *Hook) GetArtist(ctx context.Context, artistID string) {
	h.ArtistDetails.Trigger(ctx, func(ctx context.Context) (discovery.ArtistBundle, error) {
		return h.svc.Artist(ctx, artistID)
	})
}

// GetAlbum triggers the album detail load.
func (h *Hook) GetAlbum(ctx context.Context, albumID string) {
	h.AlbumDetails.Trigger(ctx, func(ctx context.Context) (catalog.Album, error) {
		return h.svc.Album(ctx, albumID)
	})
}

// GetHomePageData triggers the home page load.
func (h *Hook) GetHomePageData(ctx context.Context) {
	h.HomePageData.Trigger(ctx, func(ctx context.Context) (discovery.HomeBundle, error) {
		b := h.svc.Home(ctx)
		if b.Error != "" {
			return b, errors.New(b.Error)
		}
		return b, nil
	})
}
