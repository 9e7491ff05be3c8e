// Service implementation: parallel fan-out over the catalog client with join
// semantics. Below this layer failures are errors; at this layer and above
// they become data (the bundle's error field), so handlers and the front end
// never deal with raw exceptions.

package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"Music-Scout-Go/pkg/catalog"
)

// EmptyResultError marks a structurally successful call that returned zero
// items where the home page policy requires at least one. It is treated the
// same as a transport failure for bundle purposes.
type EmptyResultError struct {
	Section string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("home page section %s returned no items", e.Section)
}

// Catalog is the subset of the catalog client used by the service. It allows
// a fake implementation in tests.
type Catalog interface {
	SearchArtists(ctx context.Context, query string, opts catalog.SearchOptions) ([]catalog.Artist, error)
	SearchTracks(ctx context.Context, query string, opts catalog.SearchOptions) ([]catalog.Track, error)
	SearchAlbums(ctx context.Context, query string, opts catalog.SearchOptions) ([]catalog.Album, error)
	SearchPlaylists(ctx context.Context, query string, opts catalog.SearchOptions) ([]catalog.Playlist, error)
	GetArtist(ctx context.Context, id string) (catalog.Artist, error)
	GetArtists(ctx context.Context, ids []string) ([]catalog.Artist, error)
	GetArtistTopTracks(ctx context.Context, id, market string) ([]catalog.Track, error)
	GetArtistAlbums(ctx context.Context, id string) ([]catalog.Album, error)
	GetAlbum(ctx context.Context, id string) (catalog.Album, error)
	GetCategories(ctx context.Context, country string, limit int) ([]catalog.Category, error)
	GetNewReleases(ctx context.Context, country string, limit int) ([]catalog.Album, error)
}

const (
	// maxFeaturedPlaylists is the fixed-size sample shown on the home page.
	maxFeaturedPlaylists = 4

	// defaultMarket matches the market the front end was built for.
	defaultMarket = "FR"
)

// defaultFeaturedArtistIDs is the curated set shown in the featured section.
var defaultFeaturedArtistIDs = []string{
	"3TVXtAsR1Inumwj472S9r4", // Drake
	"06HL4z0CvFAxyc27GXpf02", // Taylor Swift
}

// Service composes catalog calls into UI-ready bundles. Construct with New
// and inject it into the handlers; there is deliberately no package-level
// singleton so token state and test doubles stay explicit.
type Service struct {
	catalog  Catalog
	log      *logrus.Logger
	market   string
	featured []string

	// now is replaceable in tests so year-based queries stay stable.
	now func() time.Time
}

// Option customises the service.
type Option func(*Service)

// WithMarket overrides the market/region parameter used across calls.
func WithMarket(m string) Option {
	return func(s *Service) { s.market = m }
}

// WithFeaturedArtists replaces the curated artist ID set.
func WithFeaturedArtists(ids []string) Option {
	return func(s *Service) { s.featured = ids }
}

// New returns a Service using cat for remote calls. log may be nil, in which
// case the standard logger is used.
func New(cat Catalog, log *logrus.Logger, opts ...Option) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Service{
		catalog:  cat,
		log:      log,
		market:   defaultMarket,
		featured: defaultFeaturedArtistIDs,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Home assembles the home page bundle from five parallel calls: new
// releases, the curated featured artists, a trending-tracks search, the
// category listing and a playlist keyword search. The remote API offers no
// direct featured-playlists listing in this integration, so a "top hits
// <year>" search stands in for one; that workaround is deliberate.
//
// The policy is strict: if any call fails, or any required section comes
// back empty, the whole bundle degrades to empty collections with the error
// marker set. The home page's sections are visually interdependent, so a
// half-filled page is worse than an error state. New releases alone may be
// empty without failing the bundle.
func (s *Service) Home(ctx context.Context) HomeBundle {
	year := s.now().Year()
	var (
		releases  []catalog.Album
		artists   []catalog.Artist
		tracks    []catalog.Track
		cats      []catalog.Category
		playlists []catalog.Playlist
	)
	errs := make([]error, 5)
	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		releases, errs[0] = s.catalog.GetNewReleases(ctx, s.market, 20)
	}()
	go func() {
		defer wg.Done()
		artists, errs[1] = s.catalog.GetArtists(ctx, s.featured)
	}()
	go func() {
		defer wg.Done()
		query := fmt.Sprintf("genre:pop year:%d", year)
		tracks, errs[2] = s.catalog.SearchTracks(ctx, query, catalog.SearchOptions{Market: s.market, Limit: 10})
	}()
	go func() {
		defer wg.Done()
		cats, errs[3] = s.catalog.GetCategories(ctx, s.market, 10)
	}()
	go func() {
		defer wg.Done()
		query := fmt.Sprintf("top hits %d", year)
		playlists, errs[4] = s.catalog.SearchPlaylists(ctx, query, catalog.SearchOptions{Market: s.market, Limit: 10})
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.log.WithError(err).Error("home page fan-out failed")
			return emptyHome("failed to fetch homepage data")
		}
	}
	featured := simplifyPlaylists(playlists)
	for section, n := range map[string]int{
		"featured artists":   len(artists),
		"trending tracks":    len(tracks),
		"categories":         len(cats),
		"featured playlists": len(featured),
	} {
		if n == 0 {
			s.log.WithError(&EmptyResultError{Section: section}).Error("home page incomplete")
			return emptyHome("failed to fetch homepage data")
		}
	}
	if releases == nil {
		releases = []catalog.Album{}
	}
	return HomeBundle{
		FeaturedArtists:   artists,
		TrendingTracks:    tracks,
		Categories:        cats,
		FeaturedPlaylists: featured,
		NewReleases:       releases,
	}
}

// simplifyPlaylists drops entries without an ID, name or image and truncates
// the remainder to the fixed home page sample size.
func simplifyPlaylists(raw []catalog.Playlist) []SimplifiedPlaylist {
	out := make([]SimplifiedPlaylist, 0, maxFeaturedPlaylists)
	for _, p := range raw {
		if p.ID == "" || p.Name == "" || len(p.Images) == 0 {
			continue
		}
		out = append(out, SimplifiedPlaylist{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Images:      p.Images,
			URI:         p.URI,
			TrackCount:  p.Tracks.Total,
		})
		if len(out) == maxFeaturedPlaylists {
			break
		}
	}
	return out
}

// Artist assembles the artist detail bundle from three parallel calls. All
// three must succeed; any failure aborts the whole bundle and propagates to
// the caller so the page can render a dedicated error panel.
func (s *Service) Artist(ctx context.Context, artistID string) (ArtistBundle, error) {
	var (
		artist    catalog.Artist
		topTracks []catalog.Track
		albums    []catalog.Album
	)
	errs := make([]error, 3)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		artist, errs[0] = s.catalog.GetArtist(ctx, artistID)
	}()
	go func() {
		defer wg.Done()
		topTracks, errs[1] = s.catalog.GetArtistTopTracks(ctx, artistID, s.market)
	}()
	go func() {
		defer wg.Done()
		albums, errs[2] = s.catalog.GetArtistAlbums(ctx, artistID)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.log.WithError(err).WithField("artist_id", artistID).Error("artist detail failed")
			return ArtistBundle{}, err
		}
	}
	if topTracks == nil {
		topTracks = []catalog.Track{}
	}
	if albums == nil {
		albums = []catalog.Album{}
	}
	return ArtistBundle{Artist: artist, TopTracks: topTracks, Albums: albums}, nil
}

// Album is a single-call pass-through with error propagation.
func (s *Service) Album(ctx context.Context, albumID string) (catalog.Album, error) {
	album, err := s.catalog.GetAlbum(ctx, albumID)
	if err != nil {
		s.log.WithError(err).WithField("album_id", albumID).Error("album detail failed")
		return catalog.Album{}, err
	}
	return album, nil
}

// Search runs the combined artist and track search used by the main search
// bar. A failure in either call degrades the whole result to the empty/error
// state.
func (s *Service) Search(ctx context.Context, query string) SearchBundle {
	var (
		artists []catalog.Artist
		tracks  []catalog.Track
	)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		artists, errs[0] = s.catalog.SearchArtists(ctx, query, catalog.SearchOptions{})
	}()
	go func() {
		defer wg.Done()
		tracks, errs[1] = s.catalog.SearchTracks(ctx, query, catalog.SearchOptions{})
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.log.WithError(err).WithField("query", query).Error("search failed")
			return SearchBundle{Artists: []catalog.Artist{}, Tracks: []catalog.Track{}, Error: "failed to search catalog"}
		}
	}
	if artists == nil {
		artists = []catalog.Artist{}
	}
	if tracks == nil {
		tracks = []catalog.Track{}
	}
	return SearchBundle{Artists: artists, Tracks: tracks}
}

// Filters narrow a filtered search. Types is a subset of "artist", "track"
// and "album"; an empty set means all three. Genre, when set, is folded into
// the query using the remote API's field filter syntax.
type Filters struct {
	Types  []string
	Market string
	Limit  int
	Genre  string
}

func (f Filters) wants(t string) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, want := range f.Types {
		if want == t {
			return true
		}
	}
	return false
}

// SearchFiltered issues one search call per requested type and assembles the
// results positionally. Types not requested stay as empty slices. A failure
// in any call degrades the entire bundle; per-type partial results were
// considered and rejected to keep the front end's error handling uniform
// (see DESIGN.md).
func (s *Service) SearchFiltered(ctx context.Context, query string, f Filters) FilteredBundle {
	if f.Genre != "" {
		query = fmt.Sprintf("%s genre:%q", query, f.Genre)
	}
	opts := catalog.SearchOptions{Market: f.Market, Limit: f.Limit}

	bundle := FilteredBundle{
		Artists: []catalog.Artist{},
		Tracks:  []catalog.Track{},
		Albums:  []catalog.Album{},
	}
	var wg sync.WaitGroup
	var errs []error
	var mu sync.Mutex
	record := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, err)
		}
	}
	if f.wants("artist") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			artists, err := s.catalog.SearchArtists(ctx, query, opts)
			record(err)
			if err == nil && artists != nil {
				bundle.Artists = artists
			}
		}()
	}
	if f.wants("track") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracks, err := s.catalog.SearchTracks(ctx, query, opts)
			record(err)
			if err == nil && tracks != nil {
				bundle.Tracks = tracks
			}
		}()
	}
	if f.wants("album") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			albums, err := s.catalog.SearchAlbums(ctx, query, opts)
			record(err)
			if err == nil && albums != nil {
				bundle.Albums = albums
			}
		}()
	}
	wg.Wait()

	if len(errs) > 0 {
		s.log.WithError(errs[0]).WithField("query", query).Error("filtered search failed")
		return emptyFiltered("failed to search with filters")
	}
	return bundle
}
