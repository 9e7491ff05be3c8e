package discovery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"Music-Scout-Go/pkg/catalog"
)

// fakeCatalog implements Catalog with canned results, per-operation errors
// and call counting. gate, when set for an operation, blocks that call until
// the channel is closed so join semantics can be observed.
type fakeCatalog struct {
	mu    sync.Mutex
	calls map[string]int

	artists   []catalog.Artist
	tracks    []catalog.Track
	albums    []catalog.Album
	cats      []catalog.Category
	playlists []catalog.Playlist
	artist    catalog.Artist
	album     catalog.Album

	errs  map[string]error
	gates map[string]chan struct{}
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		calls: map[string]int{},
		errs:  map[string]error{},
		gates: map[string]chan struct{}{},
		artists: []catalog.Artist{
			{ID: "a1", Name: "Artist One"},
			{ID: "a2", Name: "Artist Two"},
		},
		tracks:    []catalog.Track{{ID: "t1", Name: "Track One"}},
		albums:    []catalog.Album{{ID: "al1", Name: "Album One"}},
		cats:      []catalog.Category{{ID: "c1", Name: "Pop"}},
		playlists: []catalog.Playlist{{ID: "p1", Name: "Hits", Images: []catalog.Image{{URL: "u"}}}},
		artist:    catalog.Artist{ID: "a1", Name: "Artist One"},
		album:     catalog.Album{ID: "al1", Name: "Album One"},
	}
}

func (f *fakeCatalog) enter(op string) error {
	f.mu.Lock()
	f.calls[op]++
	gate := f.gates[op]
	err := f.errs[op]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakeCatalog) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeCatalog) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeCatalog) SearchArtists(ctx context.Context, q string, o catalog.SearchOptions) ([]catalog.Artist, error) {
	if err := f.enter("searchArtists"); err != nil {
		return nil, err
	}
	return f.artists, nil
}

func (f *fakeCatalog) SearchTracks(ctx context.Context, q string, o catalog.SearchOptions) ([]catalog.Track, error) {
	if err := f.enter("searchTracks"); err != nil {
		return nil, err
	}
	return f.tracks, nil
}

func (f *fakeCatalog) SearchAlbums(ctx context.Context, q string, o catalog.SearchOptions) ([]catalog.Album, error) {
	if err := f.enter("searchAlbums"); err != nil {
		return nil, err
	}
	return f.albums, nil
}

func (f *fakeCatalog) SearchPlaylists(ctx context.Context, q string, o catalog.SearchOptions) ([]catalog.Playlist, error) {
	if err := f.enter("searchPlaylists"); err != nil {
		return nil, err
	}
	return f.playlists, nil
}

func (f *fakeCatalog) GetArtist(ctx context.Context, id string) (catalog.Artist, error) {
	if err := f.enter("getArtist"); err != nil {
		return catalog.Artist{}, err
	}
	return f.artist, nil
}

func (f *fakeCatalog) GetArtists(ctx context.Context, ids []string) ([]catalog.Artist, error) {
	if err := f.enter("getArtists"); err != nil {
		return nil, err
	}
	return f.artists, nil
}

func (f *fakeCatalog) GetArtistTopTracks(ctx context.Context, id, market string) ([]catalog.Track, error) {
	if err := f.enter("getArtistTopTracks"); err != nil {
		return nil, err
	}
	return f.tracks, nil
}

func (f *fakeCatalog) GetArtistAlbums(ctx context.Context, id string) ([]catalog.Album, error) {
	if err := f.enter("getArtistAlbums"); err != nil {
		return nil, err
	}
	return f.albums, nil
}

func (f *fakeCatalog) GetAlbum(ctx context.Context, id string) (catalog.Album, error) {
	if err := f.enter("getAlbum"); err != nil {
		return catalog.Album{}, err
	}
	return f.album, nil
}

func (f *fakeCatalog) GetCategories(ctx context.Context, country string, limit int) ([]catalog.Category, error) {
	if err := f.enter("getCategories"); err != nil {
		return nil, err
	}
	return f.cats, nil
}

func (f *fakeCatalog) GetNewReleases(ctx context.Context, country string, limit int) ([]catalog.Album, error) {
	if err := f.enter("getNewReleases"); err != nil {
		return nil, err
	}
	return f.albums, nil
}

// TestHomePopulated exercises the happy path: five calls, all sections
// filled, no error marker.
func TestHomePopulated(t *testing.T) {
	fc := newFakeCatalog()
	svc := New(fc, nil)

	b := svc.Home(context.Background())
	if b.Error != "" {
		t.Fatalf("unexpected bundle error: %s", b.Error)
	}
	if fc.total() != 5 {
		t.Errorf("expected 5 catalog calls, got %d", fc.total())
	}
	if len(b.FeaturedArtists) == 0 || len(b.TrendingTracks) == 0 || len(b.Categories) == 0 || len(b.FeaturedPlaylists) == 0 || len(b.NewReleases) == 0 {
		t.Errorf("sections missing: %+v", b)
	}
}

// TestHomeWaitsForAllCalls holds one call open and asserts the bundle is not
// produced before it settles.
func TestHomeWaitsForAllCalls(t *testing.T) {
	fc := newFakeCatalog()
	gate := make(chan struct{})
	fc.gates["getCategories"] = gate
	svc := New(fc, nil)

	done := make(chan HomeBundle, 1)
	go func() { done <- svc.Home(context.Background()) }()

	select {
	case <-done:
		t.Fatal("bundle produced before all calls settled")
	case <-time.After(50 * time.Millisecond):
	}
	close(gate)
	select {
	case b := <-done:
		if b.Error != "" {
			t.Errorf("unexpected error after join: %s", b.Error)
		}
	case <-time.After(time.Second):
		t.Fatal("bundle never produced after gate released")
	}
}

// TestHomeStrictDegradeOnEmptySection verifies the all-or-nothing policy:
// an empty category listing fails the whole bundle even though the other four
// calls succeeded with items.
func TestHomeStrictDegradeOnEmptySection(t *testing.T) {
	fc := newFakeCatalog()
	fc.cats = nil
	svc := New(fc, nil)

	b := svc.Home(context.Background())
	if b.Error == "" {
		t.Fatal("expected degraded bundle")
	}
	if len(b.FeaturedArtists) != 0 || len(b.TrendingTracks) != 0 || len(b.FeaturedPlaylists) != 0 || len(b.NewReleases) != 0 {
		t.Errorf("degraded bundle must be fully empty: %+v", b)
	}
	if b.FeaturedArtists == nil || b.Categories == nil {
		t.Errorf("collections must be empty, not nil")
	}
}

// TestHomeDegradeOnCallFailure covers the transport failure path.
func TestHomeDegradeOnCallFailure(t *testing.T) {
	fc := newFakeCatalog()
	fc.errs["getNewReleases"] = errors.New("upstream down")
	svc := New(fc, nil)

	b := svc.Home(context.Background())
	if b.Error == "" {
		t.Fatal("expected degraded bundle on call failure")
	}
}

// TestHomePlaylistFilter feeds ten raw playlists of which three are unusable
// and expects at most four valid entries in the featured section.
func TestHomePlaylistFilter(t *testing.T) {
	fc := newFakeCatalog()
	img := []catalog.Image{{URL: "u"}}
	fc.playlists = []catalog.Playlist{
		{ID: "", Name: "no id", Images: img},
		{ID: "p1", Name: "One", Images: img},
		{ID: "p2", Name: "", Images: img},
		{ID: "p3", Name: "Three", Images: img},
		{ID: "p4", Name: "Four"},
		{ID: "p5", Name: "Five", Images: img},
		{ID: "p6", Name: "Six", Images: img},
		{ID: "p7", Name: "Seven", Images: img},
		{ID: "p8", Name: "Eight", Images: img},
		{ID: "p9", Name: "Nine", Images: img},
	}
	svc := New(fc, nil)

	b := svc.Home(context.Background())
	if b.Error != "" {
		t.Fatalf("unexpected error: %s", b.Error)
	}
	if len(b.FeaturedPlaylists) != maxFeaturedPlaylists {
		t.Fatalf("expected %d playlists, got %d", maxFeaturedPlaylists, len(b.FeaturedPlaylists))
	}
	for _, p := range b.FeaturedPlaylists {
		if p.ID == "" || p.Name == "" || len(p.Images) == 0 {
			t.Errorf("invalid playlist passed the filter: %+v", p)
		}
	}
}

// TestArtistBundleAtomic rejects the whole artist bundle when one of the
// three calls fails.
func TestArtistBundleAtomic(t *testing.T) {
	fc := newFakeCatalog()
	fc.errs["getArtistAlbums"] = errors.New("boom")
	svc := New(fc, nil)

	_, err := svc.Artist(context.Background(), "a1")
	if err == nil {
		t.Fatal("expected error when albums call fails")
	}
}

// TestArtistBundle checks the happy path issues exactly three calls.
func TestArtistBundle(t *testing.T) {
	fc := newFakeCatalog()
	svc := New(fc, nil)

	b, err := svc.Artist(context.Background(), "a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Artist.ID != "a1" || len(b.TopTracks) == 0 || len(b.Albums) == 0 {
		t.Errorf("incomplete bundle: %+v", b)
	}
	if fc.total() != 3 {
		t.Errorf("expected 3 calls, got %d", fc.total())
	}
}

// TestSearchFilteredSingleType requests only tracks and asserts one remote
// call with the other types left empty.
func TestSearchFilteredSingleType(t *testing.T) {
	fc := newFakeCatalog()
	svc := New(fc, nil)

	b := svc.SearchFiltered(context.Background(), "jazz", Filters{Types: []string{"track"}})
	if b.Error != "" {
		t.Fatalf("unexpected error: %s", b.Error)
	}
	if fc.total() != 1 || fc.count("searchTracks") != 1 {
		t.Errorf("expected a single track search, calls: %v", fc.calls)
	}
	if len(b.Artists) != 0 || len(b.Albums) != 0 {
		t.Errorf("unrequested types populated: %+v", b)
	}
	if b.Artists == nil || b.Albums == nil {
		t.Errorf("unrequested types must be empty slices")
	}
	if len(b.Tracks) == 0 {
		t.Errorf("requested type empty")
	}
}

// TestSearchFilteredDefaultsToAllTypes issues all three calls when no type
// filter is set.
func TestSearchFilteredDefaultsToAllTypes(t *testing.T) {
	fc := newFakeCatalog()
	svc := New(fc, nil)

	b := svc.SearchFiltered(context.Background(), "jazz", Filters{})
	if b.Error != "" {
		t.Fatalf("unexpected error: %s", b.Error)
	}
	if fc.total() != 3 {
		t.Errorf("expected 3 calls, got %v", fc.calls)
	}
}

// TestSearchFilteredCoarseFailure degrades the entire bundle when one of the
// requested calls fails.
func TestSearchFilteredCoarseFailure(t *testing.T) {
	fc := newFakeCatalog()
	fc.errs["searchAlbums"] = errors.New("boom")
	svc := New(fc, nil)

	b := svc.SearchFiltered(context.Background(), "jazz", Filters{})
	if b.Error == "" {
		t.Fatal("expected degraded bundle")
	}
	if len(b.Artists) != 0 || len(b.Tracks) != 0 || len(b.Albums) != 0 {
		t.Errorf("degraded bundle must be empty: %+v", b)
	}
}

// TestSearchDegradesOnFailure covers the combined search error path.
func TestSearchDegradesOnFailure(t *testing.T) {
	fc := newFakeCatalog()
	fc.errs["searchArtists"] = errors.New("boom")
	svc := New(fc, nil)

	b := svc.Search(context.Background(), "jazz")
	if b.Error == "" {
		t.Fatal("expected error marker")
	}
	if len(b.Artists) != 0 || len(b.Tracks) != 0 {
		t.Errorf("degraded search must be empty: %+v", b)
	}
}
