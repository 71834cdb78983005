// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package deezer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/cratedigger/internal/cache"
)

// fakeDeezer serves canned payloads per path and counts hits.
type fakeDeezer struct {
	mu       sync.Mutex
	payloads map[string]string
	hits     map[string]int
	queries  map[string][]string
}

func newFakeDeezer(payloads map[string]string) *fakeDeezer {
	return &fakeDeezer{
		payloads: payloads,
		hits:     make(map[string]int),
		queries:  make(map[string][]string),
	}
}

func (f *fakeDeezer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	f.queries[r.URL.Path] = append(f.queries[r.URL.Path], r.URL.RawQuery)
	payload, ok := f.payloads[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		_, _ = w.Write([]byte(`{"error":{"type":"DataException","message":"no data","code":800}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(payload))
}

func (f *fakeDeezer) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeDeezer) lastQuery(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := f.queries[path]
	if len(q) == 0 {
		return ""
	}
	return q[len(q)-1]
}

func newFakeClient(t *testing.T, payloads map[string]string) (*Client, *fakeDeezer) {
	t.Helper()

	fake := newFakeDeezer(payloads)
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := NewClient(testConfig(server.URL), cache.New(time.Hour), WithSleep(func(ctx context.Context, d time.Duration) error {
		return nil
	}))
	t.Cleanup(client.Close)
	return client, fake
}

func TestGenreArtistsCached(t *testing.T) {
	client, fake := newFakeClient(t, map[string]string{
		"/genre/129/artists": `{"data":[{"id":1,"name":"Miles Davis"},{"id":2,"name":"Nina Simone"}]}`,
	})
	ctx := context.Background()

	first := client.GenreArtists(ctx, 129)
	second := client.GenreArtists(ctx, 129)

	if len(first) != 2 || first[0].Name != "Miles Davis" {
		t.Fatalf("GenreArtists() = %+v", first)
	}
	if len(second) != 2 {
		t.Errorf("cached GenreArtists() = %+v", second)
	}
	if got := fake.hitCount("/genre/129/artists"); got != 1 {
		t.Errorf("upstream hits = %d, want 1", got)
	}
	if got := fake.lastQuery("/genre/129/artists"); got != "limit=100" {
		t.Errorf("query = %q, want limit=100", got)
	}
}

func TestEmptyListingNotCached(t *testing.T) {
	client, fake := newFakeClient(t, map[string]string{
		"/artist/7/albums": `{"data":[]}`,
	})
	ctx := context.Background()

	if got := client.ArtistAlbums(ctx, 7); len(got) != 0 {
		t.Fatalf("ArtistAlbums() = %+v, want empty", got)
	}
	client.ArtistAlbums(ctx, 7)

	if got := fake.hitCount("/artist/7/albums"); got != 2 {
		t.Errorf("upstream hits = %d, want 2 (empty result must not be cached)", got)
	}
}

func TestArtistAlbumsDecodesFlexibleArtist(t *testing.T) {
	client, _ := newFakeClient(t, map[string]string{
		"/artist/7/albums": `{"data":[
			{"id":10,"title":"A","artist":{"id":7,"name":"Sun Ra"},"cover_big":"big"},
			{"id":11,"title":"B","artist":"Sun Ra Arkestra"},
			{"id":12,"title":"C"}
		]}`,
	})

	albums := client.ArtistAlbums(context.Background(), 7)
	if len(albums) != 3 {
		t.Fatalf("ArtistAlbums() returned %d albums, want 3", len(albums))
	}
	if albums[0].Artist.Name != "Sun Ra" || albums[0].Cover() != "big" {
		t.Errorf("album[0] = %+v", albums[0])
	}
	if albums[1].Artist.Name != "Sun Ra Arkestra" {
		t.Errorf("album[1] artist = %+v", albums[1].Artist)
	}
	if albums[2].Artist.Known() {
		t.Errorf("album[2] artist should be unknown, got %+v", albums[2].Artist)
	}
}

func TestSearchAlbumsCacheKeyIncludesPaging(t *testing.T) {
	client, fake := newFakeClient(t, map[string]string{
		"/search/album": `{"data":[{"id":1,"title":"Kind of Blue"}]}`,
	})
	ctx := context.Background()

	client.SearchAlbums(ctx, "blue", 0, 50)
	client.SearchAlbums(ctx, "blue", 0, 50)
	client.SearchAlbums(ctx, "blue", 40, 50)
	client.SearchAlbums(ctx, "blue", 0, 20)

	if got := fake.hitCount("/search/album"); got != 3 {
		t.Errorf("upstream hits = %d, want 3", got)
	}
	if got := fake.lastQuery("/search/album"); got != "index=0&limit=20&q=blue" {
		t.Errorf("last query = %q", got)
	}
}

func TestChartAlbums(t *testing.T) {
	client, fake := newFakeClient(t, map[string]string{
		"/chart/0/albums": `{"data":[{"id":1},{"id":2}],"total":2}`,
	})

	if got := client.ChartAlbums(context.Background(), 2); len(got) != 2 {
		t.Errorf("ChartAlbums() = %+v", got)
	}
	if got := fake.lastQuery("/chart/0/albums"); got != "limit=2" {
		t.Errorf("query = %q, want limit=2", got)
	}
}

func TestFirstPreview(t *testing.T) {
	client, fake := newFakeClient(t, map[string]string{
		"/album/10/tracks": `{"data":[{"id":1,"preview":""},{"id":2,"preview":"https://cdn/p2.mp3"},{"id":3,"preview":"https://cdn/p3.mp3"}]}`,
		"/album/11/tracks": `{"data":[{"id":1,"preview":""}]}`,
	})
	ctx := context.Background()

	if got := client.FirstPreview(ctx, 10); got != "https://cdn/p2.mp3" {
		t.Errorf("FirstPreview(10) = %q", got)
	}
	client.FirstPreview(ctx, 10)
	if got := fake.hitCount("/album/10/tracks"); got != 1 {
		t.Errorf("upstream hits = %d, want 1 (preview cached)", got)
	}
	if got := fake.lastQuery("/album/10/tracks"); got != "limit=5" {
		t.Errorf("query = %q, want limit=5", got)
	}

	if got := client.FirstPreview(ctx, 11); got != "" {
		t.Errorf("FirstPreview(11) = %q, want empty", got)
	}
	client.FirstPreview(ctx, 11)
	if got := fake.hitCount("/album/11/tracks"); got != 2 {
		t.Errorf("upstream hits = %d, want 2 (missing preview not cached)", got)
	}
}

func TestAlbumDetails(t *testing.T) {
	client, fake := newFakeClient(t, map[string]string{
		"/album/302127": `{"id":302127,"title":"Discovery","release_date":"2001-03-07","genres":{"data":[{"id":113,"name":"Dance"}]},"artist":{"name":"Daft Punk"}}`,
	})
	ctx := context.Background()

	details, ok := client.AlbumDetails(ctx, 302127)
	if !ok {
		t.Fatal("AlbumDetails() returned absent")
	}
	if details.Title != "Discovery" || details.Year() != "2001" || details.PrimaryGenre() != "Dance" {
		t.Errorf("AlbumDetails() = %+v", details)
	}

	client.AlbumDetails(ctx, 302127)
	if got := fake.hitCount("/album/302127"); got != 1 {
		t.Errorf("upstream hits = %d, want 1", got)
	}

	if _, ok := client.AlbumDetails(ctx, 999); ok {
		t.Error("AlbumDetails(999) should be absent for an error payload")
	}
}
