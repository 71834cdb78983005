// Cratedigger - Crate Digging Album Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cratedigger

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/tomtom215/cratedigger/internal/config"
	"github.com/tomtom215/cratedigger/internal/discovery"
	"github.com/tomtom215/cratedigger/internal/middleware"
	"github.com/tomtom215/cratedigger/internal/models"
)

// fakeService records calls and serves canned albums.
type fakeService struct {
	mu            sync.Mutex
	discoverCalls []discovery.DiscoverRequest
	searchCalls   []string
	chartCalls    []int
	lastCount     int

	albums        map[int64]*models.Album
	albumErr      error
	upstreamState string
}

func newFakeService() *fakeService {
	return &fakeService{
		albums:        map[int64]*models.Album{},
		upstreamState: "closed",
	}
}

func testAlbum(id int64) models.Album {
	year := "1959"
	return models.Album{
		ID:         id,
		Title:      fmt.Sprintf("Album %d", id),
		Artist:     "Miles Davis",
		CoverURL:   fmt.Sprintf("https://cdn.test/cover/%d.jpg", id),
		PreviewURL: fmt.Sprintf("https://cdn.test/preview/%d.mp3", id),
		Year:       &year,
		DeezerID:   id,
	}
}

func albumsUpTo(n int) []models.Album {
	out := make([]models.Album, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, testAlbum(int64(i)))
	}
	return out
}

func (f *fakeService) ListGenres() []models.Genre {
	return discovery.Genres()
}

func (f *fakeService) Discover(_ context.Context, req discovery.DiscoverRequest) []models.Album {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.discoverCalls = append(f.discoverCalls, req)
	return albumsUpTo(req.Count)
}

func (f *fakeService) Search(_ context.Context, query string, count int) []models.Album {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls = append(f.searchCalls, query)
	f.lastCount = count
	return albumsUpTo(count)
}

func (f *fakeService) Chart(_ context.Context, count int) []models.Album {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chartCalls = append(f.chartCalls, count)
	return albumsUpTo(count)
}

func (f *fakeService) AlbumByID(_ context.Context, id int64) (*models.Album, error) {
	if f.albumErr != nil {
		return nil, f.albumErr
	}
	album, ok := f.albums[id]
	if !ok {
		return nil, fmt.Errorf("lookup %d: %w", id, discovery.ErrAlbumNotFound)
	}
	return album, nil
}

func (f *fakeService) UpstreamState() string {
	return f.upstreamState
}

func testDiscoveryConfig() config.DiscoveryConfig {
	return config.DiscoveryConfig{BatchSize: 10, MaxRandomCount: 30, MaxListCount: 50}
}

// newTestServer builds the full router over svc with rate limiting disabled.
func newTestServer(t *testing.T, svc AlbumService) (http.Handler, *middleware.PerformanceMonitor) {
	t.Helper()

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true

	perfMon := middleware.NewPerformanceMonitor(100, 0)
	router := NewRouter(NewHandler(svc, testDiscoveryConfig(), perfMon), NewChiMiddleware(mwCfg), perfMon)
	handler, err := router.SetupChi()
	if err != nil {
		t.Fatalf("SetupChi() error = %v", err)
	}
	return handler, perfMon
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func httptestDo(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}
