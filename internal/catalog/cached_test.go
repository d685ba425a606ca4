package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ytdl-ng/ytdl-web/internal/logger"
	"github.com/ytdl-ng/ytdl-web/internal/store"
)

type mockProvider struct {
	profiles []string
	err      error
	called   int
}

func (m *mockProvider) ListProfiles(ctx context.Context) ([]string, error) {
	m.called++
	return m.profiles, m.err
}

type mockCache struct {
	data map[string][]byte
	err  error
}

func (m *mockCache) GetCache(ctx context.Context, key string) ([]byte, error) {
	return m.data[key], m.err
}

func (m *mockCache) SetCache(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	m.data[key] = data
	return m.err
}

func (m *mockCache) DeleteCache(ctx context.Context, key string) error {
	delete(m.data, key)
	return m.err
}

func TestCachedProvider_ListProfiles(t *testing.T) {
	inner := &mockProvider{profiles: []string{"gytmdl", "video"}}
	cache := &mockCache{data: make(map[string][]byte)}
	cp := NewCachedProvider(inner, cache, time.Hour, logger.Discard())

	ctx := context.Background()

	// 1. First call - should call inner provider
	res, err := cp.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	if !reflect.DeepEqual(res, inner.profiles) {
		t.Errorf("Unexpected profiles %q", res)
	}
	if inner.called != 1 {
		t.Errorf("Expected inner provider to be called once, got %d", inner.called)
	}

	// 2. Second call - should hit cache
	res2, err := cp.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("Second ListProfiles failed: %v", err)
	}
	if !reflect.DeepEqual(res2, inner.profiles) {
		t.Errorf("Unexpected cached profiles %q", res2)
	}
	if inner.called != 1 {
		t.Errorf("Expected inner provider to STILL be called once (cache hit), got %d", inner.called)
	}

	// 3. Invalidate - should call inner again
	_ = cp.Invalidate(ctx)
	_, _ = cp.ListProfiles(ctx)
	if inner.called != 2 {
		t.Errorf("Expected inner provider to be called again after invalidate, got %d", inner.called)
	}
}

func TestCachedProvider_FailureNotCached(t *testing.T) {
	inner := &mockProvider{err: ErrProfilesUnavailable}
	cache := &mockCache{data: make(map[string][]byte)}
	cp := NewCachedProvider(inner, cache, time.Hour, logger.Discard())

	if _, err := cp.ListProfiles(context.Background()); !errors.Is(err, ErrProfilesUnavailable) {
		t.Fatalf("Expected ErrProfilesUnavailable, got %v", err)
	}
	if len(cache.data) != 0 {
		t.Errorf("Expected failure not to be cached, got %v", cache.data)
	}

	inner.err = nil
	inner.profiles = []string{"gytmdl"}
	res, err := cp.ListProfiles(context.Background())
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	if !reflect.DeepEqual(res, []string{"gytmdl"}) {
		t.Errorf("Unexpected profiles %q", res)
	}
}

func TestCachedProvider_ZeroTTLDisablesCache(t *testing.T) {
	inner := &mockProvider{profiles: []string{"gytmdl"}}
	cache := &mockCache{data: make(map[string][]byte)}
	cp := NewCachedProvider(inner, cache, 0, logger.Discard())

	for i := 0; i < 3; i++ {
		if _, err := cp.ListProfiles(context.Background()); err != nil {
			t.Fatalf("ListProfiles failed: %v", err)
		}
	}
	if inner.called != 3 {
		t.Errorf("Expected 3 provider calls with caching disabled, got %d", inner.called)
	}
	if len(cache.data) != 0 {
		t.Error("Expected nothing written to cache")
	}
}

func TestCachedProvider_CacheReadErrorFallsThrough(t *testing.T) {
	inner := &mockProvider{profiles: []string{"gytmdl"}}
	cache := &mockCache{data: make(map[string][]byte), err: errors.New("disk I/O error")}
	cp := NewCachedProvider(inner, cache, time.Hour, logger.Discard())

	res, err := cp.ListProfiles(context.Background())
	if err != nil {
		t.Fatalf("Expected cache error to be ignored, got %v", err)
	}
	if len(res) != 1 || inner.called != 1 {
		t.Errorf("Expected provider result, got %q (calls %d)", res, inner.called)
	}
}

func TestCachedProvider_SQLiteCache(t *testing.T) {
	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	defer db.Close()

	inner := &mockProvider{profiles: []string{"gytmdl", "video"}}
	cp := NewCachedProvider(inner, db, time.Hour, logger.Discard())

	for i := 0; i < 2; i++ {
		res, err := cp.ListProfiles(context.Background())
		if err != nil {
			t.Fatalf("ListProfiles failed: %v", err)
		}
		if !reflect.DeepEqual(res, inner.profiles) {
			t.Errorf("Unexpected profiles %q", res)
		}
	}
	if inner.called != 1 {
		t.Errorf("Expected one provider call, got %d", inner.called)
	}
}
