package secrets

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStaticFetch(t *testing.T) {
	p := NewStatic(map[string]Bundle{
		TokenSettingsName: {"ttl_seconds": "300"},
	})

	b, err := p.Fetch(context.Background(), TokenSettingsName)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if b["ttl_seconds"] != "300" {
		t.Errorf("ttl_seconds = %q, want %q", b["ttl_seconds"], "300")
	}
}

func TestStaticFetchUnknownBundle(t *testing.T) {
	p := NewStatic(nil)

	_, err := p.Fetch(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

// countingProvider records how many times each bundle was fetched.
type countingProvider struct {
	fetches int
	bundle  Bundle
	err     error
}

func (p *countingProvider) Fetch(_ context.Context, _ string) (Bundle, error) {
	p.fetches++
	if p.err != nil {
		return nil, p.err
	}
	return p.bundle, nil
}

func TestCachedServesFromCacheWithinTTL(t *testing.T) {
	inner := &countingProvider{bundle: Bundle{"k": "v"}}
	c := NewCached(inner, time.Minute)

	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		b, err := c.Fetch(context.Background(), TokenSettingsName)
		if err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
		if b["k"] != "v" {
			t.Fatalf("Fetch %d: bundle = %v", i, b)
		}
	}

	if inner.fetches != 1 {
		t.Errorf("inner fetches = %d, want 1", inner.fetches)
	}
}

func TestCachedRefreshesAfterTTL(t *testing.T) {
	inner := &countingProvider{bundle: Bundle{"k": "v"}}
	c := NewCached(inner, time.Minute)

	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	if _, err := c.Fetch(context.Background(), TokenSettingsName); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.Fetch(context.Background(), TokenSettingsName); err != nil {
		t.Fatalf("Fetch after expiry: %v", err)
	}

	if inner.fetches != 2 {
		t.Errorf("inner fetches = %d, want 2", inner.fetches)
	}
}

func TestCachedInvalidate(t *testing.T) {
	inner := &countingProvider{bundle: Bundle{"k": "v"}}
	c := NewCached(inner, time.Hour)

	if _, err := c.Fetch(context.Background(), TokenSettingsName); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	c.Invalidate(TokenSettingsName)
	if _, err := c.Fetch(context.Background(), TokenSettingsName); err != nil {
		t.Fatalf("Fetch after invalidate: %v", err)
	}

	if inner.fetches != 2 {
		t.Errorf("inner fetches = %d, want 2", inner.fetches)
	}
}

func TestCachedDoesNotCacheErrors(t *testing.T) {
	inner := &countingProvider{err: errors.New("store down")}
	c := NewCached(inner, time.Hour)

	for i := 0; i < 2; i++ {
		if _, err := c.Fetch(context.Background(), TokenSettingsName); err == nil {
			t.Fatalf("Fetch %d: expected error", i)
		}
	}

	if inner.fetches != 2 {
		t.Errorf("inner fetches = %d, want 2 (errors must not be cached)", inner.fetches)
	}
}

func TestCachedZeroTTLBypassesCache(t *testing.T) {
	inner := &countingProvider{bundle: Bundle{"k": "v"}}
	c := NewCached(inner, 0)

	for i := 0; i < 2; i++ {
		if _, err := c.Fetch(context.Background(), TokenSettingsName); err != nil {
			t.Fatalf("Fetch %d: %v", i, err)
		}
	}

	if inner.fetches != 2 {
		t.Errorf("inner fetches = %d, want 2", inner.fetches)
	}
}
