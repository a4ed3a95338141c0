package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"zumarlaw_backend/internal/stats/transport"
	"zumarlaw_backend/platform/logger"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, ttl, logger.New("test")), server
}

func TestCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	query := transport.StatsQuery{Filter: "week"}
	response := transport.StatsResponse{
		Filter: "week",
		Metrics: []transport.StatsMetric{
			{Title: "Completed Services", Value: float64(2)},
		},
	}

	if _, ok := cache.GetStats(context.Background(), query); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.SetStats(context.Background(), query, response)

	got, ok := cache.GetStats(context.Background(), query)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if !reflect.DeepEqual(got, response) {
		t.Errorf("got %+v, want %+v", got, response)
	}
}

func TestCacheKeysAreQueryScoped(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	cache.SetStats(context.Background(), transport.StatsQuery{Filter: "week"}, transport.StatsResponse{Filter: "week"})

	if _, ok := cache.GetStats(context.Background(), transport.StatsQuery{Filter: "month"}); ok {
		t.Error("different query must not hit the week entry")
	}
	if _, ok := cache.GetStats(context.Background(), transport.StatsQuery{Filter: "week", Month: 1, Year: 2026}); ok {
		t.Error("query with explicit parts must not hit the bare entry")
	}
}

func TestCacheExpiry(t *testing.T) {
	cache, server := newTestCache(t, time.Second)
	query := transport.StatsQuery{Filter: "day"}
	cache.SetStats(context.Background(), query, transport.StatsResponse{Filter: "day"})

	server.FastForward(2 * time.Second)

	if _, ok := cache.GetStats(context.Background(), query); ok {
		t.Error("expected miss after TTL expiry")
	}
}

func TestCacheFailuresAreMisses(t *testing.T) {
	cache, server := newTestCache(t, time.Minute)
	query := transport.StatsQuery{Filter: "day"}
	cache.SetStats(context.Background(), query, transport.StatsResponse{Filter: "day"})

	server.Close()

	if _, ok := cache.GetStats(context.Background(), query); ok {
		t.Error("a down redis must read as a miss, not an error")
	}
}

func TestNewCacheNilClient(t *testing.T) {
	if cache := NewCache(nil, time.Minute, logger.New("test")); cache != nil {
		t.Error("nil client must produce a nil cache")
	}
}
