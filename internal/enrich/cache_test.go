package enrich

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCacheResolvesOnce(t *testing.T) {
	c := NewCache(time.Minute, 10)
	calls := 0
	resolve := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.Do(context.Background(), "key", resolve)
		if err != nil {
			t.Fatalf("Do returned error: %v", err)
		}
		if got != "value" {
			t.Fatalf("Do = %q, want value", got)
		}
	}
	if calls != 1 {
		t.Errorf("resolve called %d times, want 1", calls)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10*time.Millisecond, 10)
	calls := 0
	resolve := func() (string, error) {
		calls++
		return "value", nil
	}

	if _, err := c.Do(context.Background(), "key", resolve); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := c.Do(context.Background(), "key", resolve); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("resolve called %d times after expiry, want 2", calls)
	}
}

func TestCacheSkipsEmptyAndErrorResults(t *testing.T) {
	c := NewCache(time.Minute, 10)

	calls := 0
	empty := func() (string, error) {
		calls++
		return "", nil
	}
	c.Do(context.Background(), "empty", empty)
	c.Do(context.Background(), "empty", empty)
	if calls != 2 {
		t.Errorf("empty result was cached, resolve called %d times", calls)
	}

	calls = 0
	failing := func() (string, error) {
		calls++
		return "", errors.New("boom")
	}
	c.Do(context.Background(), "fail", failing)
	c.Do(context.Background(), "fail", failing)
	if calls != 2 {
		t.Errorf("error result was cached, resolve called %d times", calls)
	}
}

func TestCacheSizeCap(t *testing.T) {
	c := NewCache(time.Minute, 2)

	for _, key := range []string{"a", "b", "c", "d"} {
		k := key
		c.Do(context.Background(), k, func() (string, error) { return k, nil })
	}

	if got := c.Len(); got > 2 {
		t.Errorf("cache holds %d entries, cap is 2", got)
	}
}
