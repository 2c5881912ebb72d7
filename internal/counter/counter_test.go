package counter

import "testing"

func TestCounter_IncrementAndGet(t *testing.T) {
	c := NewCounter()

	c.Increment("a", 1)
	c.Increment("a", 2)
	c.Increment("b", 0.5)

	if got := c.GetCount("a"); got != 3 {
		t.Fatalf("Expected count 3 for a, got %v", got)
	}
	if got := c.GetCount("b"); got != 0.5 {
		t.Fatalf("Expected count 0.5 for b, got %v", got)
	}
	if got := c.GetCount("missing"); got != 0 {
		t.Fatalf("Expected count 0 for missing key, got %v", got)
	}
}

func TestCounter_TotalCount(t *testing.T) {
	c := NewCounter()

	if got := c.TotalCount(); got != 0 {
		t.Fatalf("Expected empty total 0, got %v", got)
	}

	c.Increment("a", 2)
	c.Increment("b", 3)

	if got := c.TotalCount(); got != 5 {
		t.Fatalf("Expected total 5, got %v", got)
	}

	// The cached total must refresh after further increments.
	c.Increment("c", 1)
	if got := c.TotalCount(); got != 6 {
		t.Fatalf("Expected total 6 after increment, got %v", got)
	}
}

func TestCounter_RetainsZeroIncrementedKeys(t *testing.T) {
	c := NewCounter()

	c.Increment("a", 0)

	if c.Size() != 1 {
		t.Fatalf("Expected size 1 after zero increment, got %d", c.Size())
	}
	keys := c.Keys()
	if len(keys) != 1 || keys[0] != "a" {
		t.Fatalf("Expected keys [a], got %v", keys)
	}
	if got := c.GetCount("a"); got != 0 {
		t.Fatalf("Expected retained zero count, got %v", got)
	}
}

func TestCounter_Keys(t *testing.T) {
	c := NewCounter()
	c.Increment("x", 1)
	c.Increment("y", 1)
	c.Increment("z", 1)

	keys := c.Keys()
	if len(keys) != 3 {
		t.Fatalf("Expected 3 keys, got %d", len(keys))
	}
	seen := make(map[string]bool)
	for _, k := range keys {
		seen[k] = true
	}
	for _, want := range []string{"x", "y", "z"} {
		if !seen[want] {
			t.Fatalf("Expected key %q in %v", want, keys)
		}
	}
}
