// Package counter provides the sparse count tables shared by the n-gram
// estimators: a flat token counter, a two-level context counter, and an
// interned-token counting trie.
package counter

// Counter is a sparse mapping from a token key to a non-negative count.
// A missing key means count zero, never an error. Keys are retained once
// incremented, even by zero amounts, so zero counts are enumerable.
type Counter struct {
	counts map[string]float64
	total  float64
	dirty  bool
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{
		counts: make(map[string]float64),
	}
}

// Increment adds amount to the stored count for key, creating the entry if
// absent. Amounts are expected to be non-negative.
func (c *Counter) Increment(key string, amount float64) {
	c.counts[key] += amount
	c.dirty = true
}

// GetCount returns the stored count for key, or 0 if the key is absent.
func (c *Counter) GetCount(key string) float64 {
	return c.counts[key]
}

// TotalCount returns the sum of all stored counts. The sum is cached and
// recomputed lazily after increments, so it is valid whenever all
// increments for the current training pass are done.
func (c *Counter) TotalCount() float64 {
	if c.dirty {
		total := 0.0
		for _, count := range c.counts {
			total += count
		}
		c.total = total
		c.dirty = false
	}
	return c.total
}

// Size returns the number of distinct keys.
func (c *Counter) Size() int {
	return len(c.counts)
}

// Keys returns all keys in unspecified order.
func (c *Counter) Keys() []string {
	keys := make([]string, 0, len(c.counts))
	for key := range c.counts {
		keys = append(keys, key)
	}
	return keys
}
