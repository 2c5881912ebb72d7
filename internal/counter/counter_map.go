package counter

// CounterMap is a two-level sparse counter keyed first by a conditioning
// context and then by the following token. Lookups never fail: an unseen
// context or token yields count zero.
type CounterMap struct {
	counters map[string]*Counter
}

// NewCounterMap creates an empty two-level counter.
func NewCounterMap() *CounterMap {
	return &CounterMap{
		counters: make(map[string]*Counter),
	}
}

// Increment adds amount to the count for (context, token), creating both
// levels as needed.
func (cm *CounterMap) Increment(context, token string, amount float64) {
	inner, ok := cm.counters[context]
	if !ok {
		inner = NewCounter()
		cm.counters[context] = inner
	}
	inner.Increment(token, amount)
}

// GetCount returns the count for (context, token), or 0 if either level is
// absent.
func (cm *CounterMap) GetCount(context, token string) float64 {
	inner, ok := cm.counters[context]
	if !ok {
		return 0
	}
	return inner.GetCount(token)
}

// TotalCount returns the grand total across all (context, token) pairs.
func (cm *CounterMap) TotalCount() float64 {
	total := 0.0
	for _, inner := range cm.counters {
		total += inner.TotalCount()
	}
	return total
}

// ContextCounter returns the inner counter for a context. An unseen context
// yields an empty counter; the returned counter is not stored, so
// incrementing it does not affect the map.
func (cm *CounterMap) ContextCounter(context string) *Counter {
	if inner, ok := cm.counters[context]; ok {
		return inner
	}
	return NewCounter()
}

// Contexts returns all conditioning contexts in unspecified order.
func (cm *CounterMap) Contexts() []string {
	contexts := make([]string, 0, len(cm.counters))
	for context := range cm.counters {
		contexts = append(contexts, context)
	}
	return contexts
}

// Size returns the number of distinct contexts.
func (cm *CounterMap) Size() int {
	return len(cm.counters)
}
