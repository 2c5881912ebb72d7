package counter

import (
	"hash/fnv"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// trieNode is a node in the counting trie.
type trieNode struct {
	count    float64
	children map[uint32]*trieNode
}

func newTrieNode() *trieNode {
	return &trieNode{
		children: make(map[uint32]*trieNode),
	}
}

// Trie is a sparse counter over token sequences, stored as a trie with
// string interning. It backs the trigram table (a three-level
// context -> context -> token mapping) and supports prefix queries for
// enumerating candidate continuations.
//
// An optional bloom filter suppresses singleton sequences for very large
// corpora: the first occurrence of a sequence is recorded only in the
// filter, and counts are stored in the trie from the second occurrence on.
// Counts are then lower bounds, so the estimators construct exact
// (bloomless) tries.
type Trie struct {
	root      *trieNode
	tokenToID map[string]uint32
	idToToken []string
	nextID    uint32
	total     float64
	seen      *bloom.BloomFilter
	useBloom  bool
	mu        sync.RWMutex
}

// NewTrie creates an exact counting trie.
func NewTrie() *Trie {
	return &Trie{
		root:      newTrieNode(),
		tokenToID: make(map[string]uint32),
		idToToken: []string{"<ROOT>"}, // ID 0 is reserved for the root
		nextID:    1,
	}
}

// NewTrieWithBloom creates a counting trie with bloom-filtered singleton
// suppression.
func NewTrieWithBloom(expectedItems uint, falsePositiveRate float64) *Trie {
	t := NewTrie()
	t.useBloom = true
	t.seen = bloom.NewWithEstimates(expectedItems, falsePositiveRate)
	return t
}

// internToken converts a token to its ID, assigning a new ID if needed.
func (t *Trie) internToken(token string) uint32 {
	if id, exists := t.tokenToID[token]; exists {
		return id
	}
	id := t.nextID
	t.nextID++
	t.tokenToID[token] = id
	t.idToToken = append(t.idToToken, token)
	return id
}

// tokensToKey builds a hash key for a token sequence (for the bloom filter).
func tokensToKey(tokens []string) string {
	h := fnv.New64a()
	for _, token := range tokens {
		h.Write([]byte(token))
		h.Write([]byte{0}) // separator
	}
	return string(h.Sum(nil))
}

// Increment adds amount to the count stored at the exact token sequence.
func (t *Trie) Increment(tokens []string, amount float64) {
	if len(tokens) == 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.useBloom {
		key := tokensToKey(tokens)
		if !t.seen.TestString(key) {
			// First occurrence: remember it in the filter only.
			t.seen.AddString(key)
			return
		}
	}

	current := t.root
	for _, token := range tokens {
		id := t.internToken(token)
		child, exists := current.children[id]
		if !exists {
			child = newTrieNode()
			current.children[id] = child
		}
		current = child
	}

	current.count += amount
	t.total += amount
}

// node walks the trie to the node for a token sequence, or nil if any step
// of the path is absent. Callers must hold the read lock.
func (t *Trie) node(tokens []string) *trieNode {
	current := t.root
	for _, token := range tokens {
		id, exists := t.tokenToID[token]
		if !exists {
			return nil
		}
		child, exists := current.children[id]
		if !exists {
			return nil
		}
		current = child
	}
	return current
}

// GetCount returns the count stored at the exact token sequence, or 0.
func (t *Trie) GetCount(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.node(tokens)
	if n == nil {
		return 0
	}
	return n.count
}

// HasPrefix reports whether any counted sequence extends the given prefix.
func (t *Trie) HasPrefix(prefix []string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.node(prefix)
	if n == nil {
		return false
	}
	return n.count > 0 || len(n.children) > 0
}

// PrefixTotal returns the sum of all counts stored at or below the prefix.
func (t *Trie) PrefixTotal(prefix []string) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := t.node(prefix)
	if n == nil {
		return 0
	}
	return subtreeTotal(n)
}

func subtreeTotal(n *trieNode) float64 {
	total := n.count
	for _, child := range n.children {
		total += subtreeTotal(child)
	}
	return total
}

// Continuations returns the tokens observed immediately after the prefix,
// mapped to the total count stored at or below each continuation. An unseen
// prefix yields an empty map.
func (t *Trie) Continuations(prefix []string) map[string]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[string]float64)
	n := t.node(prefix)
	if n == nil {
		return result
	}
	for id, child := range n.children {
		result[t.idToToken[id]] = subtreeTotal(child)
	}
	return result
}

// TotalCount returns the grand total over all counted sequences.
func (t *Trie) TotalCount() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}

// VocabularySize returns the number of distinct tokens interned.
func (t *Trie) VocabularySize() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.tokenToID)
}
