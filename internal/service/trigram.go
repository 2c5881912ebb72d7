package service

import (
	"math/rand"
	"sync"
	"time"

	"lm-go/internal/counter"
	"lm-go/internal/model/ngram"
)

// trigramDelta is the additive smoothing constant for the trigram and
// bigram levels of the back-off.
const trigramDelta = 0.001

// Back-off blend weights. Each branch's weights sum to 1 so the estimate
// stays a convex combination of strictly positive terms.
const (
	trigramLevelWeight       = 0.6
	trigramBigramLevelWeight = 0.3
	trigramUnigramWeight     = 0.1
	backoffBigramWeight      = 0.7
	backoffUnigramWeight     = 0.3
)

// Trigram is a trigram language model with hierarchical back-off. The
// trigram conditional estimate is used when the conditioning bigram
// (prevprev, prev) has been seen, blended down through the bigram
// conditional estimate to the floored unigram estimate; when higher-order
// evidence is absent the lower levels take over entirely:
//
//	seen (prevprev, prev):  0.6*P3 + 0.3*P2 + 0.1*P1
//	seen prev only:         0.7*P2 + 0.3*P1
//	otherwise:              P1
//
// with P3 = (c(prevprev,prev,w)+d)/(c(prevprev,prev)+V*d),
// P2 = (c(prev,w)+d)/(c(prev)+V*d), and P1 = c'(w)/(totalWords+1) under the
// unseen-word floor.
type Trigram struct {
	smoother Smoother
	rng      *rand.Rand
	newTrie  func() *counter.Trie
	mu       sync.RWMutex
	state    *trigramState
}

// trigramState holds one training pass's counts and derived scalars.
type trigramState struct {
	words         *counter.Counter
	bigrams       *counter.CounterMap
	trigrams      *counter.Trie
	totalWords    float64
	totalBigrams  float64
	totalTrigrams float64
	vocabulary    float64
}

// NewTrigram creates an untrained trigram model with an exact trigram
// table.
func NewTrigram() *Trigram {
	return &Trigram{
		smoother: NewAddDeltaSmoother(trigramDelta),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		newTrie:  counter.NewTrie,
	}
}

// NewTrigramWithBloom creates a trigram model whose trigram table
// suppresses singleton trigrams behind a bloom filter. Trigram counts
// become lower bounds, trading exactness for memory on very large corpora;
// the bigram and unigram back-off levels stay exact.
func NewTrigramWithBloom(expectedItems uint, falsePositiveRate float64) *Trigram {
	m := NewTrigram()
	m.newTrie = func() *counter.Trie {
		return counter.NewTrieWithBloom(expectedItems, falsePositiveRate)
	}
	return m
}

// NewTrigramWithRand creates a trigram model using the given random source
// for CheckModel's context sampling.
func NewTrigramWithRand(rng *rand.Rand) *Trigram {
	m := NewTrigram()
	m.rng = rng
	return m
}

// Train slides a three-token window across each sentence with the start
// token prepended and the stop token appended. Every position contributes
// a unigram count; positions with a full window ahead contribute a bigram
// and a trigram; the final pair contributes its bigram without a trigram
// continuation.
func (m *Trigram) Train(sentences [][]string) {
	words := counter.NewCounter()
	bigrams := counter.NewCounterMap()
	trigrams := m.newTrie()

	for _, sentence := range sentences {
		padded := ngram.WithBoundaries(sentence)
		for i := range padded {
			words.Increment(padded[i], 1)
			switch {
			case i <= len(padded)-3:
				bigrams.Increment(padded[i], padded[i+1], 1)
				trigrams.Increment(padded[i:i+3], 1)
			case i == len(padded)-2:
				bigrams.Increment(padded[i], padded[i+1], 1)
			}
		}
	}

	st := &trigramState{
		words:         words,
		bigrams:       bigrams,
		trigrams:      trigrams,
		totalWords:    words.TotalCount(),
		totalBigrams:  bigrams.TotalCount(),
		totalTrigrams: trigrams.TotalCount(),
		vocabulary:    float64(words.Size() + 1),
	}

	m.mu.Lock()
	m.state = st
	m.mu.Unlock()
}

func (m *Trigram) snapshot() (*trigramState, error) {
	m.mu.RLock()
	st := m.state
	m.mu.RUnlock()
	if st == nil {
		return nil, ErrNotTrained
	}
	return st, nil
}

func (m *Trigram) wordProbability(st *trigramState, word, prevprevWord, prevWord string) float64 {
	trigramCount := st.trigrams.GetCount([]string{prevprevWord, prevWord, word})
	prevBigramCount := st.bigrams.GetCount(prevprevWord, prevWord)
	bigramCount := st.bigrams.GetCount(prevWord, word)
	prevCount := st.words.GetCount(prevWord)
	thisWordCount := st.words.GetCount(word)
	if thisWordCount == 0 {
		thisWordCount = unseenWordFloor
	}

	unigram := thisWordCount / (st.totalWords + 1)

	switch {
	case prevBigramCount > 0:
		trigram := m.smoother.Smooth(trigramCount, prevBigramCount, st.vocabulary)
		bigram := m.smoother.Smooth(bigramCount, prevCount, st.vocabulary)
		return trigramLevelWeight*trigram + trigramBigramLevelWeight*bigram + trigramUnigramWeight*unigram
	case prevCount > 0:
		bigram := m.smoother.Smooth(bigramCount, prevCount, st.vocabulary)
		return backoffBigramWeight*bigram + backoffUnigramWeight*unigram
	default:
		return unigram
	}
}

// WordProbability returns the backed-off probability of the word at index
// given its two predecessors. Missing predecessors at the sentence start
// are the start token.
func (m *Trigram) WordProbability(sentence []string, index int) (float64, error) {
	st, err := m.snapshot()
	if err != nil {
		return 0, err
	}

	word := sentence[index]
	prevWord := ngram.Start
	if index > 0 {
		prevWord = sentence[index-1]
	}
	prevprevWord := ngram.Start
	if index > 1 {
		prevprevWord = sentence[index-2]
	}
	return m.wordProbability(st, word, prevprevWord, prevWord), nil
}

// SentenceProbability returns the product of per-position probabilities
// over the sentence with the stop token appended.
func (m *Trigram) SentenceProbability(sentence []string) (float64, error) {
	if _, err := m.snapshot(); err != nil {
		return 0, err
	}
	return sentenceProbability(m, sentence)
}

// CheckModel spot-checks one conditioning bigram: it samples a context pair
// from the observed bigrams and sums the probability of every trigram
// continuation of that pair. As with the interpolated bigram this is a
// diagnostic, not an exact mass check: mass reserved for unseen
// continuations is outside the enumerated sum.
func (m *Trigram) CheckModel() (float64, error) {
	st, err := m.snapshot()
	if err != nil {
		return 0, err
	}

	contexts := st.bigrams.Contexts()
	if len(contexts) == 0 {
		return 0, nil
	}
	prevprevWord := contexts[m.rng.Intn(len(contexts))]

	prevCandidates := st.bigrams.ContextCounter(prevprevWord).Keys()
	if len(prevCandidates) == 0 {
		return 0, nil
	}
	prevWord := prevCandidates[m.rng.Intn(len(prevCandidates))]

	sum := 0.0
	for word := range st.trigrams.Continuations([]string{prevprevWord, prevWord}) {
		sum += m.wordProbability(st, word, prevprevWord, prevWord)
	}
	return sum, nil
}

// GenerateWord samples a continuation of (prevprevWord, prevWord),
// backing off to the bigram continuations of prevWord and then to the
// unigram counts as evidence thins out.
func (m *Trigram) GenerateWord(rng *rand.Rand, prevprevWord, prevWord string) (string, error) {
	st, err := m.snapshot()
	if err != nil {
		return "", err
	}
	return st.drawContinuation(rng, prevprevWord, prevWord), nil
}

// GenerateSentence samples words starting from a start-token context until
// the stop token is drawn, excluding the stop token from the result.
func (m *Trigram) GenerateSentence(rng *rand.Rand, maxWords int) ([]string, error) {
	st, err := m.snapshot()
	if err != nil {
		return nil, err
	}

	draw := func(generated []string) string {
		prevWord := ngram.Start
		if len(generated) > 0 {
			prevWord = generated[len(generated)-1]
		}
		prevprevWord := ngram.Start
		if len(generated) > 1 {
			prevprevWord = generated[len(generated)-2]
		}
		return st.drawContinuation(rng, prevprevWord, prevWord)
	}
	return generateSentence(draw, maxWords), nil
}

func (st *trigramState) drawContinuation(rng *rand.Rand, prevprevWord, prevWord string) string {
	context := []string{prevprevWord, prevWord}
	if st.trigrams.HasPrefix(context) {
		continuations := st.trigrams.Continuations(context)
		return rouletteDrawMap(rng, continuations, st.trigrams.PrefixTotal(context))
	}
	return drawSuccessor(rng, st.words, st.totalWords, st.bigrams, prevWord)
}
