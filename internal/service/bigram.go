package service

import (
	"math/rand"
	"sync"

	"lm-go/internal/counter"
	"lm-go/internal/model/ngram"
)

// bigramDelta is the additive smoothing constant for both bigram variants.
const bigramDelta = 0.001

// Bigram is a bigram language model blending an additive-smoothed
// conditional estimate with a raw near-unigram estimate at fixed 0.5/0.5
// weights:
//
//	P(w | prev) = 0.5*(c(prev,w)+d)/(c(prev)+totalWords*d) + 0.5*c'(w)/(totalWords+1)
//
// where c'(w) is the unigram count floored to unseenWordFloor for words
// never seen in training. The blend is not normalized to sum to exactly 1
// over the vocabulary; it trades exactness for a simple, strictly positive
// estimate.
type Bigram struct {
	smoother Smoother
	mu       sync.RWMutex
	state    *bigramState
}

// bigramState holds one training pass's counts and derived scalars.
type bigramState struct {
	words        *counter.Counter
	bigrams      *counter.CounterMap
	totalWords   float64
	totalBigrams float64
	vocabulary   float64
}

// NewBigram creates an untrained bigram model.
func NewBigram() *Bigram {
	return &Bigram{
		smoother: NewAddDeltaSmoother(bigramDelta),
	}
}

// Train counts unigrams and (prevWord, word) pairs over every sentence with
// the stop token appended. prevWord starts at the start token for each
// sentence, and the start token itself is counted once per sentence so it
// participates in the total word mass.
func (m *Bigram) Train(sentences [][]string) {
	words := counter.NewCounter()
	bigrams := counter.NewCounterMap()

	for _, sentence := range sentences {
		words.Increment(ngram.Start, 1)
		prevWord := ngram.Start
		for _, word := range ngram.WithStop(sentence) {
			words.Increment(word, 1)
			bigrams.Increment(prevWord, word, 1)
			prevWord = word
		}
	}

	st := &bigramState{
		words:        words,
		bigrams:      bigrams,
		totalWords:   words.TotalCount(),
		totalBigrams: bigrams.TotalCount(),
		vocabulary:   float64(words.Size() + 1),
	}

	m.mu.Lock()
	m.state = st
	m.mu.Unlock()
}

func (m *Bigram) snapshot() (*bigramState, error) {
	m.mu.RLock()
	st := m.state
	m.mu.RUnlock()
	if st == nil {
		return nil, ErrNotTrained
	}
	return st, nil
}

func (m *Bigram) wordProbability(st *bigramState, word, prevWord string) float64 {
	jointCount := st.bigrams.GetCount(prevWord, word)
	prevCount := st.words.GetCount(prevWord)
	thisWordCount := st.words.GetCount(word)
	if thisWordCount == 0 {
		thisWordCount = unseenWordFloor
	}

	// An empty corpus leaves the additive denominator at zero (it scales
	// with totalWords); fall back to the floored unigram term alone.
	if st.totalWords == 0 {
		return thisWordCount / (st.totalWords + 1)
	}

	conditional := m.smoother.Smooth(jointCount, prevCount, st.totalWords)
	return 0.5*conditional + 0.5*(thisWordCount/(st.totalWords+1))
}

// WordProbability returns the blended probability of the word at index
// given its predecessor. The predecessor of the first word is the start
// token.
func (m *Bigram) WordProbability(sentence []string, index int) (float64, error) {
	st, err := m.snapshot()
	if err != nil {
		return 0, err
	}

	word := sentence[index]
	prevWord := ngram.Start
	if index > 0 {
		prevWord = sentence[index-1]
	}
	return m.wordProbability(st, word, prevWord), nil
}

// SentenceProbability returns the product of per-position probabilities
// over the sentence with the stop token appended.
func (m *Bigram) SentenceProbability(sentence []string) (float64, error) {
	if _, err := m.snapshot(); err != nil {
		return 0, err
	}
	return sentenceProbability(m, sentence)
}

// CheckModel always returns 1.0 for this variant. The blend is not
// normalized over the vocabulary, so no cheap mass check exists; this is a
// placeholder, not a verification.
func (m *Bigram) CheckModel() (float64, error) {
	if _, err := m.snapshot(); err != nil {
		return 0, err
	}
	return 1.0, nil
}

// GenerateWord samples a successor of prevWord from the observed
// continuation counts, falling back to the unigram counts when the context
// was never seen.
func (m *Bigram) GenerateWord(rng *rand.Rand, prevWord string) (string, error) {
	st, err := m.snapshot()
	if err != nil {
		return "", err
	}
	return drawSuccessor(rng, st.words, st.totalWords, st.bigrams, prevWord), nil
}

// GenerateSentence samples words starting from the start token until the
// stop token is drawn, excluding the stop token from the result.
func (m *Bigram) GenerateSentence(rng *rand.Rand, maxWords int) ([]string, error) {
	st, err := m.snapshot()
	if err != nil {
		return nil, err
	}

	draw := func(generated []string) string {
		prevWord := ngram.Start
		if len(generated) > 0 {
			prevWord = generated[len(generated)-1]
		}
		return drawSuccessor(rng, st.words, st.totalWords, st.bigrams, prevWord)
	}
	return generateSentence(draw, maxWords), nil
}

// drawSuccessor rolls the roulette over the continuations of prevWord, or
// over the unigram counts when the context is unseen.
func drawSuccessor(rng *rand.Rand, words *counter.Counter, totalWords float64, bigrams *counter.CounterMap, prevWord string) string {
	continuations := bigrams.ContextCounter(prevWord)
	if continuations.Size() > 0 {
		return rouletteDraw(rng, continuations, continuations.TotalCount())
	}
	return rouletteDraw(rng, words, totalWords)
}
