package service

import (
	"math/rand"
	"sync"

	"lm-go/internal/counter"
	"lm-go/internal/model/ngram"
)

// unigramDelta is the additive smoothing constant for the unigram model.
const unigramDelta = 0.01

// Unigram is an additive-smoothed unigram language model. Each word
// probability is (count + delta) / (total + vocabulary*delta), where the
// vocabulary size reserves one slot for an unseen word, so every token gets
// strictly positive probability.
type Unigram struct {
	smoother Smoother
	mu       sync.RWMutex
	state    *unigramState
}

// unigramState holds one training pass's counts and derived scalars. Train
// builds a fresh state and swaps it in, so queries never observe a partial
// update.
type unigramState struct {
	words       *counter.Counter
	total       float64
	vocabulary  float64
	unknownMass float64
}

// NewUnigram creates an untrained unigram model.
func NewUnigram() *Unigram {
	return &Unigram{
		smoother: NewAddDeltaSmoother(unigramDelta),
	}
}

// Train counts every word of every sentence with the stop token appended.
// The start token is not counted here: the unigram model conditions on
// nothing, so only words actually emitted are counted.
func (m *Unigram) Train(sentences [][]string) {
	words := counter.NewCounter()
	for _, sentence := range sentences {
		for _, word := range ngram.WithStop(sentence) {
			words.Increment(word, 1)
		}
	}

	st := &unigramState{
		words:      words,
		total:      words.TotalCount(),
		vocabulary: float64(words.Size() + 1),
	}
	st.unknownMass = unigramDelta / (st.total + st.vocabulary*unigramDelta)

	m.mu.Lock()
	m.state = st
	m.mu.Unlock()
}

func (m *Unigram) snapshot() (*unigramState, error) {
	m.mu.RLock()
	st := m.state
	m.mu.RUnlock()
	if st == nil {
		return nil, ErrNotTrained
	}
	return st, nil
}

func (st *unigramState) wordProbability(s Smoother, word string) float64 {
	return s.Smooth(st.words.GetCount(word), st.total, st.vocabulary)
}

// WordProbability returns the smoothed probability of the word at index.
// Positions are independent in a unigram model, so the rest of the sentence
// is ignored.
func (m *Unigram) WordProbability(sentence []string, index int) (float64, error) {
	st, err := m.snapshot()
	if err != nil {
		return 0, err
	}
	return st.wordProbability(m.smoother, sentence[index]), nil
}

// SentenceProbability returns the product of word probabilities over the
// sentence with the stop token appended.
func (m *Unigram) SentenceProbability(sentence []string) (float64, error) {
	if _, err := m.snapshot(); err != nil {
		return 0, err
	}
	return sentenceProbability(m, sentence)
}

// CheckModel sums the probability of every observed word plus the reserved
// unseen-word mass. For a well-formed model the result is 1 within
// floating-point tolerance.
func (m *Unigram) CheckModel() (float64, error) {
	st, err := m.snapshot()
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for _, word := range st.words.Keys() {
		sum += st.wordProbability(m.smoother, word)
	}
	return sum + st.unknownMass, nil
}

// GenerateWord draws a word by the roulette-wheel walk over raw unigram
// counts. A sliver of mass is reserved for unknowns, so the walk can
// exhaust the vocabulary and return the unknown sentinel.
func (m *Unigram) GenerateWord(rng *rand.Rand) (string, error) {
	st, err := m.snapshot()
	if err != nil {
		return "", err
	}
	return rouletteDraw(rng, st.words, st.total), nil
}

// GenerateSentence samples words until the stop token is drawn, returning
// the sequence with the stop token excluded.
func (m *Unigram) GenerateSentence(rng *rand.Rand, maxWords int) ([]string, error) {
	st, err := m.snapshot()
	if err != nil {
		return nil, err
	}

	draw := func(_ []string) string {
		return rouletteDraw(rng, st.words, st.total)
	}
	return generateSentence(draw, maxWords), nil
}
