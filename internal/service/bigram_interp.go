package service

import (
	"math/rand"
	"sync"
	"time"

	"lm-go/internal/counter"
	"lm-go/internal/model/ngram"
)

// InterpolatedBigram is the vocabulary-normalized bigram variant. It
// differs from Bigram in three ways: the additive denominator scales with
// the vocabulary size instead of the total word mass, the blend weights are
// 0.7 (conditional) / 0.3 (unigram), and the smoothing therefore applies
// per bigram context rather than globally:
//
//	P(w | prev) = 0.7*(c(prev,w)+d)/(c(prev)+V*d) + 0.3*c'(w)/(totalWords+1)
//
// with the same unseen-word floor on c'(w).
type InterpolatedBigram struct {
	smoother Smoother
	rng      *rand.Rand
	mu       sync.RWMutex
	state    *bigramState
}

// NewInterpolatedBigram creates an untrained interpolated bigram model
// seeded from the clock for its diagnostic sampling.
func NewInterpolatedBigram() *InterpolatedBigram {
	return NewInterpolatedBigramWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewInterpolatedBigramWithRand creates an untrained interpolated bigram
// model using the given random source for CheckModel's context sampling.
func NewInterpolatedBigramWithRand(rng *rand.Rand) *InterpolatedBigram {
	return &InterpolatedBigram{
		smoother: NewAddDeltaSmoother(bigramDelta),
		rng:      rng,
	}
}

// Train counts exactly as Bigram.Train does; only the probability formula
// differs between the two variants.
func (m *InterpolatedBigram) Train(sentences [][]string) {
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

func (m *InterpolatedBigram) snapshot() (*bigramState, error) {
	m.mu.RLock()
	st := m.state
	m.mu.RUnlock()
	if st == nil {
		return nil, ErrNotTrained
	}
	return st, nil
}

func (m *InterpolatedBigram) wordProbability(st *bigramState, word, prevWord string) float64 {
	jointCount := st.bigrams.GetCount(prevWord, word)
	prevCount := st.words.GetCount(prevWord)
	thisWordCount := st.words.GetCount(word)
	if thisWordCount == 0 {
		thisWordCount = unseenWordFloor
	}

	conditional := m.smoother.Smooth(jointCount, prevCount, st.vocabulary)
	return 0.7*conditional + 0.3*(thisWordCount/(st.totalWords+1))
}

// WordProbability returns the blended probability of the word at index
// given its predecessor; the predecessor of the first word is the start
// token.
func (m *InterpolatedBigram) WordProbability(sentence []string, index int) (float64, error) {
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
func (m *InterpolatedBigram) SentenceProbability(sentence []string) (float64, error) {
	if _, err := m.snapshot(); err != nil {
		return 0, err
	}
	return sentenceProbability(m, sentence)
}

// CheckModel spot-checks one conditioning context: it picks a context word
// uniformly from the vocabulary and sums the probability of every word that
// was ever observed following it. The sum approximates the mass assigned to
// seen continuations; it is below 1 because the enumeration skips unseen
// continuations, whose mass the blend still reserves.
func (m *InterpolatedBigram) CheckModel() (float64, error) {
	st, err := m.snapshot()
	if err != nil {
		return 0, err
	}

	contexts := st.words.Keys()
	if len(contexts) == 0 {
		return 0, nil
	}
	context := contexts[m.rng.Intn(len(contexts))]

	sum := 0.0
	for _, word := range st.bigrams.ContextCounter(context).Keys() {
		sum += m.wordProbability(st, word, context)
	}
	return sum, nil
}

// GenerateWord samples a successor of prevWord from the observed
// continuation counts, falling back to the unigram counts for unseen
// contexts.
func (m *InterpolatedBigram) GenerateWord(rng *rand.Rand, prevWord string) (string, error) {
	st, err := m.snapshot()
	if err != nil {
		return "", err
	}
	return drawSuccessor(rng, st.words, st.totalWords, st.bigrams, prevWord), nil
}

// GenerateSentence samples words starting from the start token until the
// stop token is drawn, excluding the stop token from the result.
func (m *InterpolatedBigram) GenerateSentence(rng *rand.Rand, maxWords int) ([]string, error) {
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
