// Package service implements the smoothed n-gram language models and the
// corpus plumbing around them.
package service

import (
	"errors"
	"math/rand"

	"lm-go/internal/model/ngram"
)

// ErrNotTrained is returned when a model is queried before Train has
// completed at least once.
var ErrNotTrained = errors.New("language model has not been trained")

// unseenWordFloor is the fictitious count assigned to words never seen in
// training when they appear inside an interpolation term, so the unigram
// component of a blend never collapses to exactly zero.
const unseenWordFloor = 1.0

// LanguageModel estimates probability distributions over sentences of word
// tokens. Train fully re-derives all counts from scratch; it is not
// additive across calls. Query methods treat the given sentence verbatim
// (no stop token is appended for WordProbability; SentenceProbability
// appends one itself).
type LanguageModel interface {
	// Train builds the model's count tables from a corpus of sentences.
	// The caller must not pre-insert start or stop tokens.
	Train(sentences [][]string)

	// WordProbability returns the probability of the word at index in the
	// sentence, conditioned per the model's order. Always strictly
	// positive for a trained model.
	WordProbability(sentence []string, index int) (float64, error)

	// SentenceProbability returns the product of per-position word
	// probabilities over the sentence with the stop token appended. May
	// underflow toward zero for long sentences; callers needing
	// log-probabilities should sum logs of the per-word factors.
	SentenceProbability(sentence []string) (float64, error)

	// CheckModel returns a per-model diagnostic of the probability mass;
	// see each model for its exact semantics.
	CheckModel() (float64, error)
}

// SentenceGenerator samples sentences from a trained model. The stop token
// is excluded from the returned sentence. maxWords bounds generation;
// values <= 0 fall back to DefaultMaxGeneratedWords.
type SentenceGenerator interface {
	GenerateSentence(rng *rand.Rand, maxWords int) ([]string, error)
}

// sentenceProbability is the shared product-form implementation: append the
// stop token and multiply the per-position word probabilities.
func sentenceProbability(m LanguageModel, sentence []string) (float64, error) {
	stopped := ngram.WithStop(sentence)
	probability := 1.0
	for index := range stopped {
		p, err := m.WordProbability(stopped, index)
		if err != nil {
			return 0, err
		}
		probability *= p
	}
	return probability, nil
}
