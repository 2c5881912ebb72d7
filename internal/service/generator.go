package service

import (
	"math/rand"

	"lm-go/internal/counter"
	"lm-go/internal/model/ngram"
)

// DefaultMaxGeneratedWords bounds sentence sampling when the caller does
// not supply a cap, so a model whose mass mostly avoids the stop token
// cannot generate unbounded output.
const DefaultMaxGeneratedWords = 100

// rouletteDraw selects a word from the counter by the cumulative-sum
// roulette walk: draw a uniform sample and step through the keys eating up
// count/total mass until the sample is covered. When total exceeds the
// counter's own mass (the unigram reserve, or totals that include other
// events), the walk can run off the end; the unknown sentinel is returned
// for that reserved remainder.
func rouletteDraw(rng *rand.Rand, c *counter.Counter, total float64) string {
	if total <= 0 {
		return ngram.Unknown
	}
	sample := rng.Float64()
	sum := 0.0
	for _, word := range c.Keys() {
		sum += c.GetCount(word) / total
		if sum > sample {
			return word
		}
	}
	return ngram.Unknown
}

// rouletteDrawMap is rouletteDraw over a plain continuation map.
func rouletteDrawMap(rng *rand.Rand, counts map[string]float64, total float64) string {
	if total <= 0 {
		return ngram.Unknown
	}
	sample := rng.Float64()
	sum := 0.0
	for word, count := range counts {
		sum += count / total
		if sum > sample {
			return word
		}
	}
	return ngram.Unknown
}

// generateSentence repeatedly draws words until the stop token or the
// unknown sentinel is drawn, or the word cap is reached. The draw callback
// receives the words generated so far so conditional models can rebuild
// their context.
func generateSentence(draw func(generated []string) string, maxWords int) []string {
	if maxWords <= 0 {
		maxWords = DefaultMaxGeneratedWords
	}
	sentence := make([]string, 0)
	for len(sentence) < maxWords {
		word := draw(sentence)
		if word == ngram.Stop || word == ngram.Unknown {
			break
		}
		sentence = append(sentence, word)
	}
	return sentence
}
