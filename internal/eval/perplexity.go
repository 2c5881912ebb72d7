// Package eval scores trained language models against held-out sentences.
package eval

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"lm-go/internal/model/ngram"
	"lm-go/internal/service"
)

// Report summarizes model quality on a held-out corpus. All log quantities
// are base 2. Working in log space avoids the underflow of raw sentence
// probability products on long sentences.
type Report struct {
	Sentences           int     `json:"sentences"`
	Words               int     `json:"words"`
	LogProbability      float64 `json:"log_probability"`
	MeanSentenceLogProb float64 `json:"mean_sentence_log_prob"`
	CrossEntropy        float64 `json:"cross_entropy"`
	Perplexity          float64 `json:"perplexity"`
}

// Evaluate scores a trained model on held-out sentences. Word counts
// include the appended stop token, matching the models' own sentence
// probability convention.
func Evaluate(m service.LanguageModel, sentences [][]string) (Report, error) {
	sentenceLogProbs := make([]float64, 0, len(sentences))
	words := 0

	for _, sentence := range sentences {
		stopped := ngram.WithStop(sentence)
		logProb := 0.0
		for index := range stopped {
			p, err := m.WordProbability(stopped, index)
			if err != nil {
				return Report{}, err
			}
			logProb += math.Log2(p)
		}
		sentenceLogProbs = append(sentenceLogProbs, logProb)
		words += len(stopped)
	}

	if words == 0 {
		return Report{}, nil
	}

	total := floats.Sum(sentenceLogProbs)
	crossEntropy := -total / float64(words)

	return Report{
		Sentences:           len(sentences),
		Words:               words,
		LogProbability:      total,
		MeanSentenceLogProb: stat.Mean(sentenceLogProbs, nil),
		CrossEntropy:        crossEntropy,
		Perplexity:          math.Exp2(crossEntropy),
	}, nil
}
