package service

import (
	"math"
	"testing"

	"lm-go/internal/model/ngram"
)

func TestBigram_StartContextScenario(t *testing.T) {
	// Counts: START=1, x=1, y=1, STOP=1; totalWords=4; the joint count for
	// (START, x) is 1.
	m := NewBigram()
	m.Train([][]string{{"x", "y"}})

	got, err := m.WordProbability([]string{"x", "y"}, 0)
	if err != nil {
		t.Fatalf("WordProbability failed: %v", err)
	}
	want := 0.5*(1+0.001)/(1+4*0.001) + 0.5*(1.0/(4+1))
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Expected P(x|START)=%v, got %v", want, got)
	}
}

func TestBigram_ProbabilitiesInUnitInterval(t *testing.T) {
	m := NewBigram()
	m.Train([][]string{
		{"the", "cat", "sat"},
		{"the", "dog"},
	})

	words := []string{"the", "cat", "dog", "sat", "unseen", ngram.Stop, ngram.Start}
	for _, prev := range words {
		for _, word := range words {
			p, err := m.WordProbability([]string{prev, word}, 1)
			if err != nil {
				t.Fatalf("WordProbability failed: %v", err)
			}
			if p <= 0 || p > 1 {
				t.Fatalf("Expected P(%s|%s) in (0,1], got %v", word, prev, p)
			}
		}
	}
}

// Adding an occurrence of a (context, word) pair must raise its
// probability and lower the mass of every other continuation of that
// context.
func TestBigram_AdditiveSmoothingMonotonicity(t *testing.T) {
	base := [][]string{{"x", "y"}, {"x", "z"}}
	extra := [][]string{{"x", "y"}, {"x", "z"}, {"x", "y"}}

	probability := func(corpus [][]string, sentence []string) float64 {
		m := NewBigram()
		m.Train(corpus)
		p, err := m.WordProbability(sentence, 1)
		if err != nil {
			t.Fatalf("WordProbability failed: %v", err)
		}
		return p
	}

	if pBase, pExtra := probability(base, []string{"x", "y"}), probability(extra, []string{"x", "y"}); pExtra <= pBase {
		t.Fatalf("Expected P(y|x) to increase with an extra occurrence: %v -> %v", pBase, pExtra)
	}
	if pBase, pExtra := probability(base, []string{"x", "z"}), probability(extra, []string{"x", "z"}); pExtra >= pBase {
		t.Fatalf("Expected P(z|x) to decrease when (x,y) gains mass: %v -> %v", pBase, pExtra)
	}
}

func TestBigram_SentenceProbabilityIsProduct(t *testing.T) {
	m := NewBigram()
	m.Train([][]string{{"a", "b", "c"}, {"a", "c"}})

	sentence := []string{"a", "b"}
	got, err := m.SentenceProbability(sentence)
	if err != nil {
		t.Fatalf("SentenceProbability failed: %v", err)
	}

	stopped := ngram.WithStop(sentence)
	want := 1.0
	for i := range stopped {
		p, err := m.WordProbability(stopped, i)
		if err != nil {
			t.Fatalf("WordProbability failed: %v", err)
		}
		want *= p
	}
	if math.Abs(got-want) > 1e-15 {
		t.Fatalf("Expected product %v, got %v", want, got)
	}
}

func TestBigram_CheckModelIsStub(t *testing.T) {
	m := NewBigram()
	m.Train([][]string{{"a"}})

	sum, err := m.CheckModel()
	if err != nil {
		t.Fatalf("CheckModel failed: %v", err)
	}
	if sum != 1.0 {
		t.Fatalf("Expected placeholder value 1.0, got %v", sum)
	}
}

func TestBigram_UntrainedQueryFails(t *testing.T) {
	m := NewBigram()
	if _, err := m.WordProbability([]string{"a"}, 0); err != ErrNotTrained {
		t.Fatalf("Expected ErrNotTrained, got %v", err)
	}
}

func TestBigram_EmptyCorpus(t *testing.T) {
	m := NewBigram()
	m.Train([][]string{})

	p, err := m.WordProbability([]string{"a", "b"}, 1)
	if err != nil {
		t.Fatalf("WordProbability failed: %v", err)
	}
	if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
		t.Fatalf("Expected finite positive probability on empty corpus, got %v", p)
	}
}
