package service

import (
	"math"
	"testing"

	"lm-go/internal/model/ngram"
)

func TestUnigram_KnownScenario(t *testing.T) {
	// Counts: a=2, b=1, STOP=2; total=5; vocabulary=4 (3 distinct + 1).
	m := NewUnigram()
	m.Train([][]string{{"a", "b"}, {"a"}})

	got, err := m.WordProbability([]string{"a"}, 0)
	if err != nil {
		t.Fatalf("WordProbability failed: %v", err)
	}
	want := (2 + 0.01) / (5 + 4*0.01)
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Expected P(a)=%v, got %v", want, got)
	}
}

func TestUnigram_CheckModelSumsToOne(t *testing.T) {
	m := NewUnigram()
	m.Train([][]string{
		{"the", "cat", "sat"},
		{"the", "dog", "ran"},
		{"a", "cat"},
	})

	sum, err := m.CheckModel()
	if err != nil {
		t.Fatalf("CheckModel failed: %v", err)
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("Expected mass sum 1.0 within 1e-9, got %v", sum)
	}
}

func TestUnigram_UnseenWordIsPositive(t *testing.T) {
	m := NewUnigram()
	m.Train([][]string{{"a", "b"}})

	p, err := m.WordProbability([]string{"never-seen"}, 0)
	if err != nil {
		t.Fatalf("WordProbability failed: %v", err)
	}
	if p <= 0 {
		t.Fatalf("Expected strictly positive probability for unseen word, got %v", p)
	}
	if p > 1 {
		t.Fatalf("Expected probability <= 1, got %v", p)
	}
}

func TestUnigram_SentenceProbabilityIsProduct(t *testing.T) {
	m := NewUnigram()
	m.Train([][]string{{"a", "b"}, {"b", "c"}})

	sentence := []string{"a", "c"}
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

func TestUnigram_RetrainIsIdempotent(t *testing.T) {
	corpus := [][]string{{"x", "y", "z"}, {"x"}}

	m := NewUnigram()
	m.Train(corpus)
	first, err := m.SentenceProbability([]string{"x", "y"})
	if err != nil {
		t.Fatalf("SentenceProbability failed: %v", err)
	}

	m.Train(corpus)
	second, err := m.SentenceProbability([]string{"x", "y"})
	if err != nil {
		t.Fatalf("SentenceProbability failed: %v", err)
	}

	if first != second {
		t.Fatalf("Expected identical probabilities after retrain, got %v then %v", first, second)
	}
}

func TestUnigram_UntrainedQueryFails(t *testing.T) {
	m := NewUnigram()

	if _, err := m.WordProbability([]string{"a"}, 0); err != ErrNotTrained {
		t.Fatalf("Expected ErrNotTrained, got %v", err)
	}
	if _, err := m.SentenceProbability([]string{"a"}); err != ErrNotTrained {
		t.Fatalf("Expected ErrNotTrained, got %v", err)
	}
	if _, err := m.CheckModel(); err != ErrNotTrained {
		t.Fatalf("Expected ErrNotTrained, got %v", err)
	}
}

func TestUnigram_EmptyCorpus(t *testing.T) {
	m := NewUnigram()
	m.Train(nil)

	p, err := m.WordProbability([]string{"anything"}, 0)
	if err != nil {
		t.Fatalf("WordProbability failed: %v", err)
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		t.Fatalf("Expected finite probability on empty corpus, got %v", p)
	}
	if p <= 0 || p > 1 {
		t.Fatalf("Expected probability in (0, 1], got %v", p)
	}
}
