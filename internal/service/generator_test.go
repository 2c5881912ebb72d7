package service

import (
	"math/rand"
	"testing"

	"lm-go/internal/model/ngram"
)

func TestUnigram_GenerateWordCoversVocabulary(t *testing.T) {
	m := NewUnigram()
	m.Train([][]string{{"a"}})

	// Counts are a=1 and STOP=1, so count/total covers the whole unit
	// interval and the unknown sentinel is unreachable.
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		word, err := m.GenerateWord(rng)
		if err != nil {
			t.Fatalf("GenerateWord failed: %v", err)
		}
		if word != "a" && word != ngram.Stop {
			t.Fatalf("Expected a or STOP, got %q", word)
		}
	}
}

func TestUnigram_GenerateSentenceExcludesStop(t *testing.T) {
	m := NewUnigram()
	m.Train([][]string{{"a", "b"}, {"b"}})

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		sentence, err := m.GenerateSentence(rng, 20)
		if err != nil {
			t.Fatalf("GenerateSentence failed: %v", err)
		}
		if len(sentence) > 20 {
			t.Fatalf("Expected at most 20 words, got %d", len(sentence))
		}
		for _, word := range sentence {
			if word == ngram.Stop || word == ngram.Unknown {
				t.Fatalf("Expected sentinels excluded from output, got %v", sentence)
			}
			if word != "a" && word != "b" {
				t.Fatalf("Expected vocabulary word, got %q", word)
			}
		}
	}
}

func TestBigram_GenerateSentenceFollowsObservedContexts(t *testing.T) {
	// The only observed chain is START -> x -> y -> STOP, so conditional
	// sampling must reproduce it exactly.
	m := NewBigram()
	m.Train([][]string{{"x", "y"}})

	rng := rand.New(rand.NewSource(3))
	sentence, err := m.GenerateSentence(rng, 10)
	if err != nil {
		t.Fatalf("GenerateSentence failed: %v", err)
	}
	if len(sentence) != 2 || sentence[0] != "x" || sentence[1] != "y" {
		t.Fatalf("Expected deterministic chain [x y], got %v", sentence)
	}
}

func TestTrigram_GenerateWordBacksOff(t *testing.T) {
	m := NewTrigram()
	m.Train([][]string{{"x", "y", "z"}})

	rng := rand.New(rand.NewSource(11))

	// Seen trigram context: the only continuation of (x, y) is z.
	word, err := m.GenerateWord(rng, "x", "y")
	if err != nil {
		t.Fatalf("GenerateWord failed: %v", err)
	}
	if word != "z" {
		t.Fatalf("Expected z after (x, y), got %q", word)
	}

	// Unseen trigram context with a seen prev: bigram fallback, y's only
	// successor being z.
	word, err = m.GenerateWord(rng, "never", "y")
	if err != nil {
		t.Fatalf("GenerateWord failed: %v", err)
	}
	if word != "z" {
		t.Fatalf("Expected bigram fallback z, got %q", word)
	}
}

func TestGenerate_UntrainedFails(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := NewUnigram().GenerateSentence(rng, 10); err != ErrNotTrained {
		t.Fatalf("Expected ErrNotTrained, got %v", err)
	}
	if _, err := NewTrigram().GenerateWord(rng, "a", "b"); err != ErrNotTrained {
		t.Fatalf("Expected ErrNotTrained, got %v", err)
	}
}

func TestGenerate_DefaultCapApplies(t *testing.T) {
	// A corpus whose bigram chain loops (a -> a) without ever stopping from
	// the looped context still terminates at the default cap.
	m := NewBigram()
	m.Train([][]string{{"a", "a", "a", "a", "a", "a", "a", "a"}})

	rng := rand.New(rand.NewSource(5))
	sentence, err := m.GenerateSentence(rng, 0)
	if err != nil {
		t.Fatalf("GenerateSentence failed: %v", err)
	}
	if len(sentence) > DefaultMaxGeneratedWords {
		t.Fatalf("Expected at most %d words, got %d", DefaultMaxGeneratedWords, len(sentence))
	}
}
