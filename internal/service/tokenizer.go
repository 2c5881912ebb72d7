package service

import (
	"bufio"
	"bytes"
	"context"
	"strings"
)

// SentenceTokenizer splits raw corpus text into sentences of word tokens.
// Implementations must not insert start or stop tokens; the models own the
// boundary convention.
type SentenceTokenizer interface {
	// Tokenize converts corpus text into sentences of word tokens.
	Tokenize(ctx context.Context, source []byte) ([][]string, error)

	// Name returns the tokenizer's name.
	Name() string
}

// LineTokenizer treats each non-empty line as one sentence and splits it
// into words on whitespace.
type LineTokenizer struct {
	lowercase bool
}

// NewLineTokenizer creates a line tokenizer. When lowercase is true every
// word is folded to lower case so the vocabulary is case-insensitive.
func NewLineTokenizer(lowercase bool) *LineTokenizer {
	return &LineTokenizer{lowercase: lowercase}
}

func (t *LineTokenizer) Tokenize(ctx context.Context, source []byte) ([][]string, error) {
	var sentences [][]string

	scanner := bufio.NewScanner(bytes.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		words := strings.Fields(scanner.Text())
		if len(words) == 0 {
			continue
		}
		if t.lowercase {
			for i, word := range words {
				words[i] = strings.ToLower(word)
			}
		}
		sentences = append(sentences, words)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sentences, nil
}

func (t *LineTokenizer) Name() string {
	return "line"
}
