package service

import (
	"context"
	"reflect"
	"testing"
)

func TestLineTokenizer_SplitsLinesAndWords(t *testing.T) {
	tok := NewLineTokenizer(false)

	source := []byte("The cat sat\n\n  a  dog \nran\n")
	sentences, err := tok.Tokenize(context.Background(), source)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	want := [][]string{
		{"The", "cat", "sat"},
		{"a", "dog"},
		{"ran"},
	}
	if !reflect.DeepEqual(sentences, want) {
		t.Fatalf("Expected %v, got %v", want, sentences)
	}
}

func TestLineTokenizer_Lowercase(t *testing.T) {
	tok := NewLineTokenizer(true)

	sentences, err := tok.Tokenize(context.Background(), []byte("The CAT\n"))
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := [][]string{{"the", "cat"}}
	if !reflect.DeepEqual(sentences, want) {
		t.Fatalf("Expected %v, got %v", want, sentences)
	}
}

func TestLineTokenizer_CanceledContext(t *testing.T) {
	tok := NewLineTokenizer(false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := tok.Tokenize(ctx, []byte("a b c\n")); err == nil {
		t.Fatal("Expected error for canceled context")
	}
}
