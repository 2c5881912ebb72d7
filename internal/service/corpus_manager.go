package service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Model names used by the corpus manager and the HTTP surface.
const (
	ModelUnigram            = "unigram"
	ModelBigram             = "bigram"
	ModelInterpolatedBigram = "interpolated-bigram"
	ModelTrigram            = "trigram"
)

// CorpusManager owns one tokenizer and the full set of estimators, and
// trains them all from the same corpus so their probabilities are
// comparable.
type CorpusManager struct {
	models       map[string]LanguageModel
	tokenizer    SentenceTokenizer
	maxSentences int
	logger       *zap.Logger

	mu            sync.RWMutex
	sentenceCount int
	wordCount     int
	trainedAt     time.Time
}

// CorpusStats summarizes the last training pass.
type CorpusStats struct {
	Sentences int       `json:"sentences"`
	Words     int       `json:"words"`
	Models    []string  `json:"models"`
	TrainedAt time.Time `json:"trained_at"`
}

// NewCorpusManager creates a corpus manager over the standard model set.
// maxSentences caps how much of the corpus is used (0 means unlimited).
func NewCorpusManager(tokenizer SentenceTokenizer, maxSentences int, logger *zap.Logger) *CorpusManager {
	if tokenizer == nil {
		tokenizer = NewLineTokenizer(true)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CorpusManager{
		models: map[string]LanguageModel{
			ModelUnigram:            NewUnigram(),
			ModelBigram:             NewBigram(),
			ModelInterpolatedBigram: NewInterpolatedBigram(),
			ModelTrigram:            NewTrigram(),
		},
		tokenizer:    tokenizer,
		maxSentences: maxSentences,
		logger:       logger,
	}
}

// Register adds or replaces a model under the given name. Useful for
// swapping in a bloom-backed trigram model for large corpora.
func (cm *CorpusManager) Register(name string, model LanguageModel) {
	cm.mu.Lock()
	cm.models[name] = model
	cm.mu.Unlock()
}

// TrainFromFile reads and tokenizes a corpus file and trains every model.
func (cm *CorpusManager) TrainFromFile(ctx context.Context, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading corpus %s: %w", path, err)
	}

	sentences, err := cm.tokenizer.Tokenize(ctx, source)
	if err != nil {
		return fmt.Errorf("tokenizing corpus %s: %w", path, err)
	}
	if cm.maxSentences > 0 && len(sentences) > cm.maxSentences {
		sentences = sentences[:cm.maxSentences]
	}

	cm.logger.Info("Corpus loaded",
		zap.String("path", path),
		zap.String("tokenizer", cm.tokenizer.Name()),
		zap.Int("sentences", len(sentences)),
	)

	cm.TrainSentences(sentences)
	return nil
}

// TrainSentences trains every model on the given sentences. Each model
// rebuilds its state from scratch; training twice with the same corpus
// yields identical probabilities.
func (cm *CorpusManager) TrainSentences(sentences [][]string) {
	words := 0
	for _, sentence := range sentences {
		words += len(sentence)
	}

	cm.mu.RLock()
	models := make(map[string]LanguageModel, len(cm.models))
	for name, model := range cm.models {
		models[name] = model
	}
	cm.mu.RUnlock()

	for name, model := range models {
		start := time.Now()
		model.Train(sentences)
		cm.logger.Info("Model trained",
			zap.String("model", name),
			zap.Int("sentences", len(sentences)),
			zap.Int("words", words),
			zap.Duration("duration", time.Since(start)),
		)
	}

	cm.mu.Lock()
	cm.sentenceCount = len(sentences)
	cm.wordCount = words
	cm.trainedAt = time.Now()
	cm.mu.Unlock()
}

// Model returns the model registered under name.
func (cm *CorpusManager) Model(name string) (LanguageModel, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	model, ok := cm.models[name]
	return model, ok
}

// ModelNames returns the registered model names in sorted order.
func (cm *CorpusManager) ModelNames() []string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	names := make([]string, 0, len(cm.models))
	for name := range cm.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stats returns a summary of the last training pass.
func (cm *CorpusManager) Stats() CorpusStats {
	names := cm.ModelNames()

	cm.mu.RLock()
	defer cm.mu.RUnlock()

	return CorpusStats{
		Sentences: cm.sentenceCount,
		Words:     cm.wordCount,
		Models:    names,
		TrainedAt: cm.trainedAt,
	}
}
