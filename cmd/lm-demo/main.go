package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strings"

	"lm-go/internal/eval"
	"lm-go/internal/service"

	"go.uber.org/zap"
)

// A small walkthrough: train every estimator on a toy corpus, compare their
// probabilities on seen and unseen sentences, and sample a few sentences.
func main() {
	var seed = flag.Int64("seed", 1, "Random seed for sampling")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	corpus := [][]string{
		{"the", "cat", "sat", "on", "the", "mat"},
		{"the", "dog", "sat", "on", "the", "rug"},
		{"the", "cat", "chased", "the", "dog"},
		{"a", "dog", "barked"},
		{"the", "dog", "chased", "a", "cat"},
	}
	heldOut := [][]string{
		{"the", "cat", "barked"},
		{"a", "mat", "sat"},
	}

	cm := service.NewCorpusManager(nil, 0, logger)
	cm.TrainSentences(corpus)

	seen := []string{"the", "cat", "sat"}
	unseen := []string{"the", "zebra", "sat"}

	fmt.Println("=== Sentence probabilities ===")
	for _, name := range cm.ModelNames() {
		model, _ := cm.Model(name)
		pSeen, err := model.SentenceProbability(seen)
		if err != nil {
			logger.Fatal("Query failed", zap.Error(err))
		}
		pUnseen, err := model.SentenceProbability(unseen)
		if err != nil {
			logger.Fatal("Query failed", zap.Error(err))
		}
		fmt.Printf("%-20s P(%s) = %.3e   P(%s) = %.3e\n",
			name, strings.Join(seen, " "), pSeen, strings.Join(unseen, " "), pUnseen)
	}

	fmt.Println("\n=== Model diagnostics ===")
	for _, name := range cm.ModelNames() {
		model, _ := cm.Model(name)
		sum, err := model.CheckModel()
		if err != nil {
			logger.Fatal("CheckModel failed", zap.Error(err))
		}
		fmt.Printf("%-20s checkModel = %.6f\n", name, sum)
	}

	fmt.Println("\n=== Held-out perplexity ===")
	for _, name := range cm.ModelNames() {
		model, _ := cm.Model(name)
		report, err := eval.Evaluate(model, heldOut)
		if err != nil {
			logger.Fatal("Evaluation failed", zap.Error(err))
		}
		fmt.Printf("%-20s cross-entropy = %.3f bits/word, perplexity = %.1f\n",
			name, report.CrossEntropy, report.Perplexity)
	}

	fmt.Println("\n=== Sampled sentences ===")
	rng := rand.New(rand.NewSource(*seed))
	for _, name := range cm.ModelNames() {
		model, _ := cm.Model(name)
		generator, ok := model.(service.SentenceGenerator)
		if !ok {
			continue
		}
		for i := 0; i < 3; i++ {
			sentence, err := generator.GenerateSentence(rng, 12)
			if err != nil {
				logger.Fatal("Generation failed", zap.Error(err))
			}
			fmt.Printf("%-20s %q\n", name, strings.Join(sentence, " "))
		}
	}
}
