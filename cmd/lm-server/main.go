package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"

	"lm-go/internal/config"
	"lm-go/internal/handler"
	"lm-go/internal/service"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var configPath = flag.String("config", "app.yaml", "Path to configuration file")
	var corpusPath = flag.String("corpus", "", "Corpus file (overrides config)")
	var addr = flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		// The default config file is optional; flags cover the essentials.
		if *configPath == "app.yaml" && errors.Is(err, fs.ErrNotExist) {
			cfg = config.DefaultConfig()
		} else {
			log.Fatal("Failed to load configuration: ", err)
		}
	}
	if *corpusPath != "" {
		cfg.Corpus.Path = *corpusPath
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	cfgZap := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	cfgZap.Level.SetLevel(level)
	logger, err := cfgZap.Build()
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	if cfg.Corpus.Path == "" {
		logger.Fatal("No corpus configured; set corpus.path or pass -corpus")
	}

	tokenizer := service.NewLineTokenizer(cfg.Corpus.Lowercase)
	cm := service.NewCorpusManager(tokenizer, cfg.Corpus.MaxSentences, logger)
	if cfg.Model.UseBloom {
		cm.Register(service.ModelTrigram, service.NewTrigramWithBloom(
			cfg.Model.BloomExpectedItems, cfg.Model.BloomFalsePositiveRate))
		logger.Info("Trigram table using bloom singleton suppression",
			zap.Uint("expected_items", cfg.Model.BloomExpectedItems),
			zap.Float64("false_positive_rate", cfg.Model.BloomFalsePositiveRate),
		)
	}

	if err := cm.TrainFromFile(context.Background(), cfg.Corpus.Path); err != nil {
		logger.Fatal("Training failed", zap.Error(err))
	}

	router := handler.SetupRouter(cm, cfg.Model.MaxGeneratedWords, logger)
	logger.Info("Serving language model queries", zap.String("addr", cfg.Server.Addr))
	if err := router.Run(cfg.Server.Addr); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
