package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/vocabbot/internal/bot"
	"github.com/example/vocabbot/internal/database"
	"github.com/example/vocabbot/internal/excel"
	"github.com/example/vocabbot/internal/memory"
	"github.com/example/vocabbot/internal/review"
	"github.com/example/vocabbot/internal/scheduler"
)

func main() {
	importPath := flag.String("import", "", "import words from an xlsx/csv file and exit")
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	words := database.NewWordRepository()
	activity := database.NewActivityRepository()

	if *importPath != "" {
		config := excel.DefaultImportConfig()
		config.FilePath = *importPath
		result, err := excel.NewImporter(words).ImportWords(config)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		log.Printf("Import finished: %d processed, %d created, %d skipped",
			result.TotalProcessed, result.Created, result.Skipped)
		for _, msg := range result.Errors {
			log.Printf("Import warning: %s", msg)
		}
		return
	}

	// Стратегия выбирается один раз на все развертывание
	strategy := memory.Strategy(os.Getenv("REVIEW_STRATEGY"))
	if strategy == "" {
		strategy = memory.StrategyFixed
	}
	if !strategy.IsValid() {
		log.Fatalf("Unknown REVIEW_STRATEGY %q (want %q or %q)", strategy, memory.StrategyFixed, memory.StrategyAdaptive)
	}

	tracker := review.New(strategy, words, activity)

	b, err := bot.New(os.Getenv("TELEGRAM_BOT_TOKEN"), tracker, words, activity)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(strategy, words, b)
	if os.Getenv("ENABLE_SCHEDULER") != "false" {
		sched.Start()
		defer sched.Stop()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})

	// Горутина для обработки сигналов
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()

		// Даем время на graceful shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := b.Stop(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		close(done)
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	go func() {
		if err := b.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Bot error: %v", err)
		}
	}()

	<-done
	log.Println("Bot stopped successfully")
}
