// Command import bulk-loads vocabulary pairs from a CSV file into a user's
// collection. The file contains german;spanish pairs, one per line, with an
// optional header row.
//
// Flags:
//
//	--file    path to the CSV file (required)
//	--user    email of the collection owner (required)
//	--dry-run parse and validate without writing to the database
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/vokabel-backend/internal/adapter/postgres"
	userrepo "github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/user"
	vocabularyrepo "github.com/heartmarshall/vokabel-backend/internal/adapter/postgres/vocabulary"
	"github.com/heartmarshall/vokabel-backend/internal/app"
	"github.com/heartmarshall/vokabel-backend/internal/app/importer"
	"github.com/heartmarshall/vokabel-backend/internal/config"
)

func main() {
	fileFlag := flag.String("file", "", "path to the CSV file")
	userFlag := flag.String("user", "", "email of the collection owner")
	dryRunFlag := flag.Bool("dry-run", false, "parse without writing to DB")
	flag.Parse()

	if *fileFlag == "" || *userFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	f, err := os.Open(*fileFlag)
	if err != nil {
		logger.Error("open file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	im := importer.New(logger, userrepo.New(pool), vocabularyrepo.New(pool))
	result, err := im.Run(ctx, f, importer.Options{
		UserEmail: *userFlag,
		DryRun:    *dryRunFlag,
	})
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, rowErr := range result.Errors {
		logger.Warn("rejected row",
			slog.Int("line", rowErr.Line),
			slog.String("reason", rowErr.Reason),
		)
	}
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
