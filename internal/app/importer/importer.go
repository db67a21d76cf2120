// Package importer bulk-loads vocabulary pairs from a CSV file into a
// user's collection. It is used by the import command, not by the server.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

type userRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type vocabularyRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.VocabularyItem, error)
	CreateBatch(ctx context.Context, items []domain.VocabularyItem) (int, error)
}

// Options control a single import run.
type Options struct {
	// UserEmail identifies the collection owner.
	UserEmail string
	// DryRun parses and validates without writing to the database.
	DryRun bool
	// BatchSize bounds how many rows go into one insert batch. Defaults to 500.
	BatchSize int
}

// Result summarizes an import run.
type Result struct {
	Imported int
	Skipped  int
	Errors   []RowError
}

// RowError records a rejected CSV row.
type RowError struct {
	Line   int
	Reason string
}

// Importer reads german;spanish pairs from CSV and inserts them at the
// lowest mastery status. Pairs already present in the collection (same
// german side, case-insensitive) are skipped.
type Importer struct {
	log   *slog.Logger
	users userRepo
	vocab vocabularyRepo
}

// New creates an Importer.
func New(logger *slog.Logger, users userRepo, vocab vocabularyRepo) *Importer {
	return &Importer{
		log:   logger.With("component", "importer"),
		users: users,
		vocab: vocab,
	}
}

const maxWordLength = 256

// Run executes the import. The reader must contain CSV with two columns,
// german and spanish. A header row with the literal column names is
// detected and skipped.
func (im *Importer) Run(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	if opts.UserEmail == "" {
		return nil, fmt.Errorf("user email is required")
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}

	user, err := im.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(opts.UserEmail)))
	if err != nil {
		return nil, fmt.Errorf("look up user %q: %w", opts.UserEmail, err)
	}

	existing, err := im.vocab.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list existing items: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, item := range existing {
		seen[strings.ToLower(item.German)] = true
	}

	result := &Result{}
	var pending []domain.VocabularyItem
	now := time.Now()

	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line+1, err)
		}
		line++

		if line == 1 && isHeader(record) {
			continue
		}

		german, spanish, reason := parseRow(record)
		if reason != "" {
			result.Errors = append(result.Errors, RowError{Line: line, Reason: reason})
			continue
		}

		key := strings.ToLower(german)
		if seen[key] {
			result.Skipped++
			continue
		}
		seen[key] = true

		pending = append(pending, domain.VocabularyItem{
			ID:        uuid.New(),
			UserID:    user.ID,
			German:    german,
			Spanish:   spanish,
			Status:    domain.StatusMin,
			CreatedAt: now,
		})

		if len(pending) >= opts.BatchSize {
			if err := im.flush(ctx, pending, opts.DryRun, result); err != nil {
				return result, err
			}
			pending = pending[:0]
		}
	}

	if err := im.flush(ctx, pending, opts.DryRun, result); err != nil {
		return result, err
	}

	im.log.Info("import finished",
		slog.String("user", user.Email),
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
		slog.Int("errors", len(result.Errors)),
		slog.Bool("dry_run", opts.DryRun),
	)

	return result, nil
}

func (im *Importer) flush(ctx context.Context, items []domain.VocabularyItem, dryRun bool, result *Result) error {
	if len(items) == 0 {
		return nil
	}
	if dryRun {
		result.Imported += len(items)
		return nil
	}

	inserted, err := im.vocab.CreateBatch(ctx, items)
	result.Imported += inserted
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

func parseRow(record []string) (german, spanish, reason string) {
	if len(record) < 2 {
		return "", "", "expected two columns"
	}
	german = strings.TrimSpace(record[0])
	spanish = strings.TrimSpace(record[1])

	switch {
	case german == "":
		return "", "", "empty german column"
	case spanish == "":
		return "", "", "empty spanish column"
	case len(german) > maxWordLength:
		return "", "", "german column too long"
	case len(spanish) > maxWordLength:
		return "", "", "spanish column too long"
	}
	return german, spanish, ""
}

func isHeader(record []string) bool {
	return len(record) >= 2 &&
		strings.EqualFold(strings.TrimSpace(record[0]), "german") &&
		strings.EqualFold(strings.TrimSpace(record[1]), "spanish")
}
