package importer

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

type userRepoMock struct {
	user *domain.User
	err  error
}

func (m *userRepoMock) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return m.user, m.err
}

type vocabularyRepoMock struct {
	existing []domain.VocabularyItem
	batches  [][]domain.VocabularyItem
}

func (m *vocabularyRepoMock) ListByUser(_ context.Context, _ uuid.UUID) ([]domain.VocabularyItem, error) {
	return m.existing, nil
}

func (m *vocabularyRepoMock) CreateBatch(_ context.Context, items []domain.VocabularyItem) (int, error) {
	copied := make([]domain.VocabularyItem, len(items))
	copy(copied, items)
	m.batches = append(m.batches, copied)
	return len(items), nil
}

func (m *vocabularyRepoMock) inserted() []domain.VocabularyItem {
	var all []domain.VocabularyItem
	for _, b := range m.batches {
		all = append(all, b...)
	}
	return all
}

func newTestImporter(users *userRepoMock, vocab *vocabularyRepoMock) *Importer {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), users, vocab)
}

func testUser() *domain.User {
	return &domain.User{ID: uuid.New(), Email: "anna@example.com"}
}

func TestRun_ImportsPairs(t *testing.T) {
	users := &userRepoMock{user: testUser()}
	vocab := &vocabularyRepoMock{}
	im := newTestImporter(users, vocab)

	csv := "der Hund;el perro\ndie Katze;el gato\n"
	result, err := im.Run(context.Background(), strings.NewReader(csv), Options{
		UserEmail: "anna@example.com",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("imported = %d, want 2", result.Imported)
	}
	items := vocab.inserted()
	if len(items) != 2 {
		t.Fatalf("expected 2 inserted items, got %d", len(items))
	}
	if items[0].German != "der Hund" || items[0].Spanish != "el perro" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[0].Status != domain.StatusMin {
		t.Errorf("new items must start at status %d, got %d", domain.StatusMin, items[0].Status)
	}
}

func TestRun_SkipsHeaderRow(t *testing.T) {
	users := &userRepoMock{user: testUser()}
	vocab := &vocabularyRepoMock{}
	im := newTestImporter(users, vocab)

	csv := "german;spanish\nder Hund;el perro\n"
	result, err := im.Run(context.Background(), strings.NewReader(csv), Options{
		UserEmail: "anna@example.com",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Imported != 1 {
		t.Errorf("imported = %d, want 1 (header must not be imported)", result.Imported)
	}
}

func TestRun_SkipsExistingAndDuplicates(t *testing.T) {
	users := &userRepoMock{user: testUser()}
	vocab := &vocabularyRepoMock{
		existing: []domain.VocabularyItem{{German: "der Hund", Spanish: "el perro"}},
	}
	im := newTestImporter(users, vocab)

	csv := "der Hund;el perro\nDER HUND;el perro\ndie Katze;el gato\ndie Katze;el gato\n"
	result, err := im.Run(context.Background(), strings.NewReader(csv), Options{
		UserEmail: "anna@example.com",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Imported != 1 {
		t.Errorf("imported = %d, want 1", result.Imported)
	}
	if result.Skipped != 3 {
		t.Errorf("skipped = %d, want 3", result.Skipped)
	}
}

func TestRun_CollectsRowErrors(t *testing.T) {
	users := &userRepoMock{user: testUser()}
	vocab := &vocabularyRepoMock{}
	im := newTestImporter(users, vocab)

	csv := "der Hund;el perro\nonly-one-column\n;el gato\n"
	result, err := im.Run(context.Background(), strings.NewReader(csv), Options{
		UserEmail: "anna@example.com",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Imported != 1 {
		t.Errorf("imported = %d, want 1", result.Imported)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 row errors, got %d: %+v", len(result.Errors), result.Errors)
	}
	if result.Errors[0].Line != 2 {
		t.Errorf("first error line = %d, want 2", result.Errors[0].Line)
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	users := &userRepoMock{user: testUser()}
	vocab := &vocabularyRepoMock{}
	im := newTestImporter(users, vocab)

	csv := "der Hund;el perro\ndie Katze;el gato\n"
	result, err := im.Run(context.Background(), strings.NewReader(csv), Options{
		UserEmail: "anna@example.com",
		DryRun:    true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("dry run should still count importable rows, got %d", result.Imported)
	}
	if len(vocab.batches) != 0 {
		t.Errorf("dry run must not insert, got %d batches", len(vocab.batches))
	}
}

func TestRun_BatchSizeSplitsInserts(t *testing.T) {
	users := &userRepoMock{user: testUser()}
	vocab := &vocabularyRepoMock{}
	im := newTestImporter(users, vocab)

	var sb strings.Builder
	for i := 0; i < 5; i++ {
		sb.WriteString(string(rune('a'+i)) + " wort;palabra\n")
	}
	result, err := im.Run(context.Background(), strings.NewReader(sb.String()), Options{
		UserEmail: "anna@example.com",
		BatchSize: 2,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Imported != 5 {
		t.Errorf("imported = %d, want 5", result.Imported)
	}
	if len(vocab.batches) != 3 {
		t.Errorf("expected 3 batches (2+2+1), got %d", len(vocab.batches))
	}
}

func TestRun_UnknownUser(t *testing.T) {
	users := &userRepoMock{err: domain.ErrNotFound}
	im := newTestImporter(users, &vocabularyRepoMock{})

	_, err := im.Run(context.Background(), strings.NewReader("der Hund;el perro\n"), Options{
		UserEmail: "ghost@example.com",
	})
	if err == nil {
		t.Fatal("expected error for unknown user")
	}
}
