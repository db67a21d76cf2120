// Package vocabulary implements CRUD operations on the user's word
// collection.
package vocabulary

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

// repo defines the repository interface needed by the vocabulary service.
type repo interface {
	Create(ctx context.Context, item domain.VocabularyItem) (domain.VocabularyItem, error)
	GetByID(ctx context.Context, userID, itemID uuid.UUID) (domain.VocabularyItem, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.VocabularyFilter) ([]domain.VocabularyItem, error)
	UpdateText(ctx context.Context, userID, itemID uuid.UUID, german, spanish string) (domain.VocabularyItem, error)
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}

// Service implements vocabulary operations.
type Service struct {
	log   *slog.Logger
	items repo
}

// NewService creates a new vocabulary service instance.
func NewService(logger *slog.Logger, items repo) *Service {
	return &Service{
		log:   logger.With("service", "vocabulary"),
		items: items,
	}
}
