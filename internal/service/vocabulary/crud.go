package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
	"github.com/heartmarshall/vokabel-backend/pkg/ctxutil"
)

// Create adds a new word pair to the user's collection. New items start at
// the lowest mastery status and have never been reviewed.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.VocabularyItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.VocabularyItem{}, domain.ErrUnauthorized
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return domain.VocabularyItem{}, err
	}

	now := time.Now()
	item, err := s.items.Create(ctx, domain.VocabularyItem{
		ID:        uuid.New(),
		UserID:    userID,
		German:    input.German,
		Spanish:   input.Spanish,
		Status:    domain.StatusMin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return domain.VocabularyItem{}, fmt.Errorf("vocabulary.Create: %w", err)
	}

	s.log.InfoContext(ctx, "item created",
		slog.String("user_id", userID.String()),
		slog.String("item_id", item.ID.String()),
	)

	return item, nil
}

// Get returns a single item owned by the user.
func (s *Service) Get(ctx context.Context, itemID uuid.UUID) (domain.VocabularyItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.VocabularyItem{}, domain.ErrUnauthorized
	}

	item, err := s.items.GetByID(ctx, userID, itemID)
	if err != nil {
		return domain.VocabularyItem{}, fmt.Errorf("vocabulary.Get: %w", err)
	}

	return item, nil
}

// List returns the user's collection narrowed by the filter, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.VocabularyItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	items, err := s.items.List(ctx, userID, domain.VocabularyFilter{
		Status: input.Status,
		Search: input.Search,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("vocabulary.List: %w", err)
	}

	return items, nil
}

// Update edits the word pair of an item. The mastery status and review
// timestamp are untouched: correcting a typo must not reset progress.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.VocabularyItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.VocabularyItem{}, domain.ErrUnauthorized
	}

	input.normalize()
	if err := input.Validate(); err != nil {
		return domain.VocabularyItem{}, err
	}

	item, err := s.items.UpdateText(ctx, userID, input.ItemID, input.German, input.Spanish)
	if err != nil {
		return domain.VocabularyItem{}, fmt.Errorf("vocabulary.Update: %w", err)
	}

	s.log.InfoContext(ctx, "item updated",
		slog.String("user_id", userID.String()),
		slog.String("item_id", item.ID.String()),
	)

	return item, nil
}

// Delete removes an item from the user's collection.
func (s *Service) Delete(ctx context.Context, itemID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.items.Delete(ctx, userID, itemID); err != nil {
		return fmt.Errorf("vocabulary.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "item deleted",
		slog.String("user_id", userID.String()),
		slog.String("item_id", itemID.String()),
	)

	return nil
}
