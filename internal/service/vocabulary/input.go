package vocabulary

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

const maxWordLength = 256

// CreateInput holds parameters for creating a vocabulary item.
type CreateInput struct {
	German  string
	Spanish string
}

// normalize trims surrounding whitespace from both sides of the pair.
func (i *CreateInput) normalize() {
	i.German = strings.TrimSpace(i.German)
	i.Spanish = strings.TrimSpace(i.Spanish)
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.German == "" {
		errs = append(errs, domain.FieldError{Field: "german", Message: "required"})
	} else if len(i.German) > maxWordLength {
		errs = append(errs, domain.FieldError{Field: "german", Message: "too long"})
	}

	if i.Spanish == "" {
		errs = append(errs, domain.FieldError{Field: "spanish", Message: "required"})
	} else if len(i.Spanish) > maxWordLength {
		errs = append(errs, domain.FieldError{Field: "spanish", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds parameters for editing the word pair of an item.
type UpdateInput struct {
	ItemID  uuid.UUID
	German  string
	Spanish string
}

func (i *UpdateInput) normalize() {
	i.German = strings.TrimSpace(i.German)
	i.Spanish = strings.TrimSpace(i.Spanish)
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}

	if i.German == "" {
		errs = append(errs, domain.FieldError{Field: "german", Message: "required"})
	} else if len(i.German) > maxWordLength {
		errs = append(errs, domain.FieldError{Field: "german", Message: "too long"})
	}

	if i.Spanish == "" {
		errs = append(errs, domain.FieldError{Field: "spanish", Message: "required"})
	} else if len(i.Spanish) > maxWordLength {
		errs = append(errs, domain.FieldError{Field: "spanish", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds parameters for the filtered list operation.
type ListInput struct {
	Status *int
	Search string
	Limit  int
	Offset int
}

// Validate validates the list input.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != nil && (*i.Status < domain.StatusMin || *i.Status > domain.StatusArchived) {
		errs = append(errs, domain.FieldError{Field: "status", Message: "out of range"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
