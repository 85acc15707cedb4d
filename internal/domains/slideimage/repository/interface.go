package repository

import (
	"context"

	"github.com/google/uuid"

	"slidedeck-backend/internal/domains/slideimage/model"
)

// Repository is typed CRUD over slide_images rows, scoped by slide, plus the
// two multi-row mutations that must be atomic (reorder, set-primary).
type Repository interface {
	// ListBySlide returns the slide's images ordered by position ascending.
	// An unknown slide yields an empty slice, not an error.
	ListBySlide(ctx context.Context, slideID uuid.UUID) ([]*model.SlideImage, error)

	// ListSlideIDs returns the distinct slide ids that have at least one
	// image row. Used by the integrity checker.
	ListSlideIDs(ctx context.Context) ([]uuid.UUID, error)

	// GetByID returns (nil, nil) when the row does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.SlideImage, error)

	// Insert persists a new record. When position is nil it defaults to
	// max(existing positions)+1, or 1 for the slide's first image.
	Insert(ctx context.Context, img *model.SlideImage, position *int) (*model.SlideImage, error)

	// Update applies only the supplied fields and returns the updated row,
	// or (nil, nil) when the row does not exist.
	Update(ctx context.Context, id uuid.UUID, fields *model.UpdateFields) (*model.SlideImage, error)

	// Delete removes the record. A missing row is treated as success: the
	// intent "ensure gone" is satisfied either way.
	Delete(ctx context.Context, id uuid.UUID) error

	// Reorder assigns position = index+1 to each id, all-or-nothing. It
	// fails if any id no longer belongs to the slide.
	Reorder(ctx context.Context, slideID uuid.UUID, orderedIDs []uuid.UUID) error

	// SetPrimary demotes the slide's current primary and promotes imageID
	// in one transaction, so concurrent calls can never commit zero or two
	// primaries. Returns false when imageID does not belong to the slide.
	SetPrimary(ctx context.Context, slideID, imageID uuid.UUID) (bool, error)
}
