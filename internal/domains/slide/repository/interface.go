package repository

import (
	"context"

	"github.com/google/uuid"

	"slidedeck-backend/internal/domains/slide/model"
)

type Repository interface {
	Create(ctx context.Context, slide *model.Slide) (*model.Slide, error)

	// GetByID returns (nil, nil) when the slide does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Slide, error)

	// Update returns (nil, nil) when the slide does not exist.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateSlideRequest) (*model.Slide, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// ListLegacyCandidates returns slides that still carry a legacy
	// image_url and own zero slide_images rows — exactly the migration
	// input set, which is what makes the migration idempotent.
	ListLegacyCandidates(ctx context.Context) ([]*model.Slide, error)
}
