package service

import (
	"context"

	"github.com/google/uuid"

	"slidedeck-backend/internal/domains/slideimage/model"
)

// Service owns the image collection of a slide: CRUD, the per-slide total
// order, the single-primary invariant, and batch generation.
type Service interface {
	ListImages(ctx context.Context, slideID uuid.UUID) ([]*model.SlideImageResponse, error)
	AddImage(ctx context.Context, slideID uuid.UUID, req *model.AddImageRequest) (*model.SlideImageResponse, error)
	UpdateImage(ctx context.Context, id uuid.UUID, req *model.UpdateImageRequest) (*model.SlideImageResponse, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error

	// Reorder takes the full desired ordering of the slide's image ids.
	Reorder(ctx context.Context, slideID uuid.UUID, req *model.ReorderImagesRequest) error

	// SetPrimary promotes imageID and demotes the previous primary.
	SetPrimary(ctx context.Context, slideID, imageID uuid.UUID) error

	// GenerateImages runs a batch of prompts through the generation
	// collaborator. Items fail independently; the response itemizes both
	// outcomes and carries the refreshed image list.
	GenerateImages(ctx context.Context, slideID uuid.UUID, req *model.GenerateImagesRequest) (*model.GenerateImagesResponse, error)
}
