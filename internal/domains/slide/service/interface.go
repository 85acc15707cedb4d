package service

import (
	"context"

	"github.com/google/uuid"

	"slidedeck-backend/internal/domains/slide/model"
)

type Service interface {
	CreateSlide(ctx context.Context, req *model.CreateSlideRequest) (*model.Slide, error)

	// GetSlide returns the slide together with its ordered image list.
	GetSlide(ctx context.Context, id uuid.UUID) (*model.SlideWithImages, error)

	UpdateSlide(ctx context.Context, id uuid.UUID, req *model.UpdateSlideRequest) (*model.Slide, error)
	DeleteSlide(ctx context.Context, id uuid.UUID) error
}
