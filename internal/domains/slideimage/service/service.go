package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	slideRepo "slidedeck-backend/internal/domains/slide/repository"
	"slidedeck-backend/internal/domains/slideimage/model"
	"slidedeck-backend/internal/domains/slideimage/repository"
	"slidedeck-backend/internal/infrastructure/generation"
	"slidedeck-backend/pkg/cache"
	"slidedeck-backend/pkg/logger"
)

const imageListCacheTTL = 5 * time.Minute

type imageService struct {
	repo      repository.Repository
	slides    slideRepo.Repository
	generator generation.Generator
	cache     cache.Cache
}

func NewImageService(
	repo repository.Repository,
	slides slideRepo.Repository,
	generator generation.Generator,
	imageCache cache.Cache,
) Service {
	return &imageService{
		repo:      repo,
		slides:    slides,
		generator: generator,
		cache:     imageCache,
	}
}

func ImageListCacheKey(slideID uuid.UUID) string {
	return fmt.Sprintf("slide:%s:images", slideID)
}

// invalidateCache drops the cached list for a slide. Cache trouble is never
// worth failing a mutation over, so errors are only logged.
func (s *imageService) invalidateCache(ctx context.Context, slideID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, ImageListCacheKey(slideID)); err != nil {
		logger.Warn("failed to invalidate image list cache", map[string]interface{}{
			"slide_id": slideID.String(),
			"error":    err.Error(),
		})
	}
}

// ListImages returns the slide's images in display order. An unknown slide
// yields an empty list.
func (s *imageService) ListImages(ctx context.Context, slideID uuid.UUID) ([]*model.SlideImageResponse, error) {
	key := ImageListCacheKey(slideID)

	if s.cache != nil {
		var cached []*model.SlideImageResponse
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	images, err := s.repo.ListBySlide(ctx, slideID)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.SlideImageResponse, len(images))
	for i, img := range images {
		responses[i] = img.ToResponse()
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, responses, imageListCacheTTL)
	}

	return responses, nil
}

// AddImage persists a manually supplied image. Position defaults to the end
// of the slide's list when omitted.
func (s *imageService) AddImage(ctx context.Context, slideID uuid.UUID, req *model.AddImageRequest) (*model.SlideImageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	slide, err := s.slides.GetByID(ctx, slideID)
	if err != nil {
		return nil, model.NewStoreError("create", err)
	}
	if slide == nil {
		return nil, model.NewSlideNotFound(slideID.String())
	}

	imageType := model.ImageType(req.ImageType)
	if req.ImageType == "" {
		imageType = model.ImageTypeUploaded
	}

	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = model.DefaultAspectRatio
	}

	img := &model.SlideImage{
		SlideID:       slideID,
		ImageURL:      req.ImageURL,
		ImagePrompt:   req.ImagePrompt,
		ImageType:     imageType,
		AspectRatio:   aspectRatio,
		StyleMetadata: req.StyleMetadata,
	}

	created, err := s.repo.Insert(ctx, img, req.Position)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx, slideID)
	return created.ToResponse(), nil
}

// UpdateImage applies a partial patch to an existing image.
func (s *imageService) UpdateImage(ctx context.Context, id uuid.UUID, req *model.UpdateImageRequest) (*model.SlideImageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	updated, err := s.repo.Update(ctx, id, req.ToUpdateFields())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.NewImageNotFound(id.String())
	}

	s.invalidateCache(ctx, updated.SlideID)
	return updated.ToResponse(), nil
}

// DeleteImage removes an image. A row that is already gone counts as
// success. Deleting the primary image deliberately leaves the slide with no
// primary; a replacement must be chosen explicitly.
func (s *imageService) DeleteImage(ctx context.Context, id uuid.UUID) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if img == nil {
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx, img.SlideID)
	return nil
}

// Reorder applies a full target ordering to the slide's images. The
// submitted id set must match the current set exactly; otherwise nothing is
// mutated. Resubmitting the current ordering is a no-op by construction.
func (s *imageService) Reorder(ctx context.Context, slideID uuid.UUID, req *model.ReorderImagesRequest) error {
	if err := req.Validate(); err != nil {
		return model.NewValidationError(err.Error())
	}

	current, err := s.repo.ListBySlide(ctx, slideID)
	if err != nil {
		return err
	}

	if err := validateIDSet(current, req.ImageIDs); err != nil {
		return err
	}

	if err := s.repo.Reorder(ctx, slideID, req.ImageIDs); err != nil {
		return err
	}

	s.invalidateCache(ctx, slideID)
	return nil
}

// validateIDSet checks that submitted ids are exactly the slide's current
// image ids, each appearing once.
func validateIDSet(current []*model.SlideImage, submitted []uuid.UUID) error {
	if len(submitted) != len(current) {
		return model.NewValidationError("incomplete or mismatched id set")
	}

	existing := make(map[uuid.UUID]bool, len(current))
	for _, img := range current {
		existing[img.ID] = false
	}

	for _, id := range submitted {
		seen, ok := existing[id]
		if !ok || seen {
			return model.NewValidationError("incomplete or mismatched id set")
		}
		existing[id] = true
	}

	return nil
}

// SetPrimary makes imageID the slide's single primary image.
func (s *imageService) SetPrimary(ctx context.Context, slideID, imageID uuid.UUID) error {
	found, err := s.repo.SetPrimary(ctx, slideID, imageID)
	if err != nil {
		return err
	}
	if !found {
		return model.NewImageNotFound(imageID.String())
	}

	s.invalidateCache(ctx, slideID)
	return nil
}
