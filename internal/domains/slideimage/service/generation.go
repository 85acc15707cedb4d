package service

import (
	"context"

	"github.com/google/uuid"

	"slidedeck-backend/internal/domains/slideimage/model"
	"slidedeck-backend/internal/infrastructure/generation"
	"slidedeck-backend/pkg/logger"
)

// GenerateImages turns a batch of prompts into persisted slide images.
//
// Items are processed sequentially and fail independently: a bad prompt or
// an upstream timeout lands that item in Failed and the loop moves on.
// Caller-supplied positions are persisted literally, duplicates included;
// Reorder exists to normalize afterwards if the caller wants to.
func (s *imageService) GenerateImages(ctx context.Context, slideID uuid.UUID, req *model.GenerateImagesRequest) (*model.GenerateImagesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	slide, err := s.slides.GetByID(ctx, slideID)
	if err != nil {
		return nil, model.NewStoreError("generate images for", err)
	}
	if slide == nil {
		return nil, model.NewSlideNotFound(slideID.String())
	}

	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = model.DefaultAspectRatio
	}

	result := &model.GenerateImagesResponse{
		Succeeded: []*model.SlideImageResponse{},
		Failed:    []model.FailedPrompt{},
	}

	for _, item := range req.Prompts {
		if err := item.Validate(); err != nil {
			result.Failed = append(result.Failed, model.FailedPrompt{
				Prompt:   item.Prompt,
				Position: item.Position,
				Error:    err.Error(),
			})
			continue
		}

		created, err := s.generateOne(ctx, slideID, item, aspectRatio, req.StyleMetadata)
		if err != nil {
			logger.Warn("image generation item failed", map[string]interface{}{
				"slide_id": slideID.String(),
				"position": item.Position,
				"error":    err.Error(),
			})
			result.Failed = append(result.Failed, model.FailedPrompt{
				Prompt:   item.Prompt,
				Position: item.Position,
				Error:    err.Error(),
			})
			continue
		}

		result.Succeeded = append(result.Succeeded, created.ToResponse())
	}

	if len(result.Succeeded) > 0 {
		s.invalidateCache(ctx, slideID)
	}

	images, err := s.ListImages(ctx, slideID)
	if err != nil {
		return nil, err
	}
	result.Images = images

	return result, nil
}

// generateOne calls the generation collaborator for a single prompt and
// persists the outcome at the requested position.
func (s *imageService) generateOne(
	ctx context.Context,
	slideID uuid.UUID,
	item model.GeneratePromptItem,
	aspectRatio string,
	style map[string]interface{},
) (*model.SlideImage, error) {
	generated, err := s.generator.Generate(ctx, generation.Request{
		SlideID:     slideID.String(),
		Prompt:      item.Prompt,
		AspectRatio: aspectRatio,
		Style:       style,
	})
	if err != nil {
		return nil, model.NewGenerationError(err)
	}

	prompt := item.Prompt
	position := item.Position

	img := &model.SlideImage{
		SlideID:       slideID,
		ImageURL:      &generated.URL,
		ImagePrompt:   &prompt,
		ImageType:     model.ImageTypeGenerated,
		AspectRatio:   aspectRatio,
		StyleMetadata: style,
	}

	return s.repo.Insert(ctx, img, &position)
}
