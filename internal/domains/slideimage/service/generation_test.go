package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidedeck-backend/internal/domains/slideimage/model"
)

func TestGenerateImagesAllSucceed(t *testing.T) {
	svc, images, slides, _ := newTestService(t)
	slideID := slides.addSlide()

	resp, err := svc.GenerateImages(context.Background(), slideID, &model.GenerateImagesRequest{
		Prompts: []model.GeneratePromptItem{
			{Prompt: "a red barn", Position: 1},
			{Prompt: "a blue lake", Position: 2},
		},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Succeeded, 2)
	assert.Empty(t, resp.Failed)
	assert.Len(t, resp.Images, 2)

	stored, err := images.ListBySlide(context.Background(), slideID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for i, img := range stored {
		assert.Equal(t, model.ImageTypeGenerated, img.ImageType)
		assert.Equal(t, i+1, img.Position)
		require.NotNil(t, img.ImageURL)
		assert.NotEmpty(t, *img.ImageURL)
		require.NotNil(t, img.ImagePrompt)
	}
}

func TestGenerateImagesPartialFailure(t *testing.T) {
	svc, images, slides, gen := newTestService(t)
	slideID := slides.addSlide()
	gen.failures["a haunted house"] = errors.New("upstream timed out")

	resp, err := svc.GenerateImages(context.Background(), slideID, &model.GenerateImagesRequest{
		Prompts: []model.GeneratePromptItem{
			{Prompt: "a red barn", Position: 1},
			{Prompt: "a haunted house", Position: 2},
			{Prompt: "a blue lake", Position: 3},
		},
	})
	require.NoError(t, err)

	assert.Len(t, resp.Succeeded, 2)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, "a haunted house", resp.Failed[0].Prompt)
	assert.Equal(t, 2, resp.Failed[0].Position)
	assert.Contains(t, resp.Failed[0].Error, "timed out")

	// Only the successes were persisted; the failed slot stays empty.
	stored, err := images.ListBySlide(context.Background(), slideID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Len(t, resp.Images, 2)
}

func TestGenerateImagesInvalidItemSkipsGenerator(t *testing.T) {
	svc, _, slides, gen := newTestService(t)
	slideID := slides.addSlide()

	resp, err := svc.GenerateImages(context.Background(), slideID, &model.GenerateImagesRequest{
		Prompts: []model.GeneratePromptItem{
			{Prompt: "", Position: 1},
			{Prompt: "a blue lake", Position: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Failed, 1)
	assert.Equal(t, 1, resp.Failed[0].Position)
	assert.Len(t, resp.Succeeded, 1)
	// The empty prompt never reaches the generator.
	assert.Equal(t, 1, gen.calls)
}

func TestGenerateImagesPreservesDuplicatePositions(t *testing.T) {
	svc, images, slides, _ := newTestService(t)
	slideID := slides.addSlide()

	// Caller-supplied positions are stored literally; normalization is the
	// caller's move via reorder.
	_, err := svc.GenerateImages(context.Background(), slideID, &model.GenerateImagesRequest{
		Prompts: []model.GeneratePromptItem{
			{Prompt: "a red barn", Position: 2},
			{Prompt: "a blue lake", Position: 2},
		},
	})
	require.NoError(t, err)

	stored, err := images.ListBySlide(context.Background(), slideID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 2, stored[0].Position)
	assert.Equal(t, 2, stored[1].Position)
}

func TestGenerateImagesUnknownSlide(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.GenerateImages(context.Background(), uuid.New(), &model.GenerateImagesRequest{
		Prompts: []model.GeneratePromptItem{{Prompt: "a red barn", Position: 1}},
	})
	require.Error(t, err)
	assert.True(t, model.IsSlideNotFound(err))
}

func TestGenerateImagesEmptyBatch(t *testing.T) {
	svc, _, slides, _ := newTestService(t)
	slideID := slides.addSlide()

	_, err := svc.GenerateImages(context.Background(), slideID, &model.GenerateImagesRequest{})
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}
