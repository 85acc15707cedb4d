package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidedeck-backend/internal/domains/slide/model"
	imagemodel "slidedeck-backend/internal/domains/slideimage/model"
)

type fakeRepo struct {
	mu     sync.Mutex
	slides map[uuid.UUID]*model.Slide
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{slides: make(map[uuid.UUID]*model.Slide)}
}

func (f *fakeRepo) Create(_ context.Context, slide *model.Slide) (*model.Slide, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := *slide
	cp.ID = uuid.New()
	f.slides[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Slide, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.slides[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, req *model.UpdateSlideRequest) (*model.Slide, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.slides[id]
	if !ok {
		return nil, nil
	}
	if req.Title != nil {
		s.Title = *req.Title
	}
	if req.Position != nil {
		s.Position = *req.Position
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.slides, id)
	return nil
}

func (f *fakeRepo) ListLegacyCandidates(_ context.Context) ([]*model.Slide, error) {
	return nil, nil
}

// fakeImageService only needs ListImages for the slide service.
type fakeImageService struct {
	lists map[uuid.UUID][]*imagemodel.SlideImageResponse
}

func (f *fakeImageService) ListImages(_ context.Context, slideID uuid.UUID) ([]*imagemodel.SlideImageResponse, error) {
	return f.lists[slideID], nil
}

func (f *fakeImageService) AddImage(_ context.Context, _ uuid.UUID, _ *imagemodel.AddImageRequest) (*imagemodel.SlideImageResponse, error) {
	return nil, nil
}

func (f *fakeImageService) UpdateImage(_ context.Context, _ uuid.UUID, _ *imagemodel.UpdateImageRequest) (*imagemodel.SlideImageResponse, error) {
	return nil, nil
}

func (f *fakeImageService) DeleteImage(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeImageService) Reorder(_ context.Context, _ uuid.UUID, _ *imagemodel.ReorderImagesRequest) error {
	return nil
}

func (f *fakeImageService) SetPrimary(_ context.Context, _, _ uuid.UUID) error { return nil }

func (f *fakeImageService) GenerateImages(_ context.Context, _ uuid.UUID, _ *imagemodel.GenerateImagesRequest) (*imagemodel.GenerateImagesResponse, error) {
	return nil, nil
}

func TestCreateSlideTrimsTitle(t *testing.T) {
	svc := NewSlideService(newFakeRepo(), &fakeImageService{})

	slide, err := svc.CreateSlide(context.Background(), &model.CreateSlideRequest{
		PresentationID: uuid.New(),
		Title:          "  Opening  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Opening", slide.Title)
}

func TestCreateSlideRequiresPresentation(t *testing.T) {
	svc := NewSlideService(newFakeRepo(), &fakeImageService{})

	_, err := svc.CreateSlide(context.Background(), &model.CreateSlideRequest{Title: "Opening"})
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestGetSlideIncludesImages(t *testing.T) {
	repo := newFakeRepo()
	imgSvc := &fakeImageService{lists: make(map[uuid.UUID][]*imagemodel.SlideImageResponse)}
	svc := NewSlideService(repo, imgSvc)

	slide, err := svc.CreateSlide(context.Background(), &model.CreateSlideRequest{
		PresentationID: uuid.New(),
		Title:          "Opening",
	})
	require.NoError(t, err)

	imgSvc.lists[slide.ID] = []*imagemodel.SlideImageResponse{
		{ID: uuid.New(), Position: 1, IsPrimary: true},
		{ID: uuid.New(), Position: 2},
	}

	got, err := svc.GetSlide(context.Background(), slide.ID)
	require.NoError(t, err)
	assert.Equal(t, slide.ID, got.Slide.ID)
	assert.Len(t, got.Images, 2)
}

func TestGetSlideNotFound(t *testing.T) {
	svc := NewSlideService(newFakeRepo(), &fakeImageService{})

	_, err := svc.GetSlide(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, model.IsSlideNotFound(err))
}

func TestUpdateSlideNotFound(t *testing.T) {
	svc := NewSlideService(newFakeRepo(), &fakeImageService{})

	title := "New title"
	_, err := svc.UpdateSlide(context.Background(), uuid.New(), &model.UpdateSlideRequest{Title: &title})
	require.Error(t, err)
	assert.True(t, model.IsSlideNotFound(err))
}
