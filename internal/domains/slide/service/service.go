package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"slidedeck-backend/internal/domains/slide/model"
	"slidedeck-backend/internal/domains/slide/repository"
	imageService "slidedeck-backend/internal/domains/slideimage/service"
)

type slideService struct {
	repo   repository.Repository
	images imageService.Service
}

func NewSlideService(repo repository.Repository, images imageService.Service) Service {
	return &slideService{
		repo:   repo,
		images: images,
	}
}

func (s *slideService) CreateSlide(ctx context.Context, req *model.CreateSlideRequest) (*model.Slide, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	slide := &model.Slide{
		PresentationID: req.PresentationID,
		Title:          strings.TrimSpace(req.Title),
		Position:       req.Position,
	}

	return s.repo.Create(ctx, slide)
}

func (s *slideService) GetSlide(ctx context.Context, id uuid.UUID) (*model.SlideWithImages, error) {
	slide, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slide == nil {
		return nil, model.NewSlideNotFound(id.String())
	}

	images, err := s.images.ListImages(ctx, id)
	if err != nil {
		return nil, model.NewStoreError("load images for", err)
	}

	return &model.SlideWithImages{
		Slide:  slide,
		Images: images,
	}, nil
}

func (s *slideService) UpdateSlide(ctx context.Context, id uuid.UUID, req *model.UpdateSlideRequest) (*model.Slide, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, model.NewSlideNotFound(id.String())
	}

	return updated, nil
}

func (s *slideService) DeleteSlide(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
