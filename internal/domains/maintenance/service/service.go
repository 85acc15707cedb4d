package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"slidedeck-backend/internal/domains/maintenance/model"
	slidemodel "slidedeck-backend/internal/domains/slide/model"
	slidesrepo "slidedeck-backend/internal/domains/slide/repository"
	imagemodel "slidedeck-backend/internal/domains/slideimage/model"
	imagerepo "slidedeck-backend/internal/domains/slideimage/repository"
	imageservice "slidedeck-backend/internal/domains/slideimage/service"
	"slidedeck-backend/pkg/cache"
)

type maintenanceService struct {
	slides slidesrepo.Repository
	images imagerepo.Repository
	cache  cache.Cache
}

func NewMaintenanceService(slides slidesrepo.Repository, images imagerepo.Repository, c cache.Cache) Service {
	return &maintenanceService{
		slides: slides,
		images: images,
		cache:  c,
	}
}

func (s *maintenanceService) invalidateCache(ctx context.Context, slideID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, imageservice.ImageListCacheKey(slideID)); err != nil {
		log.Warn().Err(err).Str("slide_id", slideID.String()).Msg("Failed to invalidate image list cache")
	}
}

// =============================================================================
// MIGRATION
// =============================================================================

func (s *maintenanceService) RunMigration(ctx context.Context) (*model.MigrationReport, error) {
	candidates, err := s.slides.ListLegacyCandidates(ctx)
	if err != nil {
		return nil, err
	}

	report := &model.MigrationReport{Errors: []model.SlideOpError{}}
	for _, slide := range candidates {
		if err := s.migrateSlide(ctx, slide); err != nil {
			log.Error().Err(err).Str("slide_id", slide.ID.String()).Msg("Legacy image migration failed for slide")
			report.Errors = append(report.Errors, model.SlideOpError{
				SlideID: slide.ID,
				Error:   err.Error(),
			})
			continue
		}
		report.MigratedCount++
	}

	log.Info().
		Int("migrated", report.MigratedCount).
		Int("failed", len(report.Errors)).
		Msg("Legacy image migration finished")
	return report, nil
}

func (s *maintenanceService) migrateSlide(ctx context.Context, slide *slidemodel.Slide) error {
	// A legacy slide with a prompt was machine generated; one without was
	// uploaded by hand. That is the only provenance signal legacy rows carry.
	imageType := imagemodel.ImageTypeUploaded
	if slide.ImagePrompt != nil && *slide.ImagePrompt != "" {
		imageType = imagemodel.ImageTypeGenerated
	}

	position := 1
	img := &imagemodel.SlideImage{
		SlideID:     slide.ID,
		ImageURL:    slide.ImageURL,
		ImagePrompt: slide.ImagePrompt,
		ImageType:   imageType,
		AspectRatio: imagemodel.DefaultAspectRatio,
		IsPrimary:   true,
	}
	if _, err := s.images.Insert(ctx, img, &position); err != nil {
		return err
	}
	s.invalidateCache(ctx, slide.ID)
	return nil
}

// =============================================================================
// INTEGRITY
// =============================================================================

func (s *maintenanceService) ValidateIntegrity(ctx context.Context) ([]*model.SlideIntegrityReport, error) {
	slideIDs, err := s.images.ListSlideIDs(ctx)
	if err != nil {
		return nil, err
	}

	reports := []*model.SlideIntegrityReport{}
	for _, slideID := range slideIDs {
		imgs, err := s.images.ListBySlide(ctx, slideID)
		if err != nil {
			return nil, err
		}
		if issues := inspect(imgs); len(issues) > 0 {
			reports = append(reports, &model.SlideIntegrityReport{
				SlideID: slideID,
				Issues:  issues,
			})
		}
	}
	return reports, nil
}

func (s *maintenanceService) FixIntegrity(ctx context.Context) (*model.FixReport, error) {
	slideIDs, err := s.images.ListSlideIDs(ctx)
	if err != nil {
		return nil, err
	}

	report := &model.FixReport{Errors: []model.SlideOpError{}}
	for _, slideID := range slideIDs {
		fixed, err := s.fixSlide(ctx, slideID)
		if err != nil {
			log.Error().Err(err).Str("slide_id", slideID.String()).Msg("Integrity repair failed for slide")
			report.Errors = append(report.Errors, model.SlideOpError{
				SlideID: slideID,
				Error:   err.Error(),
			})
			continue
		}
		if fixed {
			report.FixedCount++
		}
	}

	log.Info().
		Int("fixed", report.FixedCount).
		Int("failed", len(report.Errors)).
		Msg("Integrity repair finished")
	return report, nil
}

// fixSlide re-derives the slide's issues from current data and repairs the
// repairable ones. Returns true when anything was changed.
func (s *maintenanceService) fixSlide(ctx context.Context, slideID uuid.UUID) (bool, error) {
	imgs, err := s.images.ListBySlide(ctx, slideID)
	if err != nil {
		return false, err
	}
	if len(imgs) == 0 {
		return false, nil
	}

	fixed := false
	if hasIssue(imgs, model.IssueDuplicatePositions) {
		// Rows arrive in stable (position, created_at) order, so renumbering
		// to 1..N preserves the visible ordering while removing collisions.
		orderedIDs := make([]uuid.UUID, len(imgs))
		for i, img := range imgs {
			orderedIDs[i] = img.ID
		}
		if err := s.images.Reorder(ctx, slideID, orderedIDs); err != nil {
			return fixed, err
		}
		fixed = true
	}

	primaries := primaryIDs(imgs)
	if len(primaries) != 1 {
		// Zero primaries: promote the lowest-position image. Two or more:
		// keep the lowest-position one; SetPrimary demotes the rest in the
		// same transaction.
		found, err := s.images.SetPrimary(ctx, slideID, pickPrimary(imgs))
		if err != nil {
			return fixed, err
		}
		if !found {
			return fixed, fmt.Errorf("image no longer belongs to slide %s", slideID)
		}
		fixed = true
	}

	if fixed {
		s.invalidateCache(ctx, slideID)
	}
	return fixed, nil
}

// =============================================================================
// ISSUE DETECTION
// =============================================================================

// inspect checks one slide's images (in position order) against the
// collection invariants.
func inspect(imgs []*imagemodel.SlideImage) []model.Issue {
	if len(imgs) == 0 {
		return nil
	}

	var issues []model.Issue

	primaries := primaryIDs(imgs)
	switch {
	case len(primaries) == 0:
		issues = append(issues, model.Issue{
			Type:   model.IssueNoPrimary,
			Detail: "slide has images but no primary",
		})
	case len(primaries) > 1:
		issues = append(issues, model.Issue{
			Type:   model.IssueDuplicatePrimary,
			Detail: fmt.Sprintf("%d images marked primary", len(primaries)),
		})
	}

	seen := make(map[int]bool, len(imgs))
	for _, img := range imgs {
		if seen[img.Position] {
			issues = append(issues, model.Issue{
				Type:   model.IssueDuplicatePositions,
				Detail: fmt.Sprintf("position %d used more than once", img.Position),
			})
			break
		}
		seen[img.Position] = true
	}

	for _, img := range imgs {
		if img.ImageURL == nil || *img.ImageURL == "" {
			issues = append(issues, model.Issue{
				Type:   model.IssueMissingURL,
				Detail: fmt.Sprintf("image %s has no URL", img.ID),
			})
		}
	}

	return issues
}

func hasIssue(imgs []*imagemodel.SlideImage, t model.IssueType) bool {
	for _, issue := range inspect(imgs) {
		if issue.Type == t {
			return true
		}
	}
	return false
}

func primaryIDs(imgs []*imagemodel.SlideImage) []uuid.UUID {
	var ids []uuid.UUID
	for _, img := range imgs {
		if img.IsPrimary {
			ids = append(ids, img.ID)
		}
	}
	return ids
}

// pickPrimary chooses the image that should end up primary: the
// lowest-position one that is already primary, or the lowest-position image
// overall when none is.
func pickPrimary(imgs []*imagemodel.SlideImage) uuid.UUID {
	for _, img := range imgs {
		if img.IsPrimary {
			return img.ID
		}
	}
	return imgs[0].ID
}
