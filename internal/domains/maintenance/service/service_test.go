package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidedeck-backend/internal/domains/maintenance/model"
	slidemodel "slidedeck-backend/internal/domains/slide/model"
	imagemodel "slidedeck-backend/internal/domains/slideimage/model"
)

// =====================================================
// IN-MEMORY FAKES
// =====================================================

// fakeImageRepo mirrors the postgres repository's observable behavior and
// additionally lets tests seed raw rows, including states that violate the
// collection invariants.
type fakeImageRepo struct {
	mu     sync.Mutex
	rows   map[uuid.UUID]*imagemodel.SlideImage
	nextTS time.Time
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{
		rows:   make(map[uuid.UUID]*imagemodel.SlideImage),
		nextTS: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// seed inserts a row as-is, bypassing every invariant.
func (f *fakeImageRepo) seed(slideID uuid.UUID, position int, primary bool, url *string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextTS = f.nextTS.Add(time.Second)
	img := &imagemodel.SlideImage{
		ID:          uuid.New(),
		SlideID:     slideID,
		ImageURL:    url,
		ImageType:   imagemodel.ImageTypeGenerated,
		Position:    position,
		AspectRatio: imagemodel.DefaultAspectRatio,
		IsPrimary:   primary,
		CreatedAt:   f.nextTS,
	}
	f.rows[img.ID] = img
	return img.ID
}

func (f *fakeImageRepo) ListBySlide(_ context.Context, slideID uuid.UUID) ([]*imagemodel.SlideImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*imagemodel.SlideImage
	for _, img := range f.rows {
		if img.SlideID == slideID {
			cp := *img
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeImageRepo) ListSlideIDs(_ context.Context) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, img := range f.rows {
		if !seen[img.SlideID] {
			seen[img.SlideID] = true
			ids = append(ids, img.SlideID)
		}
	}
	return ids, nil
}

func (f *fakeImageRepo) GetByID(_ context.Context, id uuid.UUID) (*imagemodel.SlideImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	img, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *img
	return &cp, nil
}

func (f *fakeImageRepo) Insert(_ context.Context, img *imagemodel.SlideImage, position *int) (*imagemodel.SlideImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pos := 0
	if position != nil {
		pos = *position
	} else {
		for _, existing := range f.rows {
			if existing.SlideID == img.SlideID && existing.Position > pos {
				pos = existing.Position
			}
		}
		pos++
	}

	f.nextTS = f.nextTS.Add(time.Second)
	stored := *img
	stored.ID = uuid.New()
	stored.Position = pos
	stored.CreatedAt = f.nextTS
	f.rows[stored.ID] = &stored

	cp := stored
	return &cp, nil
}

func (f *fakeImageRepo) Update(_ context.Context, id uuid.UUID, fields *imagemodel.UpdateFields) (*imagemodel.SlideImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	img, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	if fields.Position != nil {
		img.Position = *fields.Position
	}
	cp := *img
	return &cp, nil
}

func (f *fakeImageRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.rows, id)
	return nil
}

func (f *fakeImageRepo) Reorder(_ context.Context, slideID uuid.UUID, orderedIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, id := range orderedIDs {
		img, ok := f.rows[id]
		if !ok || img.SlideID != slideID {
			return fmt.Errorf("image %s does not belong to slide %s", id, slideID)
		}
	}
	for i, id := range orderedIDs {
		f.rows[id].Position = i + 1
	}
	return nil
}

func (f *fakeImageRepo) SetPrimary(_ context.Context, slideID, imageID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	target, ok := f.rows[imageID]
	if !ok || target.SlideID != slideID {
		return false, nil
	}
	for _, img := range f.rows {
		if img.SlideID == slideID {
			img.IsPrimary = img.ID == imageID
		}
	}
	return true, nil
}

// fakeSlideRepo holds slides and serves legacy-candidate queries against
// the image repo, same join the SQL version does.
type fakeSlideRepo struct {
	mu     sync.Mutex
	slides map[uuid.UUID]*slidemodel.Slide
	images *fakeImageRepo
}

func newFakeSlideRepo(images *fakeImageRepo) *fakeSlideRepo {
	return &fakeSlideRepo{
		slides: make(map[uuid.UUID]*slidemodel.Slide),
		images: images,
	}
}

func (f *fakeSlideRepo) addSlide(legacyURL, legacyPrompt *string) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := &slidemodel.Slide{
		ID:          uuid.New(),
		Title:       "test slide",
		ImageURL:    legacyURL,
		ImagePrompt: legacyPrompt,
	}
	f.slides[s.ID] = s
	return s.ID
}

func (f *fakeSlideRepo) Create(_ context.Context, slide *slidemodel.Slide) (*slidemodel.Slide, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := *slide
	cp.ID = uuid.New()
	f.slides[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeSlideRepo) GetByID(_ context.Context, id uuid.UUID) (*slidemodel.Slide, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.slides[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSlideRepo) Update(_ context.Context, id uuid.UUID, _ *slidemodel.UpdateSlideRequest) (*slidemodel.Slide, error) {
	return f.GetByID(context.Background(), id)
}

func (f *fakeSlideRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.slides, id)
	return nil
}

func (f *fakeSlideRepo) ListLegacyCandidates(_ context.Context) ([]*slidemodel.Slide, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*slidemodel.Slide
	for _, s := range f.slides {
		if s.ImageURL == nil {
			continue
		}
		imgs, _ := f.images.ListBySlide(context.Background(), s.ID)
		if len(imgs) > 0 {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func newTestService(t *testing.T) (Service, *fakeImageRepo, *fakeSlideRepo) {
	t.Helper()
	images := newFakeImageRepo()
	slides := newFakeSlideRepo(images)
	return NewMaintenanceService(slides, images, nil), images, slides
}

func strPtr(s string) *string { return &s }

// =====================================================
// MIGRATION
// =====================================================

func TestRunMigrationBackfillsLegacySlides(t *testing.T) {
	svc, images, slides := newTestService(t)

	generated := slides.addSlide(strPtr("http://legacy/a.png"), strPtr("a red barn"))
	uploaded := slides.addSlide(strPtr("http://legacy/b.png"), nil)
	slides.addSlide(nil, nil) // no legacy image, not a candidate

	report, err := svc.RunMigration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.MigratedCount)
	assert.Empty(t, report.Errors)

	genImgs, err := images.ListBySlide(context.Background(), generated)
	require.NoError(t, err)
	require.Len(t, genImgs, 1)
	assert.Equal(t, 1, genImgs[0].Position)
	assert.True(t, genImgs[0].IsPrimary)
	assert.Equal(t, imagemodel.ImageTypeGenerated, genImgs[0].ImageType)
	require.NotNil(t, genImgs[0].ImageURL)
	assert.Equal(t, "http://legacy/a.png", *genImgs[0].ImageURL)

	upImgs, err := images.ListBySlide(context.Background(), uploaded)
	require.NoError(t, err)
	require.Len(t, upImgs, 1)
	// No prompt on the legacy row means the image was uploaded by hand.
	assert.Equal(t, imagemodel.ImageTypeUploaded, upImgs[0].ImageType)
}

func TestRunMigrationIsIdempotent(t *testing.T) {
	svc, images, slides := newTestService(t)
	slideID := slides.addSlide(strPtr("http://legacy/a.png"), nil)

	first, err := svc.RunMigration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.MigratedCount)

	second, err := svc.RunMigration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.MigratedCount)

	imgs, err := images.ListBySlide(context.Background(), slideID)
	require.NoError(t, err)
	assert.Len(t, imgs, 1)
}

func TestRunMigrationSkipsSlidesWithExistingImages(t *testing.T) {
	svc, images, slides := newTestService(t)
	slideID := slides.addSlide(strPtr("http://legacy/a.png"), nil)
	images.seed(slideID, 1, true, strPtr("http://new/a.png"))

	report, err := svc.RunMigration(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.MigratedCount)
}

// =====================================================
// INTEGRITY VALIDATION
// =====================================================

func TestValidateIntegrityCleanData(t *testing.T) {
	svc, images, slides := newTestService(t)
	slideID := slides.addSlide(nil, nil)
	images.seed(slideID, 1, true, strPtr("http://a.png"))
	images.seed(slideID, 2, false, strPtr("http://b.png"))

	reports, err := svc.ValidateIntegrity(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestValidateIntegrityDetectsIssues(t *testing.T) {
	svc, images, slides := newTestService(t)

	noPrimary := slides.addSlide(nil, nil)
	images.seed(noPrimary, 1, false, strPtr("http://a.png"))

	twoPrimaries := slides.addSlide(nil, nil)
	images.seed(twoPrimaries, 1, true, strPtr("http://a.png"))
	images.seed(twoPrimaries, 2, true, strPtr("http://b.png"))

	dupPositions := slides.addSlide(nil, nil)
	images.seed(dupPositions, 1, true, strPtr("http://a.png"))
	images.seed(dupPositions, 1, false, strPtr("http://b.png"))

	missingURL := slides.addSlide(nil, nil)
	images.seed(missingURL, 1, true, nil)

	reports, err := svc.ValidateIntegrity(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 4)

	byID := make(map[uuid.UUID][]model.Issue)
	for _, r := range reports {
		byID[r.SlideID] = r.Issues
	}

	assert.Equal(t, model.IssueNoPrimary, byID[noPrimary][0].Type)
	assert.Equal(t, model.IssueDuplicatePrimary, byID[twoPrimaries][0].Type)
	assert.Equal(t, model.IssueDuplicatePositions, byID[dupPositions][0].Type)
	assert.Equal(t, model.IssueMissingURL, byID[missingURL][0].Type)
}

// =====================================================
// INTEGRITY REPAIR
// =====================================================

func TestFixIntegrityCleanDataIsNoop(t *testing.T) {
	svc, images, slides := newTestService(t)
	slideID := slides.addSlide(nil, nil)
	images.seed(slideID, 1, true, strPtr("http://a.png"))

	report, err := svc.FixIntegrity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.FixedCount)
	assert.Empty(t, report.Errors)
}

func TestFixIntegrityPromotesLowestPositionWhenNoPrimary(t *testing.T) {
	svc, images, slides := newTestService(t)
	slideID := slides.addSlide(nil, nil)
	first := images.seed(slideID, 1, false, strPtr("http://a.png"))
	images.seed(slideID, 2, false, strPtr("http://b.png"))

	report, err := svc.FixIntegrity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.FixedCount)

	imgs, err := images.ListBySlide(context.Background(), slideID)
	require.NoError(t, err)
	assert.True(t, imgs[0].IsPrimary)
	assert.Equal(t, first, imgs[0].ID)
	assert.False(t, imgs[1].IsPrimary)
}

func TestFixIntegrityKeepsLowestPositionPrimary(t *testing.T) {
	svc, images, slides := newTestService(t)
	slideID := slides.addSlide(nil, nil)
	images.seed(slideID, 1, false, strPtr("http://a.png"))
	keeper := images.seed(slideID, 2, true, strPtr("http://b.png"))
	images.seed(slideID, 3, true, strPtr("http://c.png"))

	report, err := svc.FixIntegrity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.FixedCount)

	imgs, err := images.ListBySlide(context.Background(), slideID)
	require.NoError(t, err)
	primaries := 0
	for _, img := range imgs {
		if img.IsPrimary {
			primaries++
			assert.Equal(t, keeper, img.ID)
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestFixIntegrityRenumbersDuplicatePositions(t *testing.T) {
	svc, images, slides := newTestService(t)
	slideID := slides.addSlide(nil, nil)
	// Two rows at position 2; creation order breaks the tie.
	images.seed(slideID, 2, true, strPtr("http://a.png"))
	images.seed(slideID, 2, false, strPtr("http://b.png"))
	images.seed(slideID, 5, false, strPtr("http://c.png"))

	report, err := svc.FixIntegrity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.FixedCount)

	imgs, err := images.ListBySlide(context.Background(), slideID)
	require.NoError(t, err)
	require.Len(t, imgs, 3)
	for i, img := range imgs {
		assert.Equal(t, i+1, img.Position)
	}
	require.NotNil(t, imgs[0].ImageURL)
	assert.Equal(t, "http://a.png", *imgs[0].ImageURL)
	assert.Equal(t, "http://b.png", *imgs[1].ImageURL)
	assert.Equal(t, "http://c.png", *imgs[2].ImageURL)
}

func TestFixIntegrityIsIdempotent(t *testing.T) {
	svc, images, slides := newTestService(t)
	slideID := slides.addSlide(nil, nil)
	images.seed(slideID, 2, false, strPtr("http://a.png"))
	images.seed(slideID, 2, true, strPtr("http://b.png"))

	first, err := svc.FixIntegrity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.FixedCount)

	second, err := svc.FixIntegrity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.FixedCount)

	reports, err := svc.ValidateIntegrity(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestFixIntegrityLeavesMissingURLAlone(t *testing.T) {
	svc, images, slides := newTestService(t)
	slideID := slides.addSlide(nil, nil)
	images.seed(slideID, 1, true, nil)

	report, err := svc.FixIntegrity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.FixedCount)

	// Still reported: a missing URL needs a human decision.
	reports, err := svc.ValidateIntegrity(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, model.IssueMissingURL, reports[0].Issues[0].Type)
}
