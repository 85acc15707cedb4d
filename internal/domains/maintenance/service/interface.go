package service

import (
	"context"

	"slidedeck-backend/internal/domains/maintenance/model"
)

// Service covers the admin maintenance operations: backfilling legacy
// single-image slides into the slide_images table and detecting/repairing
// ordering and primary-flag inconsistencies.
type Service interface {
	// RunMigration backfills one image row for every slide that still
	// carries a legacy image_url and owns no slide_images rows. Safe to
	// re-run: already migrated slides are no longer candidates.
	RunMigration(ctx context.Context) (*model.MigrationReport, error)

	// ValidateIntegrity scans every slide that has image rows and reports
	// the ones violating the ordering or primary invariants. Read-only.
	ValidateIntegrity(ctx context.Context) ([]*model.SlideIntegrityReport, error)

	// FixIntegrity re-derives the issue set and repairs what it can:
	// duplicate positions are renumbered 1..N and a single primary is
	// enforced, keeping the lowest-position candidate. Missing image URLs
	// are reported by ValidateIntegrity but never repaired automatically.
	FixIntegrity(ctx context.Context) (*model.FixReport, error)
}
