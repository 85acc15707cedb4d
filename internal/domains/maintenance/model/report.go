package model

import "github.com/google/uuid"

// =============================================================================
// INTEGRITY ISSUES
// =============================================================================

// IssueType identifies one class of slide image inconsistency.
type IssueType string

const (
	IssueNoPrimary          IssueType = "no_primary"
	IssueDuplicatePrimary   IssueType = "duplicate_primary"
	IssueDuplicatePositions IssueType = "duplicate_positions"
	IssueMissingURL         IssueType = "missing_url"
)

// Issue describes one inconsistency found on a slide.
type Issue struct {
	Type   IssueType `json:"type"`
	Detail string    `json:"detail"`
}

// SlideIntegrityReport lists the issues found on a single slide. Slides
// without issues are omitted from integrity responses entirely.
type SlideIntegrityReport struct {
	SlideID uuid.UUID `json:"slide_id"`
	Issues  []Issue   `json:"issues"`
}

// =============================================================================
// OPERATION REPORTS
// =============================================================================

// SlideOpError records a per-slide failure during a maintenance run. One
// slide failing never aborts the run; it is reported here instead.
type SlideOpError struct {
	SlideID uuid.UUID `json:"slide_id"`
	Error   string    `json:"error"`
}

// MigrationReport summarizes a legacy image migration run.
type MigrationReport struct {
	MigratedCount int            `json:"migrated_count"`
	Errors        []SlideOpError `json:"errors"`
}

// FixReport summarizes an integrity repair run.
type FixReport struct {
	FixedCount int            `json:"fixed_count"`
	Errors     []SlideOpError `json:"errors"`
}
