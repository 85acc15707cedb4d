package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slidedeck-backend/internal/domains/slide/model"
)

const slideColumns = `id, presentation_id, title, position, image_url, image_prompt, is_generating_image, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanSlide(row pgx.Row) (*model.Slide, error) {
	var s model.Slide
	err := row.Scan(
		&s.ID, &s.PresentationID, &s.Title, &s.Position,
		&s.ImageURL, &s.ImagePrompt, &s.IsGeneratingImage,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new slide record
func (r *postgresRepository) Create(ctx context.Context, slide *model.Slide) (*model.Slide, error) {
	query := `
    INSERT INTO slides (presentation_id, title, position, created_at, updated_at)
    VALUES ($1, $2, $3, NOW(), NOW())
    RETURNING ` + slideColumns + `
  `

	created, err := scanSlide(r.pool.QueryRow(ctx, query, slide.PresentationID, slide.Title, slide.Position))
	if err != nil {
		return nil, model.NewStoreError("create", err)
	}

	return created, nil
}

// GetByID retrieves a slide; (nil, nil) when absent
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Slide, error) {
	query := `
    SELECT ` + slideColumns + `
    FROM slides
    WHERE id = $1
  `

	slide, err := scanSlide(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, model.NewStoreError("get", err)
	}

	return slide, nil
}

// Update patches only the supplied fields
func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, req *model.UpdateSlideRequest) (*model.Slide, error) {
	var setClauses []string
	var args []interface{}

	addClause := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		addClause("title", *req.Title)
	}
	if req.Position != nil {
		addClause("position", *req.Position)
	}
	if req.ImageURL != nil {
		addClause("image_url", *req.ImageURL)
	}
	if req.ImagePrompt != nil {
		addClause("image_prompt", *req.ImagePrompt)
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf(`
    UPDATE slides
    SET %s
    WHERE id = $%d
    RETURNING %s
  `, strings.Join(setClauses, ", "), len(args), slideColumns)

	updated, err := scanSlide(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, model.NewStoreError("update", err)
	}

	return updated, nil
}

// Delete removes a slide; its images cascade via the foreign key
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM slides WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return model.NewStoreError("delete", err)
	}

	if result.RowsAffected() == 0 {
		return model.NewSlideNotFound(id.String())
	}

	return nil
}

// ListLegacyCandidates finds slides still on the single-image model:
// a non-null legacy image_url and no slide_images rows yet.
func (r *postgresRepository) ListLegacyCandidates(ctx context.Context) ([]*model.Slide, error) {
	query := `
    SELECT ` + slideColumns + `
    FROM slides s
    WHERE s.image_url IS NOT NULL
      AND NOT EXISTS (SELECT 1 FROM slide_images si WHERE si.slide_id = s.id)
    ORDER BY s.created_at ASC
  `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, model.NewStoreError("list", err)
	}
	defer rows.Close()

	var slides []*model.Slide
	for rows.Next() {
		slide, err := scanSlide(rows)
		if err != nil {
			return nil, model.NewStoreError("list", err)
		}
		slides = append(slides, slide)
	}

	if err = rows.Err(); err != nil {
		return nil, model.NewStoreError("list", err)
	}

	return slides, nil
}
