package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slidedeck-backend/internal/domains/slideimage/model"
	"slidedeck-backend/pkg/database"
)

const imageColumns = `id, slide_id, image_url, image_prompt, image_type, position, aspect_ratio, style_metadata, is_primary, created_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func scanImage(row pgx.Row) (*model.SlideImage, error) {
	var img model.SlideImage
	err := row.Scan(
		&img.ID, &img.SlideID, &img.ImageURL, &img.ImagePrompt, &img.ImageType,
		&img.Position, &img.AspectRatio, &img.StyleMetadata, &img.IsPrimary,
		&img.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// ListBySlide retrieves all images of a slide, sorted by position
func (r *postgresRepository) ListBySlide(ctx context.Context, slideID uuid.UUID) ([]*model.SlideImage, error) {
	query := `
    SELECT ` + imageColumns + `
    FROM slide_images
    WHERE slide_id = $1
    ORDER BY position ASC, created_at ASC
  `

	rows, err := r.pool.Query(ctx, query, slideID)
	if err != nil {
		return nil, model.NewStoreError("list", err)
	}
	defer rows.Close()

	var images []*model.SlideImage
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, model.NewStoreError("list", err)
		}
		images = append(images, img)
	}

	if err = rows.Err(); err != nil {
		return nil, model.NewStoreError("list", err)
	}

	return images, nil
}

// ListSlideIDs returns every slide id that owns at least one image row
func (r *postgresRepository) ListSlideIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := `SELECT DISTINCT slide_id FROM slide_images`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, model.NewStoreError("list", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, model.NewStoreError("list", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, model.NewStoreError("list", err)
	}

	return ids, nil
}

// GetByID retrieves a single image; (nil, nil) when absent
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.SlideImage, error) {
	query := `
    SELECT ` + imageColumns + `
    FROM slide_images
    WHERE id = $1
  `

	img, err := scanImage(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, model.NewStoreError("get", err)
	}

	return img, nil
}

// Insert creates a new image record. A nil position falls back to the end
// of the slide's list inside the statement itself, so there is no
// read-modify-write window on the default.
func (r *postgresRepository) Insert(ctx context.Context, img *model.SlideImage, position *int) (*model.SlideImage, error) {
	query := `
    INSERT INTO slide_images
    (slide_id, image_url, image_prompt, image_type, position, aspect_ratio, style_metadata, is_primary, created_at)
    VALUES (
      $1, $2, $3, $4,
      COALESCE($5, (SELECT COALESCE(MAX(position), 0) + 1 FROM slide_images WHERE slide_id = $1)),
      $6, $7, $8, NOW()
    )
    RETURNING ` + imageColumns + `
  `

	created, err := scanImage(r.pool.QueryRow(
		ctx, query,
		img.SlideID, img.ImageURL, img.ImagePrompt, img.ImageType,
		position, img.AspectRatio, img.StyleMetadata, img.IsPrimary,
	))
	if err != nil {
		return nil, model.NewStoreError("create", err)
	}

	return created, nil
}

// Update patches only the supplied fields; (nil, nil) when the row is absent
func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, fields *model.UpdateFields) (*model.SlideImage, error) {
	var setClauses []string
	var args []interface{}

	addClause := func(column string, value interface{}) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.ImageURL != nil {
		addClause("image_url", *fields.ImageURL)
	}
	if fields.ImagePrompt != nil {
		addClause("image_prompt", *fields.ImagePrompt)
	}
	if fields.ImageType != nil {
		addClause("image_type", *fields.ImageType)
	}
	if fields.Position != nil {
		addClause("position", *fields.Position)
	}
	if fields.AspectRatio != nil {
		addClause("aspect_ratio", *fields.AspectRatio)
	}
	if fields.StyleMetadata != nil {
		addClause("style_metadata", fields.StyleMetadata)
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
    UPDATE slide_images
    SET %s
    WHERE id = $%d
    RETURNING %s
  `, strings.Join(setClauses, ", "), len(args), imageColumns)

	updated, err := scanImage(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, model.NewStoreError("update", err)
	}

	return updated, nil
}

// Delete removes an image record; a missing row is not an error
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM slide_images WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return model.NewStoreError("delete", err)
	}

	return nil
}

// Reorder rewrites the slide's positions to 1..N following orderedIDs.
// The whole rewrite happens in one transaction: if any id no longer belongs
// to the slide the transaction rolls back and no position changes.
func (r *postgresRepository) Reorder(ctx context.Context, slideID uuid.UUID, orderedIDs []uuid.UUID) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
      UPDATE slide_images AS si
      SET position = u.pos
      FROM (
        SELECT unnest($2::uuid[]) AS id,
               generate_subscripts($2::uuid[], 1) AS pos
      ) u
      WHERE si.id = u.id AND si.slide_id = $1
    `

		result, err := tx.Exec(ctx, query, slideID, orderedIDs)
		if err != nil {
			return err
		}

		if int(result.RowsAffected()) != len(orderedIDs) {
			return fmt.Errorf("reorder touched %d of %d rows", result.RowsAffected(), len(orderedIDs))
		}

		return nil
	})
	if err != nil {
		return model.NewStoreError("reorder", err)
	}

	return nil
}

// SetPrimary demotes all other images of the slide and promotes the target
// in a single transaction, keeping the one-primary invariant under
// concurrent calls. Returns false when imageID is not part of the slide.
func (r *postgresRepository) SetPrimary(ctx context.Context, slideID, imageID uuid.UUID) (bool, error) {
	found, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		_, err := tx.Exec(ctx,
			`UPDATE slide_images SET is_primary = false WHERE slide_id = $1 AND id != $2`,
			slideID, imageID,
		)
		if err != nil {
			return false, err
		}

		result, err := tx.Exec(ctx,
			`UPDATE slide_images SET is_primary = true WHERE id = $1 AND slide_id = $2`,
			imageID, slideID,
		)
		if err != nil {
			return false, err
		}

		if result.RowsAffected() == 0 {
			return false, pgx.ErrNoRows // rolls back the demotion
		}

		return true, nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, model.NewStoreError("set primary on", err)
	}

	return found, nil
}
