package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/oklog/ulid/v2"

	"github.com/pictor/pictor/internal/model"
)

// ImageFilter defines the predicate for listing images.
type ImageFilter struct {
	// Keyword filters by exact tag membership when non-empty.
	Keyword string
	// Cursor is the ID of the last item of the previous page. A value
	// that does not parse as a ULID is ignored rather than rejected;
	// callers rely on that leniency, so do not add strict validation here.
	Cursor string
}

// InsertImages bulk-inserts image records.
func (r *Repository) InsertImages(ctx context.Context, images []*model.Image) error {
	query := `
		INSERT INTO images (id, url, width, height, keywords, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, img := range images {
		_, err := r.pool.Exec(ctx, query,
			img.ID,
			img.URL,
			img.Width,
			img.Height,
			pq.Array(img.Keywords),
			img.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert image %s: %w", img.ID, err)
		}
	}

	return nil
}

// ListImages retrieves up to limit images matching the filter, ordered
// ascending by ID. The ID order is the pagination contract: any
// replacement store must preserve a stable total order over IDs for
// cursors to remain compatible.
func (r *Repository) ListImages(ctx context.Context, filter ImageFilter, limit int) ([]*model.Image, error) {
	query := `
		SELECT id, url, width, height, keywords, created_at
		FROM images
		WHERE 1=1
	`
	args := []any{}
	argIndex := 1

	if filter.Keyword != "" {
		query += fmt.Sprintf(" AND $%d = ANY(keywords)", argIndex)
		args = append(args, filter.Keyword)
		argIndex++
	}

	// An unparseable cursor is treated as absent, not as an error.
	if filter.Cursor != "" {
		if _, err := ulid.ParseStrict(filter.Cursor); err == nil {
			query += fmt.Sprintf(" AND id > $%d", argIndex)
			args = append(args, filter.Cursor)
			argIndex++
		}
	}

	query += fmt.Sprintf(" ORDER BY id ASC LIMIT $%d", argIndex)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	var images []*model.Image
	for rows.Next() {
		var img model.Image
		var keywords []string
		err := rows.Scan(
			&img.ID,
			&img.URL,
			&img.Width,
			&img.Height,
			pq.Array(&keywords),
			&img.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		img.Keywords = keywords
		images = append(images, &img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}

	return images, nil
}

// CountImages returns the number of images matching the keyword.
// An empty keyword counts all images.
func (r *Repository) CountImages(ctx context.Context, keyword string) (int64, error) {
	query := `SELECT COUNT(*) FROM images`
	args := []any{}

	if keyword != "" {
		query += ` WHERE $1 = ANY(keywords)`
		args = append(args, keyword)
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}

	return count, nil
}

// DeleteAllImages removes every image record. Used by the seeder to
// replace the gallery contents wholesale.
func (r *Repository) DeleteAllImages(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM images`); err != nil {
		return fmt.Errorf("failed to delete images: %w", err)
	}
	return nil
}
