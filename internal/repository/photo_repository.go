package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pholio/internal/models"
)

var ErrPhotoNotFound = errors.New("photo not found")

const photoColumns = "id, title, description, location, date_taken, image_url, thumbnail_url, created_at, updated_at"

type PhotoRepository struct {
	pool *pgxpool.Pool
}

func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

type PhotoCreate struct {
	Title        string
	Description  *string
	Location     *string
	DateTaken    *time.Time
	ImageURL     string
	ThumbnailURL string
}

// PhotoUpdate carries a partial update. Nil pointer means the field was not
// supplied and keeps its current value; a supplied empty string clears the
// nullable columns, matching the PATCH body semantics.
type PhotoUpdate struct {
	Title          *string
	Description    *string
	Location       *string
	DateTaken      *time.Time
	ClearDateTaken bool
}

func (u PhotoUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Location == nil &&
		u.DateTaken == nil && !u.ClearDateTaken
}

func (r *PhotoRepository) Create(ctx context.Context, in PhotoCreate) (models.Photo, error) {
	const query = `
		INSERT INTO photos (title, description, location, date_taken, image_url, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + photoColumns

	row := r.pool.QueryRow(ctx, query,
		in.Title,
		in.Description,
		in.Location,
		in.DateTaken,
		in.ImageURL,
		in.ThumbnailURL,
	)
	return scanPhoto(row)
}

func (r *PhotoRepository) GetByID(ctx context.Context, id int64) (models.Photo, error) {
	const query = `SELECT ` + photoColumns + ` FROM photos WHERE id = $1`

	photo, err := scanPhoto(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Photo{}, ErrPhotoNotFound
		}
		return models.Photo{}, err
	}
	return photo, nil
}

// List returns all photos newest-by-date first. Undated photos sort last,
// ties break on creation time, then id, so the order is deterministic.
func (r *PhotoRepository) List(ctx context.Context) ([]models.Photo, error) {
	const query = `
		SELECT ` + photoColumns + `
		FROM photos
		ORDER BY date_taken DESC NULLS LAST, created_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}

func (r *PhotoRepository) Random(ctx context.Context) (models.Photo, error) {
	const query = `SELECT ` + photoColumns + ` FROM photos ORDER BY RANDOM() LIMIT 1`

	photo, err := scanPhoto(r.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Photo{}, ErrPhotoNotFound
		}
		return models.Photo{}, err
	}
	return photo, nil
}

func (r *PhotoRepository) Update(ctx context.Context, id int64, upd PhotoUpdate) (models.Photo, error) {
	query, args := buildUpdateQuery(id, upd)

	photo, err := scanPhoto(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Photo{}, ErrPhotoNotFound
		}
		return models.Photo{}, err
	}
	return photo, nil
}

func (r *PhotoRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func buildUpdateQuery(id int64, upd PhotoUpdate) (string, []any) {
	var (
		sets []string
		args []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if upd.Title != nil {
		sets = append(sets, "title = "+next(*upd.Title))
	}
	if upd.Description != nil {
		if *upd.Description == "" {
			sets = append(sets, "description = NULL")
		} else {
			sets = append(sets, "description = "+next(*upd.Description))
		}
	}
	if upd.Location != nil {
		if *upd.Location == "" {
			sets = append(sets, "location = NULL")
		} else {
			sets = append(sets, "location = "+next(*upd.Location))
		}
	}
	if upd.DateTaken != nil {
		sets = append(sets, "date_taken = "+next(*upd.DateTaken))
	} else if upd.ClearDateTaken {
		sets = append(sets, "date_taken = NULL")
	}

	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(
		"UPDATE photos SET %s WHERE id = %s RETURNING %s",
		strings.Join(sets, ", "), next(id), photoColumns,
	)
	return query, args
}

func scanPhoto(row pgx.Row) (models.Photo, error) {
	var photo models.Photo
	if err := row.Scan(
		&photo.ID,
		&photo.Title,
		&photo.Description,
		&photo.Location,
		&photo.DateTaken,
		&photo.ImageURL,
		&photo.ThumbnailURL,
		&photo.CreatedAt,
		&photo.UpdatedAt,
	); err != nil {
		return models.Photo{}, err
	}
	return photo, nil
}
