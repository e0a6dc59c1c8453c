package spotimage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, img *Image) error
	GetByID(ctx context.Context, id string) (*Image, error)
	ListBySpot(ctx context.Context, spotID string) ([]*Image, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, log *zap.Logger) Repository {
	return &pgxRepository{pool: pool, log: log.Named("spotimage_repo")}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const imageColumns = "id, spot_id, path, thumbnail_path, content_type, size_bytes, position, created_at"

func (r *pgxRepository) Create(ctx context.Context, img *Image) error {
	query, args, err := psql.Insert("public.spot_images").
		Columns("spot_id", "path", "thumbnail_path", "content_type", "size_bytes", "position").
		Values(img.SpotID, img.Path, img.ThumbnailPath, img.ContentType, img.SizeBytes, img.Position).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create image query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&img.ID, &img.CreatedAt); err != nil {
		r.log.Error("create spot image failed", zap.String("spot_id", img.SpotID), zap.Error(err))
		return fmt.Errorf("create spot image failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Image, error) {
	query := fmt.Sprintf("SELECT %s FROM public.spot_images WHERE id = $1", imageColumns)

	var img Image
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&img.ID, &img.SpotID, &img.Path, &img.ThumbnailPath,
		&img.ContentType, &img.SizeBytes, &img.Position, &img.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get spot image failed: %w", err)
	}
	return &img, nil
}

func (r *pgxRepository) ListBySpot(ctx context.Context, spotID string) ([]*Image, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM public.spot_images WHERE spot_id = $1 ORDER BY position, created_at",
		imageColumns)

	rows, err := r.pool.Query(ctx, query, spotID)
	if err != nil {
		return nil, fmt.Errorf("list spot images failed: %w", err)
	}
	defer rows.Close()

	var images []*Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(
			&img.ID, &img.SpotID, &img.Path, &img.ThumbnailPath,
			&img.ContentType, &img.SizeBytes, &img.Position, &img.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan spot image failed: %w", err)
		}
		images = append(images, &img)
	}
	return images, rows.Err()
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.spot_images WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete spot image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
