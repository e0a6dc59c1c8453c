package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Summarize(ctx context.Context, spotID string) (*Summary, error)

	// ExistsForAuthorAndSpot reports whether the author already reviewed the
	// spot, across all of their stays.
	ExistsForAuthorAndSpot(ctx context.Context, authorID, spotID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, log *zap.Logger) Repository {
	return &pgxRepository{pool: pool, log: log.Named("review_repo")}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const reviewColumns = "id, reservation_id, spot_id, author_id, rating, comment, created_at, updated_at"

func scanReview(row pgx.Row) (*Review, error) {
	var rv Review
	if err := row.Scan(
		&rv.ID, &rv.ReservationID, &rv.SpotID, &rv.AuthorID,
		&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan review failed: %w", err)
	}
	return &rv, nil
}

func (r *pgxRepository) Create(ctx context.Context, rv *Review) error {
	query, args, err := psql.Insert("public.reviews").
		Columns("reservation_id", "spot_id", "author_id", "rating", "comment").
		Values(rv.ReservationID, rv.SpotID, rv.AuthorID, rv.Rating, rv.Comment).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create review query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		// reviews carries a unique constraint on (author_id, spot_id).
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateReview
		}
		r.log.Error("create review failed", zap.Error(err))
		return fmt.Errorf("create review failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	query := fmt.Sprintf("SELECT %s FROM public.reviews WHERE id = $1", reviewColumns)
	return scanReview(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	query := psql.Select(
		"id", "reservation_id", "spot_id", "author_id", "rating", "comment",
		"created_at", "updated_at",
		"count(*) OVER() AS total_count",
	).From("public.reviews")

	if filter.SpotID != "" {
		query = query.Where(squirrel.Eq{"spot_id": filter.SpotID})
	}
	if filter.AuthorID != "" {
		query = query.Where(squirrel.Eq{"author_id": filter.AuthorID})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	query = query.OrderBy("created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64((filter.Page - 1) * filter.PageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reviews query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews failed: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	var total int
	for rows.Next() {
		var rv Review
		if err := rows.Scan(
			&rv.ID, &rv.ReservationID, &rv.SpotID, &rv.AuthorID,
			&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review failed: %w", err)
		}
		reviews = append(reviews, &rv)
	}

	return reviews, total, nil
}

func (r *pgxRepository) ExistsForAuthorAndSpot(ctx context.Context, authorID, spotID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM public.reviews WHERE author_id = $1 AND spot_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, authorID, spotID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check existing review failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) Summarize(ctx context.Context, spotID string) (*Summary, error) {
	const query = `
		SELECT count(*), coalesce(avg(rating), 0)
		FROM public.reviews
		WHERE spot_id = $1`

	s := Summary{SpotID: spotID}
	if err := r.pool.QueryRow(ctx, query, spotID).Scan(&s.ReviewCount, &s.AverageRating); err != nil {
		return nil, fmt.Errorf("summarize reviews failed: %w", err)
	}
	return &s, nil
}
