package spot

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
	Create(ctx context.Context, s *Spot) error
	GetByID(ctx context.Context, id string) (*Spot, error)
	List(ctx context.Context, filter Filter) ([]*Spot, int, error)
	Update(ctx context.Context, s *Spot) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, log *zap.Logger) Repository {
	return &pgxRepository{pool: pool, log: log.Named("spot_repo")}
}

const spotColumns = "id, owner_id, name, description, location, latitude, longitude, capacity, nightly_rate_cents, is_active, instant_book, created_at, updated_at"

func scanSpot(row pgx.Row) (*Spot, error) {
	var s Spot
	if err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Description, &s.Location,
		&s.Latitude, &s.Longitude, &s.Capacity, &s.NightlyRateCents,
		&s.IsActive, &s.InstantBook, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan spot failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) Create(ctx context.Context, s *Spot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.spots").
		Columns("owner_id", "name", "description", "location", "latitude", "longitude",
			"capacity", "nightly_rate_cents", "is_active", "instant_book").
		Values(s.OwnerID, s.Name, s.Description, s.Location, s.Latitude, s.Longitude,
			s.Capacity, s.NightlyRateCents, s.IsActive, s.InstantBook).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create spot query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		r.log.Error("create spot failed", zap.Error(err))
		return fmt.Errorf("create spot failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Spot, error) {
	query := fmt.Sprintf(`SELECT %s FROM public.spots WHERE id = $1`, spotColumns)
	return scanSpot(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Spot, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "owner_id", "name", "description", "location", "latitude", "longitude",
		"capacity", "nightly_rate_cents", "is_active", "instant_book", "created_at", "updated_at",
		"count(*) OVER() AS total_count",
	).From("public.spots")

	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"owner_id": filter.OwnerID})
	}
	if filter.OnlyActive {
		query = query.Where(squirrel.Eq{"is_active": true})
	}
	if filter.MinCapacity > 0 {
		query = query.Where(squirrel.GtOrEq{"capacity": filter.MinCapacity})
	}
	if filter.MaxRateCents > 0 {
		query = query.Where(squirrel.LtOrEq{"nightly_rate_cents": filter.MaxRateCents})
	}

	orderBy := "created_at"
	switch filter.SortBy {
	case "nightly_rate_cents", "capacity", "name":
		orderBy = filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder == "asc" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64((filter.Page - 1) * filter.PageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list spots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list spots failed: %w", err)
	}
	defer rows.Close()

	var spots []*Spot
	var total int
	for rows.Next() {
		var s Spot
		if err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Name, &s.Description, &s.Location,
			&s.Latitude, &s.Longitude, &s.Capacity, &s.NightlyRateCents,
			&s.IsActive, &s.InstantBook, &s.CreatedAt, &s.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan spot failed: %w", err)
		}
		spots = append(spots, &s)
	}

	return spots, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, s *Spot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.spots").
		Set("name", s.Name).
		Set("description", s.Description).
		Set("location", s.Location).
		Set("latitude", s.Latitude).
		Set("longitude", s.Longitude).
		Set("capacity", s.Capacity).
		Set("nightly_rate_cents", s.NightlyRateCents).
		Set("is_active", s.IsActive).
		Set("instant_book", s.InstantBook).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update spot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update spot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
