package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/wildpitch/spot-booking-backend/internal/db"
)

// activeStatuses are the statuses that block other reservations from taking
// the same dates.
var activeStatuses = []Status{StatusPending, StatusConfirmed}

type Repository interface {
	// Create inserts the reservation after re-checking date conflicts inside
	// the same serializable transaction. When conflicts exist, nothing is
	// inserted and the blocking ranges are returned instead.
	Create(ctx context.Context, r *Reservation) ([]DateRange, error)

	GetByID(ctx context.Context, id string) (*Reservation, error)
	Update(ctx context.Context, r *Reservation) error
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)

	// FindOverlapping returns the active reservations for the spot whose
	// half-open [check_in, check_out) interval overlaps the candidate range.
	FindOverlapping(ctx context.Context, spotID string, checkIn, checkOut time.Time) ([]DateRange, error)

	// CompleteDue flips confirmed reservations whose check-out has passed to
	// completed and returns the flipped rows.
	CompleteDue(ctx context.Context, now time.Time) ([]*Reservation, error)

	// SetReviewAttached marks the reservation as reviewed; the flag is
	// write-once.
	SetReviewAttached(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, log *zap.Logger) Repository {
	return &pgxRepository{pool: pool, log: log.Named("reservation_repo")}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func overlapQuery(spotID string, checkIn, checkOut time.Time) squirrel.SelectBuilder {
	// Half-open interval rule: existing.check_in < candidate.check_out AND
	// candidate.check_in < existing.check_out. Same-day turnover never counts
	// as a conflict.
	return psql.Select("check_in", "check_out").
		From("public.reservations").
		Where(squirrel.Eq{"spot_id": spotID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		Where(squirrel.Lt{"check_in": checkOut}).
		Where(squirrel.Gt{"check_out": checkIn}).
		OrderBy("check_in")
}

func collectRanges(rows pgx.Rows) ([]DateRange, error) {
	defer rows.Close()
	var ranges []DateRange
	for rows.Next() {
		var dr DateRange
		if err := rows.Scan(&dr.CheckIn, &dr.CheckOut); err != nil {
			return nil, fmt.Errorf("scan date range failed: %w", err)
		}
		ranges = append(ranges, dr)
	}
	return ranges, rows.Err()
}

func (r *pgxRepository) FindOverlapping(ctx context.Context, spotID string, checkIn, checkOut time.Time) ([]DateRange, error) {
	sql, args, err := overlapQuery(spotID, checkIn, checkOut).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build overlap query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find overlapping failed: %w", err)
	}
	return collectRanges(rows)
}

func (r *pgxRepository) Create(ctx context.Context, res *Reservation) ([]DateRange, error) {
	var conflicts []DateRange

	err := db.RunSerializable(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		// Serialize check-then-insert per spot; different spots never contend.
		if err := db.AcquireSpotLock(ctx, tx, res.SpotID); err != nil {
			return err
		}

		sql, args, err := overlapQuery(res.SpotID, res.CheckIn, res.CheckOut).ToSql()
		if err != nil {
			return fmt.Errorf("build overlap query failed: %w", err)
		}
		rows, err := tx.Query(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("transactional overlap check failed: %w", err)
		}
		conflicts, err = collectRanges(rows)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			// Abort without inserting; the caller turns the ranges into a
			// SlotUnavailableError.
			return nil
		}

		sql, args, err = psql.Insert("public.reservations").
			Columns("spot_id", "requester_id", "owner_id", "check_in", "check_out",
				"guests", "total_price_cents", "status", "payment_status", "notes").
			Values(res.SpotID, res.RequesterID, res.OwnerID, res.CheckIn, res.CheckOut,
				res.Guests, res.TotalPriceCents, res.Status, res.PaymentStatus, res.Notes).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create reservation query failed: %w", err)
		}

		return tx.QueryRow(ctx, sql, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	return conflicts, nil
}

const reservationSelect = `
	r.id, r.spot_id, s.name, r.requester_id, r.owner_id,
	r.check_in, r.check_out, r.guests, r.total_price_cents,
	r.status, r.payment_status, r.notes, r.has_review,
	r.created_at, r.updated_at`

func scanReservation(row pgx.Row) (*Reservation, error) {
	var res Reservation
	if err := row.Scan(
		&res.ID, &res.SpotID, &res.SpotName, &res.RequesterID, &res.OwnerID,
		&res.CheckIn, &res.CheckOut, &res.Guests, &res.TotalPriceCents,
		&res.Status, &res.PaymentStatus, &res.Notes, &res.HasReview,
		&res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan reservation failed: %w", err)
	}
	return &res, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM public.reservations r
		JOIN public.spots s ON r.spot_id = s.id
		WHERE r.id = $1`, reservationSelect)

	return scanReservation(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) Update(ctx context.Context, res *Reservation) error {
	query, args, err := psql.Update("public.reservations").
		Set("status", res.Status).
		Set("payment_status", res.PaymentStatus).
		Set("notes", res.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": res.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("update reservation failed", zap.String("id", res.ID), zap.Error(err))
		return fmt.Errorf("update reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	query := psql.Select(
		"r.id", "r.spot_id", "s.name", "r.requester_id", "r.owner_id",
		"r.check_in", "r.check_out", "r.guests", "r.total_price_cents",
		"r.status", "r.payment_status", "r.notes", "r.has_review",
		"r.created_at", "r.updated_at",
		"count(*) OVER() AS total_count",
	).
		From("public.reservations r").
		Join("public.spots s ON r.spot_id = s.id")

	if filter.SpotID != "" {
		query = query.Where(squirrel.Eq{"r.spot_id": filter.SpotID})
	}
	if filter.RequesterID != "" {
		query = query.Where(squirrel.Eq{"r.requester_id": filter.RequesterID})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"r.owner_id": filter.OwnerID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"r.status": filter.Status})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	query = query.OrderBy("r.check_in DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64((filter.Page - 1) * filter.PageSize))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	var total int
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(
			&res.ID, &res.SpotID, &res.SpotName, &res.RequesterID, &res.OwnerID,
			&res.CheckIn, &res.CheckOut, &res.Guests, &res.TotalPriceCents,
			&res.Status, &res.PaymentStatus, &res.Notes, &res.HasReview,
			&res.CreatedAt, &res.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}

	return reservations, total, nil
}

func (r *pgxRepository) CompleteDue(ctx context.Context, now time.Time) ([]*Reservation, error) {
	const query = `
		UPDATE public.reservations r
		SET status = $1, updated_at = now()
		FROM public.spots s
		WHERE r.spot_id = s.id
		  AND r.status = $2
		  AND r.check_out <= $3
		RETURNING ` + reservationSelect

	rows, err := r.pool.Query(ctx, query, StatusCompleted, StatusConfirmed, now)
	if err != nil {
		return nil, fmt.Errorf("complete due reservations failed: %w", err)
	}
	defer rows.Close()

	var completed []*Reservation
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(
			&res.ID, &res.SpotID, &res.SpotName, &res.RequesterID, &res.OwnerID,
			&res.CheckIn, &res.CheckOut, &res.Guests, &res.TotalPriceCents,
			&res.Status, &res.PaymentStatus, &res.Notes, &res.HasReview,
			&res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan completed reservation failed: %w", err)
		}
		completed = append(completed, &res)
	}
	return completed, rows.Err()
}

func (r *pgxRepository) SetReviewAttached(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx,
		`UPDATE public.reservations SET has_review = true, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("set review attached failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
