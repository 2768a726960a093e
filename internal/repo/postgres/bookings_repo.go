package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cardoctor/cardoctor-api/internal/domain"
)

type BookingsRepo interface {
	Create(ctx context.Context, req *domain.BookingCreateReq) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	// UpdateStatus sets only the status field. A missing id yields (nil, nil)
	// unless upsert is requested, in which case a partial record holding only
	// id and status is inserted.
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, upsert bool) (*domain.Booking, error)
	// Delete reports whether a record was removed; deleting a missing id is
	// not an error.
	Delete(ctx context.Context, id int64) (bool, error)
}

type bookingsRepo struct {
	pool *pgxpool.Pool
}

func NewBookingsRepo(pool *pgxpool.Pool) BookingsRepo {
	return &bookingsRepo{pool: pool}
}

const bookingCols = `id, customer_name, email, service_id, service_title,
price, booking_date, img, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.CustomerName, &b.Email, &b.ServiceID, &b.ServiceTitle,
		&b.Price, &b.Date, &b.Img, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingsRepo) Create(ctx context.Context, req *domain.BookingCreateReq) (*domain.Booking, error) {
	const q = `INSERT INTO bookings (
		customer_name, email, service_id, service_title,
		price, booking_date, img, status
	) VALUES ($1,$2,$3,$4,$5,$6,$7,'pending')
	RETURNING ` + bookingCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return scanBooking(r.pool.QueryRow(ctx, q,
		req.CustomerName, req.Email, req.ServiceID, req.ServiceTitle,
		req.Price, req.Date, req.Img,
	))
}

func (r *bookingsRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanBooking(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return b, err
}

func (r *bookingsRepo) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE email=$1 ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingsRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, upsert bool) (*domain.Booking, error) {
	const q = `UPDATE bookings SET status=$2, updated_at=now() WHERE id=$1 RETURNING ` + bookingCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	b, err := scanBooking(r.pool.QueryRow(ctx, q, id, status))
	if err == nil {
		return b, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}
	if !upsert {
		return nil, nil
	}

	const qUpsert = `INSERT INTO bookings (id, status) VALUES ($1,$2)
		ON CONFLICT (id) DO UPDATE SET status=EXCLUDED.status, updated_at=now()
		RETURNING ` + bookingCols
	return scanBooking(r.pool.QueryRow(ctx, qUpsert, id, status))
}

func (r *bookingsRepo) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM bookings WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
