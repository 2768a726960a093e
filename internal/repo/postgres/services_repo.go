package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cardoctor/cardoctor-api/internal/domain"
)

type ServicesRepo interface {
	List(ctx context.Context) ([]domain.ServiceOffering, error)
	GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error)
	GetSummaryByID(ctx context.Context, id int64) (*domain.ServiceSummary, error)
}

type servicesRepo struct {
	pool *pgxpool.Pool
}

func NewServicesRepo(pool *pgxpool.Pool) ServicesRepo {
	return &servicesRepo{pool: pool}
}

const serviceCols = `id, service_id, title, description, price, img`

func (r *servicesRepo) List(ctx context.Context) ([]domain.ServiceOffering, error) {
	// Storage order; callers apply the numeric price ordering.
	const q = `SELECT ` + serviceCols + ` FROM services ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []domain.ServiceOffering
	for rows.Next() {
		var s domain.ServiceOffering
		if err := rows.Scan(&s.ID, &s.ServiceID, &s.Title, &s.Description, &s.Price, &s.Img); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *servicesRepo) GetByID(ctx context.Context, id int64) (*domain.ServiceOffering, error) {
	const q = `SELECT ` + serviceCols + ` FROM services WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.ServiceOffering
	err := r.pool.QueryRow(ctx, q, id).Scan(&s.ID, &s.ServiceID, &s.Title, &s.Description, &s.Price, &s.Img)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *servicesRepo) GetSummaryByID(ctx context.Context, id int64) (*domain.ServiceSummary, error) {
	const q = `SELECT id, service_id, title, price, img FROM services WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.ServiceSummary
	err := r.pool.QueryRow(ctx, q, id).Scan(&s.ID, &s.ServiceID, &s.Title, &s.Price, &s.Img)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
