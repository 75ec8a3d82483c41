package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealdeck/dealdeck/internal/domain"
)

// HotelRepo implements domain.HotelRepository backed by PostgreSQL.
type HotelRepo struct {
	pool *pgxpool.Pool
}

// NewHotelRepo creates a HotelRepo from the shared pool.
func NewHotelRepo(pool *pgxpool.Pool) *HotelRepo {
	return &HotelRepo{pool: pool}
}

func (r *HotelRepo) Get(ctx context.Context, id int64) (*domain.Hotel, error) {
	var h domain.Hotel
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, city, country, phone, created_at, updated_at
		FROM hotels
		WHERE id = $1
	`, id).Scan(&h.ID, &h.Name, &h.City, &h.Country, &h.Phone, &h.CreatedAt, &h.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}
	return &h, nil
}

func (r *HotelRepo) UpsertByName(ctx context.Context, h *domain.Hotel) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO hotels (name, city, country, phone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET
			city = EXCLUDED.city,
			country = EXCLUDED.country,
			phone = EXCLUDED.phone,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`, h.Name, h.City, h.Country, h.Phone).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert hotel: %w", err)
	}
	return nil
}
