package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dealdeck/dealdeck/internal/domain"
)

// dealColumns must match the Scan order in scanDeal.
const dealColumns = `d.id, d.external_id, d.hotel_id, d.rating, d.room_type,
	d.price_per_night::float8, d.original_price::float8, d.discount_percent,
	d.checkin_date, d.checkout_date, d.is_available, d.categories,
	d.created_at, d.updated_at,
	h.id, h.name, h.city, h.country, h.phone, h.created_at, h.updated_at`

const dealFrom = ` FROM deals d JOIN hotels h ON h.id = d.hotel_id`

// Postgres error codes surfaced as domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DealRepo implements domain.DealRepository backed by PostgreSQL.
type DealRepo struct {
	pool *pgxpool.Pool
}

// NewDealRepo creates a DealRepo from the shared pool.
func NewDealRepo(pool *pgxpool.Pool) *DealRepo {
	return &DealRepo{pool: pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (domain.Deal, error) {
	var d domain.Deal
	var h domain.Hotel
	err := row.Scan(
		&d.ID, &d.ExternalID, &d.HotelID, &d.Rating, &d.RoomType,
		&d.PricePerNight, &d.OriginalPrice, &d.DiscountPercent,
		&d.CheckinDate, &d.CheckoutDate, &d.IsAvailable, &d.Categories,
		&d.CreatedAt, &d.UpdatedAt,
		&h.ID, &h.Name, &h.City, &h.Country, &h.Phone, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return domain.Deal{}, err
	}
	d.Hotel = &h
	return d, nil
}

// buildDealWhere assembles the WHERE clause for f. Returns the clause
// (empty when unfiltered) and its positional arguments.
func buildDealWhere(f domain.DealFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.City != "" {
		add("LOWER(h.city) = LOWER($%d)", f.City)
	}
	if f.RoomType != "" {
		add("d.room_type = $%d", f.RoomType)
	}
	if f.Available != nil {
		add("d.is_available = $%d", *f.Available)
	}
	if f.MinRating > 0 {
		add("d.rating >= $%d", f.MinRating)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// dealSortColumns whitelists ORDER BY targets. d.id is always appended as
// a tiebreaker so pagination is stable across identical sort keys.
var dealSortColumns = map[string]string{
	"":                   "d.id",
	domain.SortByID:      "d.id",
	domain.SortByRating:  "d.rating",
	domain.SortByPrice:   "d.price_per_night",
	domain.SortByCheckin: "d.checkin_date",
}

func buildDealOrder(f domain.DealFilter) (string, error) {
	col, ok := dealSortColumns[f.SortBy]
	if !ok {
		return "", fmt.Errorf("unsupported sort field %q", f.SortBy)
	}
	dir := "ASC"
	if f.Descending {
		dir = "DESC"
	}
	if col == "d.id" {
		return fmt.Sprintf(" ORDER BY d.id %s", dir), nil
	}
	return fmt.Sprintf(" ORDER BY %s %s, d.id ASC", col, dir), nil
}

func (r *DealRepo) List(ctx context.Context, f domain.DealFilter, skip, limit int) ([]domain.Deal, error) {
	where, args := buildDealWhere(f)
	order, err := buildDealOrder(f)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + dealColumns + dealFrom + where + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	defer rows.Close()

	var deals []domain.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		deals = append(deals, d)
	}
	return deals, rows.Err()
}

func (r *DealRepo) Count(ctx context.Context, f domain.DealFilter) (int64, error) {
	where, args := buildDealWhere(f)

	var total int64
	err := r.pool.QueryRow(ctx, "SELECT COUNT(d.id)"+dealFrom+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count deals: %w", err)
	}
	return total, nil
}

func (r *DealRepo) Get(ctx context.Context, id int64) (*domain.Deal, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+dealColumns+dealFrom+" WHERE d.id = $1", id)
	d, err := scanDeal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDealNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	return &d, nil
}

func (r *DealRepo) Create(ctx context.Context, d *domain.Deal) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO deals (external_id, hotel_id, rating, room_type, price_per_night,
			original_price, discount_percent, checkin_date, checkout_date,
			is_available, categories)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, d.ExternalID, d.HotelID, d.Rating, d.RoomType, d.PricePerNight,
		d.OriginalPrice, d.DiscountPercent, d.CheckinDate, d.CheckoutDate,
		d.IsAvailable, d.Categories,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return domain.ErrDuplicateDeal
			case pgForeignKeyViolation:
				return domain.ErrHotelNotFound
			}
		}
		return fmt.Errorf("failed to create deal: %w", err)
	}
	return nil
}

func (r *DealRepo) Update(ctx context.Context, d *domain.Deal) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE deals
		SET rating = $1, room_type = $2, price_per_night = $3, original_price = $4,
			discount_percent = $5, checkin_date = $6, checkout_date = $7,
			is_available = $8, categories = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`, d.Rating, d.RoomType, d.PricePerNight, d.OriginalPrice,
		d.DiscountPercent, d.CheckinDate, d.CheckoutDate,
		d.IsAvailable, d.Categories, d.ID,
	).Scan(&d.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrDealNotFound
		}
		return fmt.Errorf("failed to update deal: %w", err)
	}
	return nil
}

func (r *DealRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDealNotFound
	}
	return nil
}

func (r *DealRepo) AvgRatingByHotel(ctx context.Context, hotelIDs []int64) (map[int64]float64, error) {
	if len(hotelIDs) == 0 {
		return map[int64]float64{}, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT hotel_id, AVG(rating)::float8
		FROM deals
		WHERE hotel_id = ANY($1)
		GROUP BY hotel_id
	`, hotelIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer rows.Close()

	ratings := make(map[int64]float64, len(hotelIDs))
	for rows.Next() {
		var hotelID int64
		var avg float64
		if err := rows.Scan(&hotelID, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan rating row: %w", err)
		}
		ratings[hotelID] = avg
	}
	return ratings, rows.Err()
}

func (r *DealRepo) CityStats(ctx context.Context) ([]domain.CityStat, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT h.city, COUNT(d.id), AVG(d.price_per_night)::float8
		FROM deals d
		JOIN hotels h ON h.id = d.hotel_id
		GROUP BY h.city
		ORDER BY COUNT(d.id) DESC, h.city ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate city stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.CityStat
	for rows.Next() {
		var s domain.CityStat
		if err := rows.Scan(&s.City, &s.DealCount, &s.AvgPricePerNight); err != nil {
			return nil, fmt.Errorf("failed to scan city stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
