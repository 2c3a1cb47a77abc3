package postgres

import (
	"context"
	"errors"
	"fmt"
	"property-listing-service/internal/core/domain"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mmcloughlin/geohash"
)

// Точность geohash достаточна для поиска "в том же районе" (~5 км).
const geohashPrecision = 5

// ListingRepository реализует ListingStoragePort поверх PostgreSQL (pgx).
type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) (*ListingRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool cannot be nil")
	}
	return &ListingRepository{pool: pool}, nil
}

// EnsureSchema создает таблицу объявлений, если ее еще нет.
func (r *ListingRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS listings (
			id             UUID PRIMARY KEY,
			property_type  TEXT NOT NULL,
			address        TEXT NOT NULL,
			city           TEXT NOT NULL,
			state          TEXT NOT NULL,
			zip_code       TEXT NOT NULL,
			country        TEXT NOT NULL DEFAULT 'USA',
			latitude       DOUBLE PRECISION,
			longitude      DOUBLE PRECISION,
			geohash        VARCHAR(12),
			price          DOUBLE PRECISION NOT NULL,
			area           DOUBLE PRECISION NOT NULL,
			bedrooms       INT NOT NULL DEFAULT 0,
			bathrooms      INT NOT NULL DEFAULT 0,
			description    TEXT NOT NULL DEFAULT '',
			features       TEXT[] NOT NULL DEFAULT '{}',
			photos         TEXT[] NOT NULL DEFAULT '{}',
			agent_name     TEXT NOT NULL,
			agent_email    TEXT NOT NULL,
			agent_phone    TEXT NOT NULL,
			status         TEXT NOT NULL DEFAULT 'For Sale',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_listings_city ON listings (city);
		CREATE INDEX IF NOT EXISTS idx_listings_geohash ON listings (geohash);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure listings schema: %w", err)
	}
	return nil
}

const listingColumns = `id, property_type, address, city, state, zip_code, country,
	latitude, longitude, price, area, bedrooms, bathrooms, description,
	features, photos, agent_name, agent_email, agent_phone, status,
	created_at, updated_at`

func (r *ListingRepository) Create(ctx context.Context, listing domain.Listing) (*domain.Listing, error) {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	now := time.Now().UTC()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	_, err := r.pool.Exec(ctx, `
		INSERT INTO listings (
			id, property_type, address, city, state, zip_code, country,
			latitude, longitude, geohash, price, area, bedrooms, bathrooms,
			description, features, photos, agent_name, agent_email, agent_phone,
			status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)`,
		listing.ID, listing.PropertyType,
		listing.Location.Address, listing.Location.City, listing.Location.State,
		listing.Location.ZipCode, listing.Location.Country,
		listing.Location.Latitude, listing.Location.Longitude, locationGeohash(listing.Location),
		listing.Price, listing.Area, listing.Bedrooms, listing.Bathrooms,
		listing.Description, listing.Features, listing.Photos,
		listing.Agent.Name, listing.Agent.Email, listing.Agent.Phone,
		listing.Status, listing.CreatedAt, listing.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert listing: %w", err)
	}
	return &listing, nil
}

func (r *ListingRepository) Update(ctx context.Context, listing domain.Listing) (*domain.Listing, error) {
	listing.UpdatedAt = time.Now().UTC()

	tag, err := r.pool.Exec(ctx, `
		UPDATE listings SET
			property_type = $2, address = $3, city = $4, state = $5,
			zip_code = $6, country = $7, latitude = $8, longitude = $9,
			geohash = $10, price = $11, area = $12, bedrooms = $13,
			bathrooms = $14, description = $15, features = $16, photos = $17,
			agent_name = $18, agent_email = $19, agent_phone = $20,
			status = $21, updated_at = $22
		WHERE id = $1`,
		listing.ID, listing.PropertyType,
		listing.Location.Address, listing.Location.City, listing.Location.State,
		listing.Location.ZipCode, listing.Location.Country,
		listing.Location.Latitude, listing.Location.Longitude, locationGeohash(listing.Location),
		listing.Price, listing.Area, listing.Bedrooms, listing.Bathrooms,
		listing.Description, listing.Features, listing.Photos,
		listing.Agent.Name, listing.Agent.Email, listing.Agent.Phone,
		listing.Status, listing.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return &listing, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)

	listing, err := scanListing(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query listing %s: %w", id, err)
	}
	return listing, nil
}

func (r *ListingRepository) Find(ctx context.Context, filters domain.ListingFilters) ([]domain.Listing, error) {
	// Динамически собираем WHERE из заданных фильтров.
	conditions := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)

	addCondition := func(expr string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(expr, len(args)))
	}

	if filters.City != "" {
		addCondition("city ILIKE $%d", filters.City)
	}
	if filters.State != "" {
		addCondition("state ILIKE $%d", filters.State)
	}
	if filters.Status != "" {
		addCondition("status = $%d", filters.Status)
	}
	if filters.PropertyType != "" {
		addCondition("property_type = $%d", filters.PropertyType)
	}
	if filters.PriceMin != nil {
		addCondition("price >= $%d", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		addCondition("price <= $%d", *filters.PriceMax)
	}

	query := `SELECT ` + listingColumns + ` FROM listings`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	listings := make([]domain.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		listings = append(listings, *listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listing rows: %w", err)
	}
	return listings, nil
}

func (r *ListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// locationGeohash вычисляет geohash по координатам; без координат — NULL.
func locationGeohash(loc domain.Location) *string {
	if loc.Latitude == nil || loc.Longitude == nil {
		return nil
	}
	gh := geohash.EncodeWithPrecision(*loc.Latitude, *loc.Longitude, geohashPrecision)
	return &gh
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	err := row.Scan(
		&l.ID, &l.PropertyType,
		&l.Location.Address, &l.Location.City, &l.Location.State,
		&l.Location.ZipCode, &l.Location.Country,
		&l.Location.Latitude, &l.Location.Longitude,
		&l.Price, &l.Area, &l.Bedrooms, &l.Bathrooms, &l.Description,
		&l.Features, &l.Photos,
		&l.Agent.Name, &l.Agent.Email, &l.Agent.Phone,
		&l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
