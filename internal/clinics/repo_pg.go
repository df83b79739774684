package clinics

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// List returns clinics matching the filter, cheapest tier first.
func (r *PGRepo) List(ctx context.Context, filter Filter) ([]Clinic, error) {
	const query = `
SELECT id, name, county, location_coords, available_services, price_band, contact_phone, is_nhif_accredited, created_at, updated_at
FROM clinics
WHERE ($1 = '' OR county ILIKE $1)
  AND ($2 = '' OR available_services ILIKE '%' || $2 || '%')
  AND ($3 = '' OR price_band = $3)
ORDER BY CASE price_band
  WHEN 'FREE' THEN 0
  WHEN 'LOW' THEN 1
  WHEN 'MEDIUM' THEN 2
  ELSE 3
END, name`

	rows, err := r.DB.QueryContext(ctx, query, filter.County, filter.Service, string(filter.PriceBand))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []Clinic{}
	for rows.Next() {
		clinic, err := scanClinic(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, clinic)
	}
	return results, rows.Err()
}

// GetByID returns a clinic by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Clinic, error) {
	const query = `
SELECT id, name, county, location_coords, available_services, price_band, contact_phone, is_nhif_accredited, created_at, updated_at
FROM clinics
WHERE id = $1
LIMIT 1`

	clinic, err := scanClinic(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Clinic{}, ErrNotFound
		}
		return Clinic{}, err
	}
	return clinic, nil
}

// Create inserts a new clinic.
func (r *PGRepo) Create(ctx context.Context, clinic Clinic) error {
	const query = `
INSERT INTO clinics (id, name, county, location_coords, available_services, price_band, contact_phone, is_nhif_accredited)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		clinic.ID,
		clinic.Name,
		clinic.County,
		nullableString(clinic.LocationCoords),
		clinic.AvailableServices,
		string(clinic.PriceBand),
		nullableString(clinic.ContactPhone),
		clinic.IsNHIFAccredited,
	)
	return err
}

// Update replaces an existing clinic row.
func (r *PGRepo) Update(ctx context.Context, clinic Clinic) error {
	const query = `
UPDATE clinics
SET name = $2,
    county = $3,
    location_coords = $4,
    available_services = $5,
    price_band = $6,
    contact_phone = $7,
    is_nhif_accredited = $8,
    updated_at = now()
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		clinic.ID,
		clinic.Name,
		clinic.County,
		nullableString(clinic.LocationCoords),
		clinic.AvailableServices,
		string(clinic.PriceBand),
		nullableString(clinic.ContactPhone),
		clinic.IsNHIFAccredited,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a clinic row.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM clinics WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClinic(row rowScanner) (Clinic, error) {
	var c Clinic
	var coords sql.NullString
	var phone sql.NullString
	var band string
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.County,
		&coords,
		&c.AvailableServices,
		&band,
		&phone,
		&c.IsNHIFAccredited,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return Clinic{}, err
	}
	if coords.Valid {
		c.LocationCoords = coords.String
	}
	if phone.Valid {
		c.ContactPhone = phone.String
	}
	c.PriceBand = PriceBand(band)
	return c, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
