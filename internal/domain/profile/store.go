package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const profileColumns = `
    id, first_name, last_name, email, phone, department, position,
    address, city, state, zip_code, country, photo_url, created_at, updated_at`

func scanProfile(row pgx.Row) (Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
		&p.Department, &p.Position, &p.Address, &p.City, &p.State,
		&p.ZipCode, &p.Country, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Get returns the singleton row. The singleton marker, not a magic id,
// selects it.
func (s *Store) Get(ctx context.Context) (Profile, error) {
	p, err := scanProfile(s.DB.QueryRow(ctx, `
    SELECT`+profileColumns+`
    FROM profile
    WHERE singleton
  `))
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

func (s *Store) Update(ctx context.Context, p Profile) (Profile, error) {
	updated, err := scanProfile(s.DB.QueryRow(ctx, `
    UPDATE profile
    SET first_name = $1,
        last_name = $2,
        email = $3,
        phone = $4,
        department = $5,
        position = $6,
        address = $7,
        city = $8,
        state = $9,
        zip_code = $10,
        country = $11,
        updated_at = now()
    WHERE singleton
    RETURNING`+profileColumns+`
  `, p.FirstName, p.LastName, p.Email, p.Phone, p.Department, p.Position,
		p.Address, p.City, p.State, p.ZipCode, p.Country))
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return updated, err
}

// SetPhotoURL touches only the photo column so a failed upload can never
// clobber the rest of the row.
func (s *Store) SetPhotoURL(ctx context.Context, photoURL string) error {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE profile
    SET photo_url = $1, updated_at = now()
    WHERE singleton
  `, photoURL)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
