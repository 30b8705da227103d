package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-health/internal/domain/vaccines"
)

const vaccineColumns = `
	id, pet_id, name, type,
	administered_at, next_due, status,
	created_at, updated_at`

type VaccinesRepo struct {
	db *sql.DB
}

func NewVaccinesRepo(db *sql.DB) *VaccinesRepo {
	return &VaccinesRepo{db: db}
}

func (r *VaccinesRepo) Create(ctx context.Context, v vaccines.Vaccine) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_vaccines (`+vaccineColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		v.ID,
		v.PetID,
		v.Name,
		v.Type,
		v.AdministeredAt,
		toNullTime(v.NextDue),
		string(v.Status),
		v.CreatedAt,
		v.UpdatedAt,
	)
	return err
}

func (r *VaccinesRepo) Update(ctx context.Context, v vaccines.Vaccine) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pet_vaccines
		SET
			name = $2,
			type = $3,
			administered_at = $4,
			next_due = $5,
			status = $6,
			updated_at = $7
		WHERE id = $1
	`,
		v.ID,
		v.Name,
		v.Type,
		v.AdministeredAt,
		toNullTime(v.NextDue),
		string(v.Status),
		v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *VaccinesRepo) GetByID(ctx context.Context, id string) (vaccines.Vaccine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vaccines.Vaccine{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+vaccineColumns+` FROM pet_vaccines WHERE id = $1`, id)
	v, err := scanVaccine(row)
	if err != nil {
		return vaccines.Vaccine{}, notFound(err)
	}
	return v, nil
}

func (r *VaccinesRepo) ListByPet(ctx context.Context, petID string) ([]vaccines.Vaccine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+vaccineColumns+`
		FROM pet_vaccines
		WHERE pet_id = $1
		ORDER BY administered_at DESC
	`, strings.TrimSpace(petID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccines.Vaccine, 0)
	for rows.Next() {
		v, err := scanVaccine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VaccinesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pet_vaccines WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func scanVaccine(s rowScanner) (vaccines.Vaccine, error) {
	var v vaccines.Vaccine
	var due sql.NullTime
	var status string
	if err := s.Scan(
		&v.ID,
		&v.PetID,
		&v.Name,
		&v.Type,
		&v.AdministeredAt,
		&due,
		&status,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return vaccines.Vaccine{}, err
	}
	v.NextDue = fromNullTime(due)
	v.Status = vaccines.Status(status)
	return v, nil
}
