package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-health/internal/domain/medications"
)

const medicationColumns = `
	id, pet_id, name, dosage, frequency,
	start_date, end_date,
	created_at, updated_at`

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_medications (`+medicationColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		m.ID,
		m.PetID,
		m.Name,
		m.Dosage,
		m.Frequency,
		m.StartDate,
		toNullTime(m.EndDate),
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pet_medications
		SET
			name = $2,
			dosage = $3,
			frequency = $4,
			start_date = $5,
			end_date = $6,
			updated_at = $7
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.Dosage,
		m.Frequency,
		m.StartDate,
		toNullTime(m.EndDate),
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *MedicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medications.Medication{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+medicationColumns+` FROM pet_medications WHERE id = $1`, id)
	m, err := scanMedication(row)
	if err != nil {
		return medications.Medication{}, notFound(err)
	}
	return m, nil
}

func (r *MedicationsRepo) ListByPet(ctx context.Context, petID string) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicationColumns+`
		FROM pet_medications
		WHERE pet_id = $1
		ORDER BY start_date DESC
	`, strings.TrimSpace(petID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pet_medications WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func scanMedication(s rowScanner) (medications.Medication, error) {
	var m medications.Medication
	var end sql.NullTime
	if err := s.Scan(
		&m.ID,
		&m.PetID,
		&m.Name,
		&m.Dosage,
		&m.Frequency,
		&m.StartDate,
		&end,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return medications.Medication{}, err
	}
	m.EndDate = fromNullTime(end)
	return m, nil
}
