package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-health/internal/domain/activities"
)

const activityColumns = `
	id, pet_id,
	type, title, description,
	occurred_at, recorded_at,
	actor_id, source`

type ActivitiesRepo struct {
	db *sql.DB
}

func NewActivitiesRepo(db *sql.DB) *ActivitiesRepo {
	return &ActivitiesRepo{db: db}
}

func (r *ActivitiesRepo) Create(ctx context.Context, a activities.Activity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_activities (`+activityColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		a.ID,
		a.PetID,
		string(a.Type),
		a.Title,
		a.Description,
		a.OccurredAt,
		a.RecordedAt,
		a.ActorID,
		string(a.Source),
	)
	return err
}

func (r *ActivitiesRepo) GetByID(ctx context.Context, id string) (activities.Activity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return activities.Activity{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM pet_activities WHERE id = $1`, id)
	a, err := scanActivity(row)
	if err != nil {
		return activities.Activity{}, notFound(err)
	}
	return a, nil
}

func (r *ActivitiesRepo) ListByPet(ctx context.Context, petID string, filter activities.ListFilter) ([]activities.Activity, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}

	query, args := activityListQuery(petID, filter)
	return r.query(ctx, query, args...)
}

// ListAllByPet no lleva LIMIT: el score necesita el historial completo.
func (r *ActivitiesRepo) ListAllByPet(ctx context.Context, petID string) ([]activities.Activity, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, nil
	}
	return r.query(ctx, `SELECT `+activityColumns+` FROM pet_activities WHERE pet_id = $1 ORDER BY occurred_at DESC`, petID)
}

func (r *ActivitiesRepo) query(ctx context.Context, query string, args ...any) ([]activities.Activity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activities.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *ActivitiesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pet_activities WHERE id = $1`, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// activityListQuery arma el SELECT con los filtros opcionales y sus args posicionales.
func activityListQuery(petID string, filter activities.ListFilter) (string, []any) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + activityColumns + ` FROM pet_activities WHERE pet_id = $1`)

	args := []any{petID}
	argN := 2

	if len(filter.Types) > 0 {
		placeholders := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(t))
			argN++
		}
		sb.WriteString(" AND type IN (" + strings.Join(placeholders, ",") + ")")
	}

	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND occurred_at >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND occurred_at <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	// q: búsqueda simple en title + description
	if q := strings.TrimSpace(filter.Query); q != "" {
		sb.WriteString(fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argN, argN))
		args = append(args, "%"+q+"%")
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > activities.MaxLimit {
		limit = activities.MaxLimit
	}

	sb.WriteString(" ORDER BY occurred_at DESC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	return sb.String(), args
}

func scanActivity(s rowScanner) (activities.Activity, error) {
	var a activities.Activity
	var typ, source string
	if err := s.Scan(
		&a.ID,
		&a.PetID,
		&typ,
		&a.Title,
		&a.Description,
		&a.OccurredAt,
		&a.RecordedAt,
		&a.ActorID,
		&source,
	); err != nil {
		return activities.Activity{}, err
	}
	a.Type = activities.Type(typ)
	a.Source = activities.Source(source)
	return a, nil
}
