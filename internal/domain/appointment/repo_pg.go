package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

// NewRepository returns the pgx-backed appointment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const appointmentColumns = `id, user_id, primary_physician, schedule, status,
	reason, note, cancellation_reason, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.UserID, &a.PrimaryPhysician, &a.Schedule, &a.Status,
		&a.Reason, &a.Note, &a.CancellationReason, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	query := `
		INSERT INTO appointments (user_id, primary_physician, schedule, status, reason, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		a.UserID, a.PrimaryPhysician, a.Schedule, a.Status, a.Reason, a.Note,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	a, err := scanAppointment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (r *repoPG) Update(ctx context.Context, id uuid.UUID, fields UpdateFields) (*Appointment, error) {
	set := []string{"updated_at = now()"}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if fields.PrimaryPhysician != nil {
		add("primary_physician", *fields.PrimaryPhysician)
	}
	if fields.Schedule != nil {
		add("schedule", *fields.Schedule)
	}
	if fields.Status != nil {
		add("status", *fields.Status)
	}
	if fields.CancellationReason != nil {
		add("cancellation_reason", *fields.CancellationReason)
	}
	if fields.Note != nil {
		add("note", *fields.Note)
	}

	query := `UPDATE appointments SET ` + strings.Join(set, ", ") +
		` WHERE id = $1 RETURNING ` + appointmentColumns
	a, err := scanAppointment(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUpdateFailed
		}
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return a, nil
}

func (r *repoPG) List(ctx context.Context) ([]*Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return out, nil
}
