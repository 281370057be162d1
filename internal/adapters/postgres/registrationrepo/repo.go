package registrationrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/klxtra/activities-api/internal/adapters/postgres"
	"github.com/klxtra/activities-api/internal/domain"
	"github.com/klxtra/activities-api/internal/ports/out/registrationrepo"
)

// Repo is a Postgres implementation of registrationrepo.Repository. The
// bigserial seq column fixes insertion order so listings stay stable across
// equal timestamps.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, reg registrationrepo.Registration) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	var registeredAt *time.Time
	if !reg.RegisteredAt.IsZero() {
		t := reg.RegisteredAt.Time()
		registeredAt = &t
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO registrations (external_id, activity_id, student_name, student_roll, status, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		string(reg.ID),
		string(reg.ActivityID),
		reg.StudentName,
		reg.StudentRoll,
		reg.Status,
		registeredAt,
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return registrationrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) ListAll(ctx context.Context) ([]registrationrepo.Registration, error) {
	return r.list(ctx, `
		SELECT external_id, activity_id, student_name, student_roll, status, registered_at
		FROM registrations
		ORDER BY seq ASC
	`)
}

func (r *Repo) ListByRoll(ctx context.Context, roll string) ([]registrationrepo.Registration, error) {
	return r.list(ctx, `
		SELECT external_id, activity_id, student_name, student_roll, status, registered_at
		FROM registrations
		WHERE student_roll = $1
		ORDER BY seq ASC
	`, roll)
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]registrationrepo.Registration, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]registrationrepo.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRegistration(row interface {
	Scan(dest ...any) error
}) (registrationrepo.Registration, error) {
	var (
		externalID   string
		activityID   string
		studentName  string
		studentRoll  string
		status       string
		registeredAt *time.Time
	)
	if err := row.Scan(&externalID, &activityID, &studentName, &studentRoll, &status, &registeredAt); err != nil {
		return registrationrepo.Registration{}, err
	}
	var ts domain.Timestamp
	if registeredAt != nil {
		ts = domain.NewTimestamp(*registeredAt)
	}
	return registrationrepo.Registration{
		ID:           domain.RegistrationID(externalID),
		ActivityID:   domain.ActivityID(activityID),
		StudentName:  studentName,
		StudentRoll:  studentRoll,
		Status:       status,
		RegisteredAt: ts,
	}, nil
}
