package studentrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/klxtra/activities-api/internal/domain"
	"github.com/klxtra/activities-api/internal/ports/out/studentrepo"
)

// Repo is a Postgres implementation of studentrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Upsert(ctx context.Context, p studentrepo.StudentProfile) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO students (subject, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (subject) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
	`,
		string(p.Subject),
		p.Name,
		p.Email,
		p.CreatedAt.UTC(),
		p.UpdatedAt.UTC(),
	)
	return err
}

func (r *Repo) GetBySubject(ctx context.Context, subject domain.SubjectID) (studentrepo.StudentProfile, error) {
	if r.pool == nil {
		return studentrepo.StudentProfile{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT subject, name, email, created_at, updated_at
		FROM students
		WHERE subject = $1
	`, string(subject))
	return scanProfile(row)
}

func (r *Repo) ListAll(ctx context.Context) ([]studentrepo.StudentProfile, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT subject, name, email, created_at, updated_at
		FROM students
		ORDER BY lower(name) ASC, subject ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]studentrepo.StudentProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProfile(row interface {
	Scan(dest ...any) error
}) (studentrepo.StudentProfile, error) {
	var (
		subject   string
		name      string
		email     string
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&subject, &name, &email, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return studentrepo.StudentProfile{}, studentrepo.ErrNotFound
		}
		return studentrepo.StudentProfile{}, err
	}
	return studentrepo.StudentProfile{
		Subject:   domain.SubjectID(subject),
		Name:      name,
		Email:     email,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}, nil
}
