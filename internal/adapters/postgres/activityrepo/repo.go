package activityrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/klxtra/activities-api/internal/adapters/postgres"
	"github.com/klxtra/activities-api/internal/domain"
	"github.com/klxtra/activities-api/internal/ports/out/activityrepo"
)

// Repo is a Postgres implementation of activityrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, a activityrepo.Activity) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	if a.ID == "" {
		return activityrepo.ErrAlreadyExists
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO activities (external_id, title, activity_type, activity_date, location, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		string(a.ID),
		a.Title,
		string(a.Type),
		a.Date,
		a.Location,
		a.Description,
		a.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return activityrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.ActivityID) (activityrepo.Activity, error) {
	if r.pool == nil {
		return activityrepo.Activity{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT external_id, title, activity_type, activity_date, location, description, created_at
		FROM activities
		WHERE external_id = $1
	`, string(id))
	return scanActivity(row)
}

func (r *Repo) ListAll(ctx context.Context) ([]activityrepo.Activity, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT external_id, title, activity_type, activity_date, location, description, created_at
		FROM activities
		ORDER BY created_at ASC, external_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activityrepo.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanActivity(row interface {
	Scan(dest ...any) error
}) (activityrepo.Activity, error) {
	var (
		externalID   string
		title        string
		activityType string
		activityDate string
		location     string
		description  string
		createdAt    time.Time
	)
	if err := row.Scan(&externalID, &title, &activityType, &activityDate, &location, &description, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return activityrepo.Activity{}, activityrepo.ErrNotFound
		}
		return activityrepo.Activity{}, err
	}
	return activityrepo.Activity{
		ID:          domain.ActivityID(externalID),
		Title:       title,
		Type:        domain.ActivityType(activityType),
		Date:        activityDate,
		Location:    location,
		Description: description,
		CreatedAt:   createdAt.UTC(),
	}, nil
}
