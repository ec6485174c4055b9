package mappingrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/weather-beats/internal/domain/mapping"
)

// PostgresRepository implements mapping.Store using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the mood_mappings table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS mood_mappings (
			id BIGSERIAL PRIMARY KEY,
			weather_condition TEXT NOT NULL,
			mood TEXT NOT NULL,
			suggested_genre TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS mood_mappings_lookup_idx ON mood_mappings (weather_condition, mood)`)
	return err
}

// Find fetches the earliest mapping for the condition and mood.
func (r *PostgresRepository) Find(ctx context.Context, condition, mood string) (mapping.Mapping, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT weather_condition, mood, suggested_genre
		FROM mood_mappings
		WHERE weather_condition = $1 AND mood = $2
		ORDER BY id
		LIMIT 1
	`, condition, mood)
	m, err := scanMapping(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return mapping.Mapping{}, false, nil
		}
		return mapping.Mapping{}, false, err
	}
	return m, true, nil
}

// Insert adds a mapping row.
func (r *PostgresRepository) Insert(ctx context.Context, m mapping.Mapping) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO mood_mappings (weather_condition, mood, suggested_genre)
		VALUES ($1, $2, $3)
	`, m.WeatherCondition, m.Mood, m.SuggestedGenre)
	return err
}

// List returns every mapping in insertion order.
func (r *PostgresRepository) List(ctx context.Context) ([]mapping.Mapping, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT weather_condition, mood, suggested_genre
		FROM mood_mappings
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []mapping.Mapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Count returns the number of stored mappings.
func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM mood_mappings`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMapping(row rowScanner) (mapping.Mapping, error) {
	var m mapping.Mapping
	if err := row.Scan(&m.WeatherCondition, &m.Mood, &m.SuggestedGenre); err != nil {
		return mapping.Mapping{}, err
	}
	return m, nil
}

var _ mapping.Store = (*PostgresRepository)(nil)
