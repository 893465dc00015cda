package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/lunchrush/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createSessionsTable = `
    CREATE TABLE IF NOT EXISTS sessions (
        id          BIGSERIAL PRIMARY KEY,
        player_name TEXT    NOT NULL,
        money       INTEGER NOT NULL,
        time_played INTEGER NOT NULL,
        date_played TEXT    NOT NULL
    )`

type SessionRepository struct {
	pool *pgxpool.Pool
}

// Open connects to PostgreSQL and makes sure the sessions table exists. The
// caller owns the returned repository and must Close it.
func Open(ctx context.Context, dsn string) (*SessionRepository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	repo := NewSessionRepository(pool)
	if err := repo.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return repo, nil
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createSessionsTable); err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}
	return nil
}

func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
        INSERT INTO sessions (player_name, money, time_played, date_played)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	err := r.pool.QueryRow(ctx, query,
		session.PlayerName,
		session.Money,
		session.TimePlayed,
		session.DatePlayed,
	).Scan(&session.ID)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Top(ctx context.Context, limit int) ([]*models.Session, error) {
	query := `
        SELECT id, player_name, money, time_played, date_played
        FROM sessions
        ORDER BY money DESC, id ASC
        LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

func (r *SessionRepository) GetAll(ctx context.Context) ([]*models.Session, error) {
	query := `
        SELECT id, player_name, money, time_played, date_played
        FROM sessions
        ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanSessions(rows)
}

func (r *SessionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM sessions").Scan(&count)
	return count, err
}

func (r *SessionRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE sessions RESTART IDENTITY")
	return err
}

func (r *SessionRepository) Close() error {
	r.pool.Close()
	return nil
}

func scanSessions(rows pgx.Rows) ([]*models.Session, error) {
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session := &models.Session{}
		err := rows.Scan(
			&session.ID,
			&session.PlayerName,
			&session.Money,
			&session.TimePlayed,
			&session.DatePlayed,
		)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}
