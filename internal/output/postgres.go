package output

import (
	"context"
	"fmt"

	"github.com/chrisdamba/deliverysim/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresOutput streams every observable event into a single
// simulation_events table, one row per event with the raw payload kept as
// jsonb for ad-hoc querying.
type PostgresOutput struct {
	pool *pgxpool.Pool
}

const createEventsTable = `
	CREATE TABLE IF NOT EXISTS simulation_events (
		id BIGSERIAL PRIMARY KEY,
		topic TEXT NOT NULL,
		absolute_minute BIGINT NOT NULL,
		sim_time TEXT NOT NULL,
		event_type TEXT NOT NULL,
		request_id TEXT,
		payload JSONB NOT NULL,
		inserted_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

func NewPostgresOutput(ctx context.Context, config *models.DatabaseConfig) (*PostgresOutput, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
	)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	if _, err := pool.Exec(ctx, createEventsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error creating simulation_events table: %w", err)
	}

	return &PostgresOutput{pool: pool}, nil
}

func (p *PostgresOutput) WriteMessage(topic string, msg []byte) error {
	_, err := p.pool.Exec(context.Background(), `
		INSERT INTO simulation_events (topic, absolute_minute, sim_time, event_type, request_id, payload)
		SELECT $1,
		       (payload->>'absoluteMinute')::bigint,
		       payload->>'simTime',
		       payload->>'eventType',
		       payload->>'requestId',
		       payload
		FROM (SELECT $2::jsonb AS payload) AS src`,
		topic, string(msg))
	if err != nil {
		return fmt.Errorf("failed to insert event for topic %s: %w", topic, err)
	}
	return nil
}

func (p *PostgresOutput) Close() error {
	p.pool.Close()
	return nil
}
