// README: Cloud catalog store backed by PostgreSQL.
package cloud

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is applied by EnsureSchema. position keeps the source order.
const Schema = `
CREATE TABLE IF NOT EXISTS clouds (
    position          INTEGER PRIMARY KEY,
    cloud_name        TEXT NOT NULL UNIQUE,
    cloud_description TEXT NOT NULL,
    geo_latitude      DOUBLE PRECISION NOT NULL,
    geo_longitude     DOUBLE PRECISION NOT NULL
)`

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, Schema)
	return err
}

// FetchClouds reads the stored snapshot in source order.
func (s *Store) FetchClouds(ctx context.Context) ([]Cloud, error) {
	rows, err := s.db.Query(ctx, `
        SELECT cloud_name, cloud_description, geo_latitude, geo_longitude
        FROM clouds
        ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying clouds: %w", err)
	}
	defer rows.Close()

	var out []Cloud
	for rows.Next() {
		var c Cloud
		if err := rows.Scan(&c.Name, &c.Description, &c.Latitude, &c.Longitude); err != nil {
			return nil, fmt.Errorf("scanning cloud: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading clouds: %w", err)
	}
	return out, nil
}

// ReplaceAll swaps the stored snapshot for clouds in one transaction.
func (s *Store) ReplaceAll(ctx context.Context, clouds []Cloud) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM clouds`); err != nil {
		return fmt.Errorf("clearing clouds: %w", err)
	}

	batch := &pgx.Batch{}
	for i, c := range clouds {
		batch.Queue(`
            INSERT INTO clouds (position, cloud_name, cloud_description, geo_latitude, geo_longitude)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (cloud_name) DO NOTHING`,
			i, c.Name, c.Description, c.Latitude, c.Longitude,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting clouds: %w", err)
	}
	return tx.Commit(ctx)
}
