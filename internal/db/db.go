// Package db persists simulator state in PostgreSQL: item cooldown
// records (items) and the executed-event audit trail (event_journal).
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrItemNotFound is returned when no persisted item matches the key.
var ErrItemNotFound = errors.New("item not found")

// DB — пул соединений симулятора и репозитории поверх него.
// Один пул обслуживает и ItemRepository, и JournalRepository.
type DB struct {
	pool    *pgxpool.Pool
	items   *ItemRepository
	journal *JournalRepository
}

// New opens the pool, checks the server is reachable and wires the
// item and journal repositories onto it.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging %s: %w", pool.Config().ConnConfig.Host, err)
	}
	return &DB{
		pool:    pool,
		items:   NewItemRepository(pool),
		journal: NewJournalRepository(pool),
	}, nil
}

// Items returns the item cooldown store.
func (d *DB) Items() *ItemRepository {
	return d.items
}

// Journal returns the event journal sink.
func (d *DB) Journal() *JournalRepository {
	return d.journal
}

// Pool exposes the pool for ad-hoc queries in tests.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Close releases every pooled connection.
func (d *DB) Close() {
	d.pool.Close()
}
