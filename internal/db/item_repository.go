package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/rptrunk/internal/game/item"
	"github.com/udisondev/rptrunk/internal/model"
)

// ItemRepository хранит персистентную форму предметов (item.Record).
// Ключ — (owner_id, name); привязка к сущности восстанавливается при загрузке.
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository создаёт новый ItemRepository.
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

const upsertItemQuery = `
	INSERT INTO items (owner_id, name, amount, current_tick, ability, conditional, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, now())
	ON CONFLICT (owner_id, name)
	DO UPDATE SET amount = $3, current_tick = $4, ability = $5, conditional = $6, updated_at = now()
`

// Save upserts one item under its owner.
func (r *ItemRepository) Save(ctx context.Context, owner model.EntityID, it *item.Item) error {
	args, err := itemArgs(owner, it.Record())
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, upsertItemQuery, args...); err != nil {
		return fmt.Errorf("upserting item %q for owner %d: %w", it.Name, owner, err)
	}
	return nil
}

// SaveAll upserts every bound item in one transaction.
// Unbound items are skipped.
func (r *ItemRepository) SaveAll(ctx context.Context, items []*item.Item) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		// Rollback after commit is expected to fail
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for _, it := range items {
		owner, ok := it.Entity()
		if !ok {
			continue
		}
		args, err := itemArgs(owner, it.Record())
		if err != nil {
			return err
		}
		batch.Queue(upsertItemQuery, args...)
	}

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upserting items batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing items save: %w", err)
	}
	return nil
}

// Load returns the item bound to owner.
// Returns ErrItemNotFound if no row matches.
func (r *ItemRepository) Load(ctx context.Context, owner model.EntityID, name string) (*item.Item, error) {
	row := r.db.QueryRow(ctx, `
		SELECT name, amount, current_tick, ability, conditional
		FROM items
		WHERE owner_id = $1 AND name = $2
	`, int64(owner), name)

	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: owner %d name %q", ErrItemNotFound, owner, name)
		}
		return nil, fmt.Errorf("querying item %q for owner %d: %w", name, owner, err)
	}
	it.Bind(owner)
	return it, nil
}

// LoadByOwner returns every item of owner ordered by name.
func (r *ItemRepository) LoadByOwner(ctx context.Context, owner model.EntityID) ([]*item.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT name, amount, current_tick, ability, conditional
		FROM items
		WHERE owner_id = $1
		ORDER BY name
	`, int64(owner))
	if err != nil {
		return nil, fmt.Errorf("querying items for owner %d: %w", owner, err)
	}
	defer rows.Close()

	items := make([]*item.Item, 0, 8)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		it.Bind(owner)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}
	return items, nil
}

// Delete removes one item of owner.
func (r *ItemRepository) Delete(ctx context.Context, owner model.EntityID, name string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE owner_id = $1 AND name = $2`, int64(owner), name)
	if err != nil {
		return fmt.Errorf("deleting item %q for owner %d: %w", name, owner, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: owner %d name %q", ErrItemNotFound, owner, name)
	}
	return nil
}

func itemArgs(owner model.EntityID, rec item.Record) ([]any, error) {
	var abilityJSON []byte
	if rec.Ability != nil {
		b, err := json.Marshal(rec.Ability)
		if err != nil {
			return nil, fmt.Errorf("encoding ability of item %q: %w", rec.Name, err)
		}
		abilityJSON = b
	}
	condJSON, err := json.Marshal(rec.Conditional)
	if err != nil {
		return nil, fmt.Errorf("encoding conditional of item %q: %w", rec.Name, err)
	}
	return []any{int64(owner), rec.Name, rec.Amount, int64(rec.CurrentTick), abilityJSON, condJSON}, nil
}

func scanItem(row pgx.Row) (*item.Item, error) {
	var rec item.Record
	var currentTick int64
	var abilityJSON, condJSON []byte

	if err := row.Scan(&rec.Name, &rec.Amount, &currentTick, &abilityJSON, &condJSON); err != nil {
		return nil, err
	}
	rec.CurrentTick = model.Tick(currentTick)

	if len(abilityJSON) > 0 {
		var a model.Ability
		if err := json.Unmarshal(abilityJSON, &a); err != nil {
			return nil, fmt.Errorf("decoding ability of item %q: %w", rec.Name, err)
		}
		rec.Ability = &a
	}
	if len(condJSON) > 0 {
		if err := json.Unmarshal(condJSON, &rec.Conditional); err != nil {
			return nil, fmt.Errorf("decoding conditional of item %q: %w", rec.Name, err)
		}
	}
	return item.FromRecord(rec), nil
}
