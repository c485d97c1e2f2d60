package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/rptrunk/internal/game/event"
	"github.com/udisondev/rptrunk/internal/model"
)

// EffectRow — одна запись ConflictResult в журнале.
type EffectRow struct {
	EntityID model.EntityID `json:"entity_id"`
	Change   model.Stats    `json:"change"`
}

// JournalRow is one persisted event outcome.
type JournalRow struct {
	ID          uuid.UUID
	Tick        int64
	InitiatorID model.EntityID
	Ability     string
	Effects     []EffectRow
	CreatedAt   time.Time
}

// JournalRepository persists executed events as an audit trail.
// Implements simulation.Sink.
type JournalRepository struct {
	db *pgxpool.Pool
}

// NewJournalRepository создаёт новый JournalRepository.
func NewJournalRepository(db *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{db: db}
}

// Append stores one event outcome recorded at tick.
func (r *JournalRepository) Append(ctx context.Context, tick int64, res event.EventResult) error {
	effects := make([]EffectRow, 0, len(res.Effects))
	for _, eff := range res.Effects {
		effects = append(effects, EffectRow{EntityID: eff.EntityID(), Change: eff.Change})
	}
	effectsJSON, err := json.Marshal(effects)
	if err != nil {
		return fmt.Errorf("encoding effects of event %s: %w", res.ID, err)
	}

	var initiator model.EntityID
	var ability string
	if res.Event != nil {
		initiator = res.Event.InitiatorID()
		if a := res.Event.Ability(); a != nil {
			ability = a.Name
		}
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO event_journal (id, tick, initiator_id, ability, effects)
		VALUES ($1, $2, $3, $4, $5)
	`, res.ID.String(), tick, int64(initiator), ability, effectsJSON)
	if err != nil {
		return fmt.Errorf("inserting event %s: %w", res.ID, err)
	}
	return nil
}

// ListByInitiator returns up to limit events started by initiator, oldest first.
func (r *JournalRepository) ListByInitiator(ctx context.Context, initiator model.EntityID, limit int) ([]JournalRow, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `
		SELECT id::text, tick, initiator_id, ability, effects, created_at
		FROM event_journal
		WHERE initiator_id = $1
		ORDER BY tick, created_at
		LIMIT $2
	`, int64(initiator), limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal for initiator %d: %w", initiator, err)
	}
	defer rows.Close()

	out := make([]JournalRow, 0, limit)
	for rows.Next() {
		var (
			row         JournalRow
			id          string
			initiatorID int64
			effectsJSON []byte
		)
		if err := rows.Scan(&id, &row.Tick, &initiatorID, &row.Ability, &effectsJSON, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		row.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parsing journal id %q: %w", id, err)
		}
		row.InitiatorID = model.EntityID(initiatorID)
		if err := json.Unmarshal(effectsJSON, &row.Effects); err != nil {
			return nil, fmt.Errorf("decoding effects of event %s: %w", id, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal rows: %w", err)
	}
	return out, nil
}
