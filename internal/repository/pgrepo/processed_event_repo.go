package pgrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/pos-ledger/pkg/uow"
)

type ProcessedEventRepository struct {
	conn uow.DBTX
}

func NewProcessedEventRepository(conn uow.DBTX) *ProcessedEventRepository {
	return &ProcessedEventRepository{conn: conn}
}

// MarkProcessed запоминает событие. Возвращает false, если событие с таким id уже было обработано.
func (r *ProcessedEventRepository) MarkProcessed(ctx context.Context, eventID uuid.UUID) (bool, error) {
	tag, err := r.conn.Exec(ctx,
		`INSERT INTO processed_events (event_id) VALUES ($1) ON CONFLICT (event_id) DO NOTHING`,
		eventID.String())
	if err != nil {
		return false, convertErr(err, "marking event %s processed", eventID)
	}
	return tag.RowsAffected() == 1, nil
}
