package events

import (
	"context"

	"github.com/google/uuid"

	"github.com/fsdevblog/pos-ledger/internal/service"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// SettlementHandler применяет события ровно один раз по их идентификатору.
type SettlementHandler interface {
	ApplyCompletedOrder(
		ctx context.Context,
		eventID uuid.UUID,
		order service.CompletedOrder,
	) (*service.SettlementResult, error)
	ApplyDuePaid(ctx context.Context, eventID uuid.UUID, event service.DuePaid) (*service.SettlementResult, error)
}
