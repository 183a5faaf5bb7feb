package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// AdvanceCountdownsResult summarizes one countdown sweep.
type AdvanceCountdownsResult struct {
	Ticked    int
	Completed int
	Failed    int
}

// AdvanceCountdownsCommandHandler ticks every processing order once.
//
// Each order is ticked in its own transaction through the same version-guarded
// path as manual updates. A failing order is logged and skipped; the next sweep
// retries it.
type AdvanceCountdownsCommandHandler struct {
	uowFactory  LifecycleUoWFactory
	transitions orderTransitions
	logger      *slog.Logger
}

// NewAdvanceCountdownsCommandHandler creates a handler for countdown sweeps.
func NewAdvanceCountdownsCommandHandler(
	uowFactory LifecycleUoWFactory,
	publisher ports.EventPublisher,
	clock func() time.Time,
	logger *slog.Logger,
) AdvanceCountdownsCommandHandler {
	return AdvanceCountdownsCommandHandler{
		uowFactory:  uowFactory,
		transitions: newOrderTransitions(uowFactory, publisher, clock),
		logger:      logger.With("component", "AdvanceCountdownsCommandHandler"),
	}
}

// Handle runs one sweep. Only listing the processing orders can fail it as a whole.
func (h AdvanceCountdownsCommandHandler) Handle(ctx context.Context, cmd AdvanceCountdownsCommand) (AdvanceCountdownsResult, error) {
	if err := cmd.Validate(); err != nil {
		return AdvanceCountdownsResult{}, err
	}

	ids, err := h.uowFactory.Create().OrderRepository().GetIDsInStatus(ctx, order.Processing)
	if err != nil {
		return AdvanceCountdownsResult{}, fmt.Errorf("list processing orders: %w", err)
	}

	var result AdvanceCountdownsResult
	for _, id := range ids {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		_, tr, err := h.transitions.apply(ctx, id, order.ChangedByCountdown, tick)
		if err != nil {
			result.Failed++
			h.logger.WarnContext(ctx, "countdown tick failed", "orderId", id.String(), "error", err)
			continue
		}

		if tr.Mutated() {
			result.Ticked++
		}
		if tr.Completed() {
			result.Completed++
		}
	}

	return result, nil
}
