package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/core/domain/model/billing"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// CreateOrderCommandHandler places an order: it prices the lines from the
// menu catalog, takes a chef slot, reserves the table of a dine-in order and
// stores the order as pending.
//
// Chef assignment and table reservation commit on their own, before the order
// row exists. If a later step fails both are handed back, so a failed creation
// never leaves a chef slot or a table allocated.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, allocator, tables, bus, billing.DefaultCalculator(), time.Now, logger)
//	created, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrCapacity):
//	    // no active chef
//	case errors.Is(err, errs.ErrConflict):
//	    // table taken or too small
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	chefs      ChefAssigner
	tables     TableReserver
	publisher  ports.EventPublisher
	calculator billing.Calculator
	clock      func() time.Time
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	chefs ChefAssigner,
	tables TableReserver,
	publisher ports.EventPublisher,
	calculator billing.Calculator,
	clock func() time.Time,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		chefs:      chefs,
		tables:     tables,
		publisher:  publisher,
		calculator: calculator,
		clock:      clock,
		logger:     logger.With("component", "CreateOrderCommandHandler"),
	}
}

// Handle processes the order creation command and returns the stored order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	catalog, err := uow.MenuCatalog().GetByIDs(ctx, cmd.MenuItemIDs())
	if err != nil {
		return nil, fmt.Errorf("load menu items: %w", err)
	}

	lines, processingTime, err := priceLines(cmd.Items(), catalog)
	if err != nil {
		return nil, err
	}

	now := h.clock().UTC()
	draft := order.Draft{
		ID:                  kernel.NewUUID(),
		Number:              order.NewNumber(now, nil),
		Type:                cmd.OrderType(),
		TableNumber:         cmd.TableNumber(),
		NumberOfMembers:     cmd.NumberOfMembers(),
		CustomerName:        cmd.CustomerName(),
		CustomerPhone:       cmd.CustomerPhone(),
		CustomerAddress:     cmd.CustomerAddress(),
		CookingInstructions: cmd.CookingInstructions(),
		Items:               lines,
		ProcessingTime:      processingTime,
		CreatedAt:           now,
	}

	// reject malformed orders before anything is allocated
	if _, err := order.NewOrder(draft, h.calculator); err != nil {
		return nil, err
	}

	chefID, err := h.chefs.Assign(ctx)
	if err != nil {
		return nil, err
	}
	draft.ChefID = &chefID

	created, err := h.placeWithChef(ctx, uow, draft)
	if err != nil {
		h.releaseChef(ctx, chefID)
		return nil, err
	}

	h.publisher.Publish(ctx, order.CreatedEvent(created, now))
	return created, nil
}

// placeWithChef reserves the table of a dine-in order and persists the order.
// On failure the table is released again; the chef is the caller's business.
func (h CreateOrderCommandHandler) placeWithChef(ctx context.Context, uow OrderUoW, draft order.Draft) (*order.Order, error) {
	o, err := order.NewOrder(draft, h.calculator)
	if err != nil {
		return nil, err
	}

	tableNumber, dineIn := o.TableNumber()
	if dineIn {
		if err := h.tables.Reserve(ctx, tableNumber, o.CustomerPhone(), o.NumberOfMembers()); err != nil {
			return nil, err
		}
	}

	if err := h.persist(ctx, uow, o); err != nil {
		if dineIn {
			h.releaseTable(ctx, tableNumber, o.CustomerPhone())
		}
		return nil, err
	}

	return o, nil
}

func (h CreateOrderCommandHandler) persist(ctx context.Context, uow OrderUoW, o *order.Order) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateOrderCommandHandler) releaseChef(ctx context.Context, chefID kernel.UUID) {
	if err := h.chefs.Release(context.WithoutCancel(ctx), chefID); err != nil {
		h.logger.ErrorContext(ctx, "failed to release chef after aborted order", "chefId", chefID.String(), "error", err)
	}
}

func (h CreateOrderCommandHandler) releaseTable(ctx context.Context, number int, phone kernel.Phone) {
	if err := h.tables.ReleaseHeldBy(context.WithoutCancel(ctx), number, phone); err != nil {
		h.logger.ErrorContext(ctx, "failed to release table after aborted order", "tableNumber", number, "error", err)
	}
}

// priceLines resolves every requested line against the catalog. The
// processing time of the order is its slowest item.
func priceLines(items []OrderItem, catalog []*menu.Item) ([]order.LineItem, int, error) {
	byID := make(map[kernel.UUID]*menu.Item, len(catalog))
	for _, item := range catalog {
		byID[item.ID()] = item
	}

	lines := make([]order.LineItem, 0, len(items))
	processingTime := 0
	var errList []error

	for i, item := range items {
		entry, ok := byID[item.MenuItemID]
		if !ok {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].menuItemId", i),
				fmt.Errorf("menu item %s does not exist", item.MenuItemID),
			))
			continue
		}

		line, err := order.NewLineItem(entry.ID(), entry.Name(), entry.Price(), item.Quantity, item.SpecialInstructions)
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err))
			continue
		}

		lines = append(lines, line)
		processingTime = max(processingTime, entry.AveragePreparationTime())
	}

	if err := errors.Join(errList...); err != nil {
		return nil, 0, err
	}

	return lines, processingTime, nil
}
