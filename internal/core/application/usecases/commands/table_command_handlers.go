package commands

import (
	"context"

	"restaurant/internal/core/domain/model/table"
)

// Table handlers delegate to the TableManager, which serializes every change
// of the table set against reservations.
type (
	CreateTableCommandHandler  struct{ tables TableManager }
	UpdateTableCommandHandler  struct{ tables TableManager }
	DeleteTableCommandHandler  struct{ tables TableManager }
	ReserveTableCommandHandler struct{ tables TableManager }
	ReleaseTableCommandHandler struct{ tables TableManager }
)

func NewCreateTableCommandHandler(tables TableManager) CreateTableCommandHandler {
	return CreateTableCommandHandler{tables: tables}
}

func (h CreateTableCommandHandler) Handle(ctx context.Context, cmd CreateTableCommand) (*table.Table, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.tables.Create(ctx, cmd.Size(), cmd.Name())
}

func NewUpdateTableCommandHandler(tables TableManager) UpdateTableCommandHandler {
	return UpdateTableCommandHandler{tables: tables}
}

func (h UpdateTableCommandHandler) Handle(ctx context.Context, cmd UpdateTableCommand) (*table.Table, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.tables.Update(ctx, cmd.TableID(), cmd.Size(), cmd.Name())
}

func NewDeleteTableCommandHandler(tables TableManager) DeleteTableCommandHandler {
	return DeleteTableCommandHandler{tables: tables}
}

func (h DeleteTableCommandHandler) Handle(ctx context.Context, cmd DeleteTableCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.tables.Delete(ctx, cmd.TableID())
}

func NewReserveTableCommandHandler(tables TableManager) ReserveTableCommandHandler {
	return ReserveTableCommandHandler{tables: tables}
}

func (h ReserveTableCommandHandler) Handle(ctx context.Context, cmd ReserveTableCommand) (*table.Table, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.tables.ReserveByID(ctx, cmd.TableID(), cmd.CustomerPhone(), cmd.NumberOfMembers())
}

func NewReleaseTableCommandHandler(tables TableManager) ReleaseTableCommandHandler {
	return ReleaseTableCommandHandler{tables: tables}
}

func (h ReleaseTableCommandHandler) Handle(ctx context.Context, cmd ReleaseTableCommand) (*table.Table, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.tables.ReleaseByID(ctx, cmd.TableID())
}
