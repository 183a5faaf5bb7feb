package commands

import (
	"context"

	"restaurant/internal/core/domain/model/chef"
	"restaurant/internal/core/domain/model/kernel"
)

// CreateChefCommandHandler adds chefs through the roster, which enforces the
// active chef cap.
type CreateChefCommandHandler struct {
	roster ChefRoster
}

func NewCreateChefCommandHandler(roster ChefRoster) CreateChefCommandHandler {
	return CreateChefCommandHandler{roster: roster}
}

func (h CreateChefCommandHandler) Handle(ctx context.Context, cmd CreateChefCommand) (*chef.Chef, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c, err := chef.NewChef(kernel.NewUUID(), cmd.Name(), cmd.Status())
	if err != nil {
		return nil, err
	}
	if err := h.roster.AddChef(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

type UpdateChefCommandHandler struct {
	roster ChefRoster
}

func NewUpdateChefCommandHandler(roster ChefRoster) UpdateChefCommandHandler {
	return UpdateChefCommandHandler{roster: roster}
}

func (h UpdateChefCommandHandler) Handle(ctx context.Context, cmd UpdateChefCommand) (*chef.Chef, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.roster.UpdateChef(ctx, cmd.ChefID(), cmd.Name(), cmd.Status())
}

// DeleteChefCommandHandler removes chefs. A chef with orders in progress is
// kept and a ConflictError is returned.
type DeleteChefCommandHandler struct {
	roster ChefRoster
}

func NewDeleteChefCommandHandler(roster ChefRoster) DeleteChefCommandHandler {
	return DeleteChefCommandHandler{roster: roster}
}

func (h DeleteChefCommandHandler) Handle(ctx context.Context, cmd DeleteChefCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.roster.RemoveChef(ctx, cmd.ChefID())
}
