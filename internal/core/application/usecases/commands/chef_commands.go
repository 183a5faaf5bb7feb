package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/chef"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var (
	ErrCreateChefCommandIsNotConstructed = errors.New("CreateChefCommand must be created via NewCreateChefCommand constructor")
	ErrUpdateChefCommandIsNotConstructed = errors.New("UpdateChefCommand must be created via NewUpdateChefCommand constructor")
	ErrDeleteChefCommandIsNotConstructed = errors.New("DeleteChefCommand must be created via NewDeleteChefCommand constructor")
)

// CreateChefCommand puts a new chef on the roster.
type CreateChefCommand struct { //nolint:recvcheck //using for validation
	name   string
	status chef.Status

	guard guard.ConstructorGuard
}

func NewCreateChefCommand(name string, status chef.Status) (CreateChefCommand, error) {
	if err := errors.Join(validateChefName(name), status.Validate()); err != nil {
		return CreateChefCommand{}, err
	}

	return CreateChefCommand{
		name:   name,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c CreateChefCommand) Validate() error {
	return c.guard.Validate(ErrCreateChefCommandIsNotConstructed)
}

func (c CreateChefCommand) Name() string {
	return c.name
}

func (c CreateChefCommand) Status() chef.Status {
	return c.status
}

// UpdateChefCommand replaces name and status of a chef.
type UpdateChefCommand struct { //nolint:recvcheck //using for validation
	chefID kernel.UUID
	name   string
	status chef.Status

	guard guard.ConstructorGuard
}

func NewUpdateChefCommand(chefID kernel.UUID, name string, status chef.Status) (UpdateChefCommand, error) {
	if err := errors.Join(chefID.Validate(), validateChefName(name), status.Validate()); err != nil {
		return UpdateChefCommand{}, err
	}

	return UpdateChefCommand{
		chefID: chefID,
		name:   name,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateChefCommand) Validate() error {
	return c.guard.Validate(ErrUpdateChefCommandIsNotConstructed)
}

func (c UpdateChefCommand) ChefID() kernel.UUID {
	return c.chefID
}

func (c UpdateChefCommand) Name() string {
	return c.name
}

func (c UpdateChefCommand) Status() chef.Status {
	return c.status
}

// DeleteChefCommand removes an idle chef.
type DeleteChefCommand struct { //nolint:recvcheck //using for validation
	chefID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteChefCommand(chefID kernel.UUID) (DeleteChefCommand, error) {
	if err := chefID.Validate(); err != nil {
		return DeleteChefCommand{}, err
	}

	return DeleteChefCommand{
		chefID: chefID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteChefCommand) Validate() error {
	return c.guard.Validate(ErrDeleteChefCommandIsNotConstructed)
}

func (c DeleteChefCommand) ChefID() kernel.UUID {
	return c.chefID
}

func validateChefName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}
